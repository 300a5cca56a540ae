package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LocalBase contains common columns for rows in the local operational store.
// Backend resources never land here; only audit entries and import jobs do.
type LocalBase struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *LocalBase) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// AuditEntry records a mutating proxy operation: who did what to which
// backend resource, with the submitted payload.
type AuditEntry struct {
	LocalBase
	ActorID    string         `gorm:"index" json:"actorId"`
	ActorEmail string         `json:"actorEmail"`
	Action     string         `gorm:"not null;index" json:"action"` // created, updated, deleted
	Resource   string         `gorm:"not null;index" json:"resource"`
	ResourceID string         `gorm:"index" json:"resourceId"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
}

// ImportJob tracks a bulk upload from received file to processed rows.
type ImportJob struct {
	LocalBase
	Resource    string    `gorm:"not null" json:"resource"`
	FileName    string    `gorm:"not null" json:"fileName"`
	FilePath    string    `gorm:"not null" json:"filePath"`
	Status      JobStatus `gorm:"not null;default:'QUEUED'" json:"status"`
	ActorID     string    `gorm:"index" json:"actorId"`
	TotalRows   int       `json:"totalRows"`
	DoneRows    int       `json:"doneRows"`
	FailedRows  int       `json:"failedRows"`
	LastError   string    `json:"lastError,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
