package audit

import (
	"encoding/json"

	"vantage/internal/events"
	"vantage/internal/models"
	"vantage/internal/utils/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var log = logger.New("AUDIT")

var actions = []string{"created", "updated", "deleted"}

// Recorder persists every repository mutation into the local audit trail.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Subscribe attaches the recorder to the change events of the given
// resources on the default event bus.
func (r *Recorder) Subscribe(resources ...string) {
	for _, resource := range resources {
		for _, action := range actions {
			events.On(resource+"."+action, r.record)
		}
	}
}

func (r *Recorder) record(data interface{}) {
	change, ok := data.(events.Change)
	if !ok {
		return
	}

	var payload datatypes.JSON
	if change.Data != nil {
		if encoded, err := json.Marshal(change.Data); err == nil {
			payload = encoded
		}
	}

	entry := models.AuditEntry{
		ActorID:    change.ActorID,
		ActorEmail: change.ActorEmail,
		Action:     change.Action,
		Resource:   change.Resource,
		ResourceID: change.ResourceID,
		Payload:    payload,
	}

	if err := r.db.Create(&entry).Error; err != nil {
		_ = log.Error("Failed to record audit entry for %s.%s", err, change.Resource, change.Action)
	}
}

// Prune removes audit entries older than the retention window. Invoked by
// the periodic maintenance task.
func (r *Recorder) Prune(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	res := r.db.Exec("DELETE FROM audit_entries WHERE created_at < NOW() - (? * INTERVAL '1 day')", retentionDays)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
