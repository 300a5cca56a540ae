package models

import "time"

// UserRef is a weak reference to the user who touched a record. The backend
// only ever sends id and email here, never the full user.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Record contains the common columns every backend resource carries. Records
// are externally owned; this service only transports and displays them.
type Record struct {
	ID        string     `json:"id"`
	IsDeleted bool       `json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	CreatedBy *UserRef   `json:"createdBy,omitempty"`
	UpdatedBy *UserRef   `json:"updatedBy,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// RecordID lets generic code read the identity of any backend resource.
func (r Record) RecordID() string {
	return r.ID
}

// Page is the paginated list shape every list endpoint returns inside the
// envelope's data field. Items never exceeds the requested limit and Total is
// never below len(Items).
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleMember     UserRole = "MEMBER"
)

// IsValidUserRole checks if a given role is valid
func IsValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleMember, UserRoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Access scopes. A scope absent from a session's scope map is false.
const (
	ScopeManageUsers        = "manage-users"
	ScopeManageClients      = "manage-clients"
	ScopeManageProjects     = "manage-projects"
	ScopeManageInterviews   = "manage-interviews"
	ScopeManageStakeholders = "manage-stakeholders"
)

// AllScopes lists every known access scope in a stable order.
var AllScopes = []string{
	ScopeManageUsers,
	ScopeManageClients,
	ScopeManageProjects,
	ScopeManageInterviews,
	ScopeManageStakeholders,
}

// RoleScopes maps a role to the scopes it implies when the backend token does
// not carry explicit scope claims.
var RoleScopes = map[UserRole][]string{
	UserRoleSuperAdmin: AllScopes,
	UserRoleAdmin:      AllScopes,
	UserRoleMember: {
		ScopeManageInterviews,
		ScopeManageStakeholders,
	},
}

// JobStatus tracks bulk import jobs in the local store.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// DeletedStatus values accepted by list filters. "all" lifts the constraint
// instead of filtering on the literal string.
const (
	DeletedStatusAll     = "all"
	DeletedStatusActive  = "active"
	DeletedStatusDeleted = "deleted"
)
