package repositories

import (
	"context"
	"net/http"

	"vantage/internal/backend"
	"vantage/internal/models"
)

// encodeDeleted translates the UI's deletedStatus filter into the backend's
// isDeleted parameter. "all" is handled by the rule's AllOmit mode before
// this runs.
func encodeDeleted(value string) string {
	if value == models.DeletedStatusDeleted {
		return "true"
	}
	return "false"
}

var deletedRule = FilterRule{
	Key:    "deletedStatus",
	Param:  "isDeleted",
	OnAll:  AllOmit,
	Encode: encodeDeleted,
}

func NewUsers(api *backend.Client) *Repository[models.User] {
	return New[models.User](api, "/user", "users", []FilterRule{
		{Key: "search"},
		{Key: "role"},
		deletedRule,
	})
}

func NewClients(api *backend.Client) *Repository[models.Client] {
	return New[models.Client](api, "/client", "clients", []FilterRule{
		{Key: "search"},
		{Key: "clientId"},
		{Key: "industry"},
		deletedRule,
	})
}

func NewStakeholders(api *backend.Client) *Repository[models.Stakeholder] {
	return New[models.Stakeholder](api, "/stakeholder", "stakeholders", []FilterRule{
		{Key: "search"},
		{Key: "clientId"},
		deletedRule,
	})
}

func NewProjects(api *backend.Client) *Repository[models.Project] {
	return New[models.Project](api, "/project", "projects", []FilterRule{
		{Key: "search"},
		{Key: "clientId"},
		{Key: "status"},
		deletedRule,
	})
}

func NewInterviews(api *backend.Client) *Repository[models.Interview] {
	return New[models.Interview](api, "/interview", "interviews", []FilterRule{
		{Key: "search"},
		{Key: "projectId"},
		{Key: "stakeholderId"},
		{Key: "status"},
		{Key: "from", Param: "scheduledFrom"},
		{Key: "to", Param: "scheduledTo"},
		deletedRule,
	})
}

// DashboardRepository serves the analytics cards. Read-only.
type DashboardRepository struct {
	api *backend.Client
}

func NewDashboard(api *backend.Client) *DashboardRepository {
	return &DashboardRepository{api: api}
}

func (r *DashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return backend.Request[models.DashboardStats](ctx, r.api, http.MethodGet, "/dashboard", nil)
}

// SettingsRepository wraps the singleton admin settings resource.
type SettingsRepository struct {
	api *backend.Client
}

func NewSettings(api *backend.Client) *SettingsRepository {
	return &SettingsRepository{api: api}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.AdminSettings, error) {
	return backend.Request[models.AdminSettings](ctx, r.api, http.MethodGet, "/settings", nil)
}

func (r *SettingsRepository) Update(ctx context.Context, payload interface{}) (*models.AdminSettings, error) {
	body, err := sanitizePayload(payload)
	if err != nil {
		return nil, err
	}
	return backend.Request[models.AdminSettings](ctx, r.api, http.MethodPut, "/settings", &backend.RequestOptions{Body: body})
}
