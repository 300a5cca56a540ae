package repositories

import (
	"context"
	"errors"
	"fmt"

	"vantage/internal/backend"
	"vantage/internal/models"
)

var ErrUnknownResource = errors.New("unknown resource")

// Registry holds every repository, constructed once at startup and passed
// around explicitly. There is no lazy lookup by name and no teardown; the
// registry lives as long as the process.
type Registry struct {
	Users        *Repository[models.User]
	Clients      *Repository[models.Client]
	Stakeholders *Repository[models.Stakeholder]
	Projects     *Repository[models.Project]
	Interviews   *Repository[models.Interview]
	Dashboard    *DashboardRepository
	Settings     *SettingsRepository
}

func NewRegistry(api *backend.Client) *Registry {
	return &Registry{
		Users:        NewUsers(api),
		Clients:      NewClients(api),
		Stakeholders: NewStakeholders(api),
		Projects:     NewProjects(api),
		Interviews:   NewInterviews(api),
		Dashboard:    NewDashboard(api),
		Settings:     NewSettings(api),
	}
}

// ImportableResources lists the resources bulk upload accepts, by the same
// names the event bus and audit trail use.
func ImportableResources() []string {
	return []string{"users", "clients", "stakeholders", "projects", "interviews"}
}

func IsImportable(resource string) bool {
	for _, r := range ImportableResources() {
		if r == resource {
			return true
		}
	}
	return false
}

// ImportRecord creates one record of the named resource from a generic row
// payload. Used by the bulk import worker, which only knows resources by name.
func (r *Registry) ImportRecord(ctx context.Context, resource string, payload map[string]interface{}) error {
	var err error
	switch resource {
	case "users":
		_, err = r.Users.Create(ctx, payload)
	case "clients":
		_, err = r.Clients.Create(ctx, payload)
	case "stakeholders":
		_, err = r.Stakeholders.Create(ctx, payload)
	case "projects":
		_, err = r.Projects.Create(ctx, payload)
	case "interviews":
		_, err = r.Interviews.Create(ctx, payload)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return err
}
