package models

import "time"

type User struct {
	Record
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role" validate:"required,user_role"`
	IsActive  bool     `json:"isActive"`
}

type Client struct {
	Record
	Name         string `json:"name" validate:"required,min=2"`
	Code         string `json:"code" validate:"required,min=2"`
	Industry     string `json:"industry,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	Notes        string `json:"notes,omitempty"`
}

type Stakeholder struct {
	Record
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone,omitempty"`
	Title    string  `json:"title,omitempty"`
	ClientID string  `json:"clientId" validate:"required"`
	Client   *Client `json:"client,omitempty"`
}

type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	Record
	Name        string        `json:"name" validate:"required,min=2"`
	Code        string        `json:"code,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty" validate:"omitempty,project_status"`
	ClientID    string        `json:"clientId" validate:"required"`
	Client      *Client       `json:"client,omitempty"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
}

type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "SCHEDULED"
	InterviewStatusCompleted InterviewStatus = "COMPLETED"
	InterviewStatusCancelled InterviewStatus = "CANCELLED"
)

type Interview struct {
	Record
	Title           string          `json:"title" validate:"required,min=2"`
	ProjectID       string          `json:"projectId" validate:"required"`
	Project         *Project        `json:"project,omitempty"`
	StakeholderID   string          `json:"stakeholderId" validate:"required"`
	Stakeholder     *Stakeholder    `json:"stakeholder,omitempty"`
	ScheduledAt     *time.Time      `json:"scheduledAt,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	Status          InterviewStatus `json:"status,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// AdminSettings is a singleton resource on the backend.
type AdminSettings struct {
	Record
	OrganizationName string `json:"organizationName"`
	SupportEmail     string `json:"supportEmail,omitempty"`
	DefaultPageSize  int    `json:"defaultPageSize,omitempty"`
	AllowSignups     bool   `json:"allowSignups"`
}

// DashboardStats backs the analytics cards on the dashboard landing page.
type DashboardStats struct {
	TotalUsers         int64       `json:"totalUsers"`
	TotalClients       int64       `json:"totalClients"`
	TotalStakeholders  int64       `json:"totalStakeholders"`
	TotalProjects      int64       `json:"totalProjects"`
	TotalInterviews    int64       `json:"totalInterviews"`
	ActiveProjects     int64       `json:"activeProjects"`
	UpcomingInterviews []Interview `json:"upcomingInterviews,omitempty"`
}
