package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"vantage/internal/api/middleware"
	"vantage/internal/models"
	"vantage/internal/repositories"
	"vantage/internal/services"
	"vantage/internal/tasks"
	"vantage/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UploadHandler receives bulk import files, parks them in storage and queues
// the import job. Processing happens in the task worker.
type UploadHandler struct {
	storage *services.S3Service
	tasks   *tasks.TaskClient
	db      *gorm.DB
	log     *logger.Logger
}

func NewUploadHandler(storage *services.S3Service, taskClient *tasks.TaskClient, db *gorm.DB) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		tasks:   taskClient,
		db:      db,
		log:     logger.New("upload_handler"),
	}
}

// Upload accepts a CSV for one resource and answers with the queued job.
// @Summary Upload a bulk import file
// @Accept multipart/form-data
// @Produce json
// @Param resource path string true "Target resource"
// @Param file formData file true "CSV file with a header row"
// @Router /api/v1/uploads/{resource} [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	resource := c.Param("resource")
	if !repositories.IsImportable(resource) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown import resource")
	}
	if !canImport(c, resource) {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only CSV files are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open file")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read file")
	}

	key, err := h.storage.Upload(c.Request().Context(), content, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store file")
	}

	job := models.ImportJob{
		Resource: resource,
		FileName: file.Filename,
		FilePath: key,
		Status:   models.JobStatusQueued,
		ActorID:  middleware.GetUserID(c),
	}
	if err := h.db.Create(&job).Error; err != nil {
		return h.log.Error("Failed to create import job", err)
	}

	sess := middleware.GetSession(c)
	err = h.tasks.EnqueueBulkImport(tasks.BulkImportPayload{
		JobID:      job.ID,
		Token:      sess.AccessToken,
		ActorID:    sess.SubjectID,
		ActorEmail: sess.Email,
	})
	if err != nil {
		h.db.Model(&job).Updates(map[string]interface{}{
			"status":     models.JobStatusFailed,
			"last_error": "failed to queue import",
		})
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to queue import")
	}

	return c.JSON(http.StatusAccepted, job)
}

// GetJob returns one import job. Non-admin callers only see their own.
func (h *UploadHandler) GetJob(c echo.Context) error {
	job, err := h.findJob(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// ListJobs returns the caller's recent import jobs, newest first.
func (h *UploadHandler) ListJobs(c echo.Context) error {
	query := h.db.Order("created_at DESC").Limit(20)
	if !isAdmin(c) {
		query = query.Where("actor_id = ?", middleware.GetUserID(c))
	}

	var jobs []models.ImportJob
	if err := query.Find(&jobs).Error; err != nil {
		return h.log.Error("Failed to list import jobs", err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJobFile returns a short-lived download link for the uploaded file.
func (h *UploadHandler) GetJobFile(c echo.Context) error {
	job, err := h.findJob(c)
	if err != nil {
		return err
	}

	url, err := h.storage.SignedURL(c.Request().Context(), job.FilePath, 15*time.Minute)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign file URL")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *UploadHandler) findJob(c echo.Context) (*models.ImportJob, error) {
	var job models.ImportJob
	err := h.db.First(&job, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Import job not found")
	}
	if err != nil {
		return nil, h.log.Error("Failed to load import job", err)
	}
	if !isAdmin(c) && job.ActorID != middleware.GetUserID(c) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Import job not found")
	}
	return &job, nil
}

// importScopes maps each importable resource to the scope its manual CRUD
// routes require. Bulk upload demands the same one.
var importScopes = map[string]string{
	"users":        models.ScopeManageUsers,
	"clients":      models.ScopeManageClients,
	"stakeholders": models.ScopeManageStakeholders,
	"projects":     models.ScopeManageProjects,
	"interviews":   models.ScopeManageInterviews,
}

func canImport(c echo.Context, resource string) bool {
	if isAdmin(c) {
		return true
	}
	sess := middleware.GetSession(c)
	return sess != nil && sess.HasScope(importScopes[resource])
}

func isAdmin(c echo.Context) bool {
	role := models.UserRole(middleware.GetUserRole(c))
	return role == models.UserRoleAdmin || role == models.UserRoleSuperAdmin
}
