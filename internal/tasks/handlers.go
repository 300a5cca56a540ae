package tasks

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vantage/internal/audit"
	"vantage/internal/backend"
	"vantage/internal/models"
	"vantage/internal/repositories"
	"vantage/internal/services"
	"vantage/internal/tasks/rate"
	"vantage/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

const (
	// progressEvery is how many rows pass between job-row progress writes.
	progressEvery = 25
	// staleAfter marks a processing job as dead when no worker touched it.
	staleAfter = time.Hour
	// auditRetentionDays is how long audit entries are kept.
	auditRetentionDays = 90
)

// TaskHandler processes queued background work: bulk imports, the stale-job
// sweep and audit retention.
type TaskHandler struct {
	db      *gorm.DB
	repos   *repositories.Registry
	storage *services.S3Service
	limiter *rate.Limiter
	pruner  *audit.Recorder
	client  *TaskClient
	log     *logger.Logger
}

func NewTaskHandler(db *gorm.DB, repos *repositories.Registry, storage *services.S3Service, client *TaskClient) *TaskHandler {
	return &TaskHandler{
		db:      db,
		repos:   repos,
		storage: storage,
		limiter: rate.NewLimiter(client.Redis(), "bulk_import", rate.Limit{Window: time.Minute, MaxOps: 120}),
		pruner:  audit.NewRecorder(db),
		client:  client,
		log:     logger.New("task_handler"),
	}
}

// HandleBulkImport reads the uploaded file row by row and creates one backend
// record per row on the uploader's behalf. Row failures are counted, not
// fatal; the job completes with whatever succeeded.
func (h *TaskHandler) HandleBulkImport(ctx context.Context, t *asynq.Task) error {
	var payload BulkImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid bulk import payload: %v: %w", err, asynq.SkipRetry)
	}

	var job models.ImportJob
	if err := h.db.First(&job, "id = ?", payload.JobID).Error; err != nil {
		return h.log.Error("Import job %s not found", err, payload.JobID)
	}
	if job.Status == models.JobStatusCompleted || job.Status == models.JobStatusCancelled {
		h.log.Info("Skipping import job %s in state %s", job.ID, job.Status)
		return nil
	}

	h.db.Model(&job).Update("status", models.JobStatusProcessing)

	content, err := h.storage.Download(ctx, job.FilePath)
	if err != nil {
		h.failJob(&job, err)
		return err
	}

	headers, rows, err := parseImportFile(content)
	if err != nil {
		h.failJob(&job, err)
		return fmt.Errorf("unusable import file: %v: %w", err, asynq.SkipRetry)
	}

	h.db.Model(&job).Update("total_rows", len(rows))

	// Row creates carry the uploader's identity, so audit entries and
	// backend ownership come out the same as manual creates.
	ctx = backend.WithToken(ctx, payload.Token)
	ctx = backend.WithActor(ctx, backend.Actor{ID: payload.ActorID, Email: payload.ActorEmail})

	var done, failed int
	var lastError string
	for i, row := range rows {
		h.throttle(ctx, job.ID)

		record := make(map[string]interface{}, len(headers))
		for col, header := range headers {
			if col < len(row) {
				record[header] = row[col]
			}
		}

		if err := h.repos.ImportRecord(ctx, job.Resource, record); err != nil {
			failed++
			lastError = fmt.Sprintf("row %d: %v", i+2, err)
		} else {
			done++
		}

		if (i+1)%progressEvery == 0 {
			h.db.Model(&job).Updates(map[string]interface{}{
				"done_rows":   done,
				"failed_rows": failed,
				"last_error":  lastError,
			})
		}
	}

	status := models.JobStatusCompleted
	if done == 0 && failed > 0 {
		status = models.JobStatusFailed
	}
	now := time.Now()
	h.db.Model(&job).Updates(map[string]interface{}{
		"status":       status,
		"done_rows":    done,
		"failed_rows":  failed,
		"last_error":   lastError,
		"completed_at": &now,
	})

	h.log.Success("Import job %s finished: %d ok, %d failed", job.ID, done, failed)
	return nil
}

// HandleImportSweep fails processing jobs whose worker died, then schedules
// the next sweep.
func (h *TaskHandler) HandleImportSweep(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-staleAfter)
	res := h.db.Model(&models.ImportJob{}).
		Where("status = ? AND updated_at < ?", models.JobStatusProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":     models.JobStatusFailed,
			"last_error": "import worker timed out",
		})
	if res.Error != nil {
		return h.log.Error("Import sweep failed", res.Error)
	}
	if res.RowsAffected > 0 {
		h.log.Warn("Import sweep failed %d stale jobs", res.RowsAffected)
	}

	return h.client.EnqueueImportSweep()
}

// HandleAuditPrune applies the audit retention window.
func (h *TaskHandler) HandleAuditPrune(ctx context.Context, t *asynq.Task) error {
	pruned, err := h.pruner.Prune(auditRetentionDays)
	if err != nil {
		return h.log.Error("Audit prune failed", err)
	}
	h.log.Info("Pruned %d audit entries older than %d days", pruned, auditRetentionDays)
	return nil
}

func (h *TaskHandler) failJob(job *models.ImportJob, cause error) {
	now := time.Now()
	h.db.Model(job).Updates(map[string]interface{}{
		"status":       models.JobStatusFailed,
		"last_error":   cause.Error(),
		"completed_at": &now,
	})
}

// throttle blocks until the rate limiter admits one more backend write for
// this job. Limiter errors fail open; a Redis hiccup should not stall imports.
func (h *TaskHandler) throttle(ctx context.Context, jobID string) {
	for {
		ok, err := h.limiter.Allow(ctx, jobID)
		if err != nil {
			h.log.Warn("Rate limiter unavailable for job %s: %v", jobID, err)
			return
		}
		if ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

// parseImportFile reads a CSV with a header row. Header names are trimmed and
// must be non-empty; cells beyond the header width are ignored.
func parseImportFile(content []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("file has no data rows")
	}

	headers := make([]string, len(records[0]))
	for i, header := range records[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			return nil, nil, fmt.Errorf("empty header in column %d", i+1)
		}
		headers[i] = header
	}

	return headers, records[1:], nil
}
