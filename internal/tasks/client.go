package tasks

import (
	"encoding/json"

	"vantage/internal/config"
	"vantage/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient enqueues background work onto Redis.
type TaskClient struct {
	client      *asynq.Client
	redisClient *redis.Client
	log         *logger.Logger
}

func NewTaskClient(cfg config.RedisConfig) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		log:         logger.New("TASKS"),
	}
}

// Redis exposes the shared connection for the per-job rate limiter.
func (c *TaskClient) Redis() *redis.Client {
	return c.redisClient
}

// EnqueueBulkImport queues processing for an uploaded file.
func (c *TaskClient) EnqueueBulkImport(payload BulkImportPayload) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeBulkImport, encoded,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutLong),
	)
	info, err := c.client.Enqueue(task)
	if err != nil {
		return c.log.Error("Failed to enqueue bulk import for job %s", err, payload.JobID)
	}

	c.log.Info("Enqueued bulk import job=%s task=%s queue=%s", payload.JobID, info.ID, info.Queue)
	return nil
}

// EnqueueImportSweep schedules the next stale-job sweep. The sweep handler
// calls this again when it finishes, so one initial call keeps it recurring.
func (c *TaskClient) EnqueueImportSweep() error {
	task := asynq.NewTask(TaskTypeImportSweep, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutShort),
	)
	if _, err := c.client.Enqueue(task, CronSchedule("*/30 * * * *")); err != nil {
		return c.log.Error("Failed to schedule import sweep", err)
	}
	return nil
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	if err := c.redisClient.Close(); err != nil {
		return err
	}
	return c.client.Close()
}
