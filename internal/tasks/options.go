package tasks

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

type cronSchedule struct {
	expr string
}

func (s cronSchedule) String() string {
	return fmt.Sprintf("cron=%s", s.expr)
}

func (s cronSchedule) Type() asynq.OptionType {
	return asynq.ProcessAtOpt
}

func (s cronSchedule) Value() interface{} {
	return s.expr
}

func (s cronSchedule) Apply(opts *asynq.TaskInfo) {
	schedule, err := cron.ParseStandard(s.expr)
	if err != nil {
		// Fall back to a fixed interval if the expression is bad
		opts.NextProcessAt = time.Now().Add(1 * time.Hour)
		return
	}

	opts.NextProcessAt = schedule.Next(time.Now())
}

// CronSchedule returns an option that delays a task until the next tick of a
// cron expression. Recurring tasks re-enqueue themselves with it after each
// run.
func CronSchedule(expr string) asynq.Option {
	return cronSchedule{expr: expr}
}
