package services

import (
	"context"

	"fitforge_backend/internal/events"
	"fitforge_backend/internal/logger"
	"fitforge_backend/internal/workers"
)

// publishAfterCommit hands the event to the job runner. Broker failures are
// logged and never undo the committed workflow.
func publishAfterCommit(jobs JobRunner, publisher events.Publisher, key string, payload any) {
	jobs.Submit(workers.Job{
		Name: "event:" + key,
		Run: func(ctx context.Context) error {
			err := publisher.PublishJSON(ctx, key, payload)
			logger.EventLog(key, err)
			return nil
		},
	})
}
