package worker

import (
	"context"
	"encoding/json"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/rabbitmq"
)

// consumeSyncJobs pulls sync jobs off the queue and runs the executor for
// each. Bad payloads are dropped; executor errors are logged and the job is
// acknowledged, the next scheduled run picks the rows up again.
func (w *Worker) consumeSyncJobs(ctx context.Context, uc indexing.UseCase) error {
	ch, err := w.rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	deliveries, err := ch.Consume(rabbitmq.ConsumeArgs{
		Queue:    w.config.RabbitMQ.SyncQueue,
		Consumer: "catalog-sync-worker",
	})
	if err != nil {
		return err
	}

	w.l.Infof(ctx, "worker.consumeSyncJobs: consuming %s", w.config.RabbitMQ.SyncQueue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			var job indexing.SyncJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				w.l.Warnf(ctx, "worker.consumeSyncJobs: invalid job payload (dropping): %v", err)
				if err := d.Ack(false); err != nil {
					w.l.Errorf(ctx, "worker.consumeSyncJobs: ack failed: %v", err)
				}
				continue
			}

			w.handleSyncJob(ctx, uc, job)
			if err := d.Ack(false); err != nil {
				w.l.Errorf(ctx, "worker.consumeSyncJobs: ack failed: %v", err)
			}
		}
	}
}

func (w *Worker) handleSyncJob(ctx context.Context, uc indexing.UseCase, job indexing.SyncJob) {
	if job.APIKey == "" {
		w.l.Warnf(ctx, "worker.handleSyncJob: job without api key, dropping")
		return
	}

	if job.Action == "" || job.Action == model.ActionNoAction {
		results, err := uc.SyncAll(ctx, job.APIKey)
		if err != nil {
			w.l.Errorf(ctx, "worker.handleSyncJob: sync all for %s failed: %v", job.APIKey, err)
		}
		for _, result := range results {
			w.logResult(ctx, result)
		}
		return
	}

	result, err := uc.Sync(ctx, indexing.SyncInput{APIKey: job.APIKey, Action: job.Action})
	if err != nil {
		w.l.Errorf(ctx, "worker.handleSyncJob: sync %s %s failed: %v", job.APIKey, job.Action, err)
		return
	}
	w.logResult(ctx, result)
}

func (w *Worker) logResult(ctx context.Context, result indexing.IndexerResult) {
	if result.Status == indexing.SyncStatusNoop {
		return
	}
	w.l.Infof(ctx, "worker.handleSyncJob: %s %s finished with %s, processed=%d in %s",
		result.APIKey, result.Action, result.Status, result.Processed, result.Duration)
}
