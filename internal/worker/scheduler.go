package worker

import (
	"context"
	"encoding/json"
	"time"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/rabbitmq"
)

// runDiscoveryScheduler runs a full discovery reconciliation on the
// configured interval.
func (w *Worker) runDiscoveryScheduler(ctx context.Context, uc indexing.UseCase) error {
	interval := time.Duration(w.config.Indexing.DiscoveryIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.l.Infof(ctx, "worker.runDiscoveryScheduler: running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			output, err := uc.Discover(ctx, indexing.DiscoverInput{EntityType: model.EntityTypeProduct})
			if err != nil {
				w.l.Errorf(ctx, "worker.runDiscoveryScheduler: discovery failed: %v", err)
				continue
			}
			w.l.Infof(ctx, "worker.runDiscoveryScheduler: processed=%d created=%d updated=%d skipped=%d failures=%d",
				output.Processed, output.Created, output.Updated, output.Skipped, len(output.Failures))
		}
	}
}

// runRequireUpdateScheduler re-evaluates flagged rows on the configured
// interval.
func (w *Worker) runRequireUpdateScheduler(ctx context.Context, uc indexing.UseCase) error {
	interval := time.Duration(w.config.Indexing.RequireUpdateIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.l.Infof(ctx, "worker.runRequireUpdateScheduler: running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			output, err := uc.ProcessRequiresUpdate(ctx, indexing.RequireUpdateInput{})
			if err != nil {
				w.l.Errorf(ctx, "worker.runRequireUpdateScheduler: pass failed: %v", err)
				continue
			}
			w.l.Infof(ctx, "worker.runRequireUpdateScheduler: checked=%d queued=%d cleared=%d",
				output.Checked, output.QueuedUpdate, output.Cleared)
		}
	}
}

// runSyncScheduler enqueues one sync job per (api key, action) on the
// configured interval. Jobs run in delete, add, update order per scope.
func (w *Worker) runSyncScheduler(ctx context.Context, creds credential.Provider) error {
	interval := time.Duration(w.config.Indexing.SyncIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.l.Infof(ctx, "worker.runSyncScheduler: running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.enqueueSyncJobs(ctx, creds); err != nil {
				w.l.Errorf(ctx, "worker.runSyncScheduler: enqueue failed: %v", err)
			}
		}
	}
}

func (w *Worker) enqueueSyncJobs(ctx context.Context, creds credential.Provider) error {
	accounts, err := creds.List(ctx)
	if err != nil {
		return err
	}

	ch, err := w.rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	now := time.Now()
	actions := []model.Action{model.ActionDelete, model.ActionAdd, model.ActionUpdate}
	for _, account := range accounts {
		for _, action := range actions {
			job := indexing.SyncJob{
				APIKey:   account.APIKey,
				Action:   action,
				QueuedAt: now,
			}
			body, err := json.Marshal(job)
			if err != nil {
				return err
			}
			if err := ch.Publish(ctx, rabbitmq.PublishArgs{
				RoutingKey: w.config.RabbitMQ.SyncQueue,
				Msg: rabbitmq.Publishing{
					ContentType: "application/json",
					Body:        body,
				},
			}); err != nil {
				return err
			}
		}
	}

	w.l.Debugf(ctx, "worker.enqueueSyncJobs: queued %d jobs", len(accounts)*len(actions))
	return nil
}

// declareSyncQueue makes sure the sync job queue exists before anything
// publishes or consumes.
func (w *Worker) declareSyncQueue() error {
	ch, err := w.rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(rabbitmq.QueueArgs{
		Name:    w.config.RabbitMQ.SyncQueue,
		Durable: true,
	})
	return err
}
