package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-srv/config"
	"catalog-sync-srv/internal/indexing"
	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
	"catalog-sync-srv/internal/model"
	"catalog-sync-srv/pkg/log"
	"catalog-sync-srv/pkg/paginator"
)

// fakeUseCase records the events handed over by the workers.
type fakeUseCase struct {
	entityEvents    []indexing.EntityUpdateEvent
	attributeEvents []indexing.AttributeUpdateEvent
	err             error
}

func (f *fakeUseCase) Discover(ctx context.Context, input indexing.DiscoverInput) (indexing.DiscoverOutput, error) {
	return indexing.DiscoverOutput{}, nil
}

func (f *fakeUseCase) ProcessRequiresUpdate(ctx context.Context, input indexing.RequireUpdateInput) (indexing.RequireUpdateOutput, error) {
	return indexing.RequireUpdateOutput{}, nil
}

func (f *fakeUseCase) Sync(ctx context.Context, input indexing.SyncInput) (indexing.IndexerResult, error) {
	return indexing.IndexerResult{}, nil
}

func (f *fakeUseCase) SyncAll(ctx context.Context, apiKey string) ([]indexing.IndexerResult, error) {
	return nil, nil
}

func (f *fakeUseCase) BuildRecord(recordID string, entity interface{}, parent interface{}) (indexing.IndexingRecord, error) {
	return indexing.IndexingRecord{}, nil
}

func (f *fakeUseCase) RespondEntityUpdate(ctx context.Context, data map[string]interface{}) error {
	return nil
}

func (f *fakeUseCase) RespondAttributeUpdate(ctx context.Context, data map[string]interface{}) error {
	return nil
}

func (f *fakeUseCase) HandleEntityUpdate(ctx context.Context, event indexing.EntityUpdateEvent) error {
	if f.err != nil {
		return f.err
	}
	f.entityEvents = append(f.entityEvents, event)
	return nil
}

func (f *fakeUseCase) HandleAttributeUpdate(ctx context.Context, event indexing.AttributeUpdateEvent) error {
	if f.err != nil {
		return f.err
	}
	f.attributeEvents = append(f.attributeEvents, event)
	return nil
}

func (f *fakeUseCase) GetEntities(ctx context.Context, input indexing.GetEntitiesInput) ([]model.IndexingEntity, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (f *fakeUseCase) GetEntityHistory(ctx context.Context, entityID int64) ([]model.SyncHistory, error) {
	return nil, nil
}

func (f *fakeUseCase) GetStatistics(ctx context.Context, apiKey string) (indexing.StatisticsOutput, error) {
	return indexing.StatisticsOutput{}, nil
}

func newTestConsumer(t *testing.T, uc indexing.UseCase) *Consumer {
	t.Helper()
	c, err := New(Config{
		Logger:      log.NewNoop(),
		KafkaConfig: config.KafkaConfig{Brokers: []string{"localhost:9092"}},
		UseCase:     uc,
	})
	require.NoError(t, err)
	return c
}

func kafkaMessage(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     kafkaDelivery.TopicEntityUpdate,
		Partition: 0,
		Offset:    1,
		Value:     []byte(value),
	}
}

func TestHandleEntityUpdateMessage(t *testing.T) {
	t.Run("delegates a valid message to the usecase", func(t *testing.T) {
		uc := &fakeUseCase{}
		c := newTestConsumer(t, uc)

		err := c.handleEntityUpdateMessage(kafkaMessage(
			`{"entity_type":"KLEVU_PRODUCT","entity_ids":[1,2],"store_ids":[1]}`,
		))
		require.NoError(t, err)
		require.Len(t, uc.entityEvents, 1)
		assert.Equal(t, []int64{1, 2}, uc.entityEvents[0].EntityIDs)
		assert.Equal(t, []int64{1}, uc.entityEvents[0].StoreIDs)
		assert.Equal(t, "KLEVU_PRODUCT", uc.entityEvents[0].EntityType)
	})

	t.Run("skips malformed payloads without error", func(t *testing.T) {
		uc := &fakeUseCase{}
		c := newTestConsumer(t, uc)

		require.NoError(t, c.handleEntityUpdateMessage(kafkaMessage(`{not json`)))
		assert.Empty(t, uc.entityEvents)
	})

	t.Run("skips messages without entity ids", func(t *testing.T) {
		uc := &fakeUseCase{}
		c := newTestConsumer(t, uc)

		require.NoError(t, c.handleEntityUpdateMessage(kafkaMessage(`{"entity_ids":[]}`)))
		assert.Empty(t, uc.entityEvents)
	})

	t.Run("propagates usecase errors for redelivery", func(t *testing.T) {
		uc := &fakeUseCase{err: errors.New("db down")}
		c := newTestConsumer(t, uc)

		err := c.handleEntityUpdateMessage(kafkaMessage(`{"entity_ids":[1]}`))
		require.ErrorContains(t, err, "usecase error")
	})
}

func TestHandleAttributeUpdateMessage(t *testing.T) {
	t.Run("delegates a valid message to the usecase", func(t *testing.T) {
		uc := &fakeUseCase{}
		c := newTestConsumer(t, uc)

		err := c.handleAttributeUpdateMessage(kafkaMessage(`{"attribute_ids":[7],"store_ids":[]}`))
		require.NoError(t, err)
		require.Len(t, uc.attributeEvents, 1)
		assert.Equal(t, []int64{7}, uc.attributeEvents[0].AttributeIDs)
	})

	t.Run("skips messages without attribute ids", func(t *testing.T) {
		uc := &fakeUseCase{}
		c := newTestConsumer(t, uc)

		require.NoError(t, c.handleAttributeUpdateMessage(kafkaMessage(`{"attribute_ids":[]}`)))
		assert.Empty(t, uc.attributeEvents)
	})
}

func TestPresenters(t *testing.T) {
	emitted := time.Now()

	event := toEntityUpdateEvent(kafkaDelivery.EntityUpdateMessage{
		EntityType:       "KLEVU_PRODUCT",
		EntityIDs:        []int64{1},
		StoreIDs:         []int64{2},
		CustomerGroupIDs: []int64{3},
		EntitySubtypes:   []string{"simple"},
		EmittedAt:        emitted,
	})
	assert.Equal(t, []int64{1}, event.EntityIDs)
	assert.Equal(t, []int64{2}, event.StoreIDs)
	assert.Equal(t, []int64{3}, event.CustomerGroupIDs)
	assert.Equal(t, []string{"simple"}, event.EntitySubtypes)
	assert.True(t, event.EmittedAt.Equal(emitted))

	attrEvent := toAttributeUpdateEvent(kafkaDelivery.AttributeUpdateMessage{
		AttributeIDs: []int64{9},
		EmittedAt:    emitted,
	})
	assert.Equal(t, []int64{9}, attrEvent.AttributeIDs)
}

func TestNewConsumer(t *testing.T) {
	t.Run("requires brokers", func(t *testing.T) {
		_, err := New(Config{Logger: log.NewNoop(), UseCase: &fakeUseCase{}})
		require.Error(t, err)
	})

	t.Run("requires usecase", func(t *testing.T) {
		_, err := New(Config{
			Logger:      log.NewNoop(),
			KafkaConfig: config.KafkaConfig{Brokers: []string{"localhost:9092"}},
		})
		require.Error(t, err)
	})
}
