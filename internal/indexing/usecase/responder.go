package usecase

import (
	"context"
	"time"

	"catalog-sync-srv/internal/indexing"
	"catalog-sync-srv/internal/model"
)

// Valid input keys for the two responder payloads.
var (
	entityUpdateKeys = map[string]bool{
		"entityType":       true,
		"entityIds":        true,
		"storeIds":         true,
		"customerGroupIds": true,
		"entitySubtypes":   true,
	}
	attributeUpdateKeys = map[string]bool{
		"attributeIds": true,
		"storeIds":     true,
	}
)

// RespondEntityUpdate validates an entity change notification and publishes
// it as a domain event. Empty id lists skip dispatch with a debug log;
// invalid keys are logged and suppressed, never rethrown.
func (uc *implUseCase) RespondEntityUpdate(ctx context.Context, data map[string]interface{}) error {
	for key := range data {
		if !entityUpdateKeys[key] {
			err := &indexing.InvalidEventKeyError{Type: "EntityUpdateEvent", Key: key}
			uc.l.Errorf(ctx, "indexing.usecase.RespondEntityUpdate: %s", err.Error())
			return nil
		}
	}

	entityIDs, _ := toInt64Slice(data["entityIds"])
	if len(entityIDs) == 0 {
		uc.l.Debugf(ctx, "indexing.usecase.RespondEntityUpdate: no entity ids provided for %s, skipping dispatch", model.EntityTypeProduct)
		return nil
	}

	entityType, _ := data["entityType"].(string)
	if entityType == "" {
		entityType = model.EntityTypeProduct
	}
	storeIDs, _ := toInt64Slice(data["storeIds"])
	customerGroupIDs, _ := toInt64Slice(data["customerGroupIds"])
	subtypes, _ := toStringSlice(data["entitySubtypes"])

	event := indexing.EntityUpdateEvent{
		EntityType:       entityType,
		EntityIDs:        entityIDs,
		StoreIDs:         defaultInt64s(storeIDs),
		CustomerGroupIDs: defaultInt64s(customerGroupIDs),
		EntitySubtypes:   defaultStrings(subtypes),
		EmittedAt:        time.Now(),
	}
	return uc.producer.PublishEntityUpdate(ctx, event)
}

// RespondAttributeUpdate validates an attribute change notification and
// publishes it as a domain event, with the same skip/suppress rules.
func (uc *implUseCase) RespondAttributeUpdate(ctx context.Context, data map[string]interface{}) error {
	for key := range data {
		if !attributeUpdateKeys[key] {
			err := &indexing.InvalidEventKeyError{Type: "AttributeUpdateEvent", Key: key}
			uc.l.Errorf(ctx, "indexing.usecase.RespondAttributeUpdate: %s", err.Error())
			return nil
		}
	}

	attributeIDs, _ := toInt64Slice(data["attributeIds"])
	if len(attributeIDs) == 0 {
		uc.l.Debugf(ctx, "indexing.usecase.RespondAttributeUpdate: no attribute ids provided for %s, skipping dispatch", model.EntityTypeProduct)
		return nil
	}

	storeIDs, _ := toInt64Slice(data["storeIds"])
	event := indexing.AttributeUpdateEvent{
		AttributeIDs: attributeIDs,
		StoreIDs:     defaultInt64s(storeIDs),
		EmittedAt:    time.Now(),
	}
	return uc.producer.PublishAttributeUpdate(ctx, event)
}

// toInt64Slice coerces the loosely typed id lists arriving from JSON input.
func toInt64Slice(v interface{}) ([]int64, bool) {
	switch vals := v.(type) {
	case nil:
		return nil, true
	case []int64:
		return vals, true
	case []int:
		out := make([]int64, len(vals))
		for i, n := range vals {
			out[i] = int64(n)
		}
		return out, true
	case []float64:
		out := make([]int64, len(vals))
		for i, n := range vals {
			out[i] = int64(n)
		}
		return out, true
	case []interface{}:
		out := make([]int64, 0, len(vals))
		for _, item := range vals {
			switch n := item.(type) {
			case int64:
				out = append(out, n)
			case int:
				out = append(out, int64(n))
			case float64:
				out = append(out, int64(n))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch vals := v.(type) {
	case nil:
		return nil, true
	case []string:
		return vals, true
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func defaultInt64s(vals []int64) []int64 {
	if vals == nil {
		return []int64{}
	}
	return vals
}

func defaultStrings(vals []string) []string {
	if vals == nil {
		return []string{}
	}
	return vals
}
