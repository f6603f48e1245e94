package usecase

import (
	"context"

	"catalog-sync-srv/internal/model"
)

// Criterion is one named requires-update check. Criteria are pluggable by
// string key; products register status and stock status.
type Criterion interface {
	Key() string
	Evaluate(ctx context.Context, product model.Product, store model.Store) (bool, error)
}

func defaultCriteria(uc *implUseCase) map[string]Criterion {
	status := &statusCriterion{}
	stockStatus := &stockStatusCriterion{uc: uc}
	return map[string]Criterion{
		status.Key():      status,
		stockStatus.Key(): stockStatus,
	}
}

// statusCriterion tracks the enabled flag.
type statusCriterion struct{}

func (c *statusCriterion) Key() string { return model.CriterionStatus }

func (c *statusCriterion) Evaluate(ctx context.Context, product model.Product, store model.Store) (bool, error) {
	return product.IsEnabled(), nil
}

// stockStatusCriterion tracks the effective in-stock flag in the store scope.
type stockStatusCriterion struct {
	uc *implUseCase
}

func (c *stockStatusCriterion) Key() string { return model.CriterionStockStatus }

func (c *stockStatusCriterion) Evaluate(ctx context.Context, product model.Product, store model.Store) (bool, error) {
	return c.uc.stock.Get(ctx, product, store, nil)
}
