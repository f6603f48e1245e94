package postgre

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	repo "catalog-sync-srv/internal/indexing/repository"
)

// buildGetEntitiesCountQuery - Build count query for GetEntities (without limit/offset)
func (r *implRepository) buildGetEntitiesCountQuery(opt repo.GetEntitiesOptions) (string, []interface{}) {
	where, args := r.getEntitiesFilters(opt)

	query := "SELECT COUNT(*) FROM indexing_entities"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query, args
}

// buildGetEntitiesQuery - Build query for GetEntities (with pagination)
func (r *implRepository) buildGetEntitiesQuery(opt repo.GetEntitiesOptions) (string, []interface{}) {
	where, args := r.getEntitiesFilters(opt)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SELECT %s FROM indexing_entities", entityColumns))
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	// Sorting
	if opt.OrderBy != "" {
		sb.WriteString(" ORDER BY " + opt.OrderBy)
	} else {
		sb.WriteString(" ORDER BY updated_at DESC") // Default sorting
	}

	// Pagination (REQUIRED for Get)
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if opt.Offset > 0 {
		args = append(args, opt.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return sb.String(), args
}

func (r *implRepository) getEntitiesFilters(opt repo.GetEntitiesOptions) ([]string, []interface{}) {
	where := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)

	// Apply ALL provided filters (AND condition)
	// Business logic to choose which filter belongs in UseCase
	if opt.APIKey != "" {
		args = append(args, opt.APIKey)
		where = append(where, fmt.Sprintf("api_key = $%d", len(args)))
	}
	if opt.TargetID > 0 {
		args = append(args, opt.TargetID)
		where = append(where, fmt.Sprintf("target_id = $%d", len(args)))
	}
	if opt.NextAction != "" {
		args = append(args, string(opt.NextAction))
		where = append(where, fmt.Sprintf("next_action = $%d", len(args)))
	}
	if opt.IsIndexable != nil {
		args = append(args, *opt.IsIndexable)
		where = append(where, fmt.Sprintf("is_indexable = $%d", len(args)))
	}
	if opt.RequiresUpdate != nil {
		args = append(args, *opt.RequiresUpdate)
		where = append(where, fmt.Sprintf("requires_update = $%d", len(args)))
	}

	return where, args
}

// buildListEntitiesQuery - Build query for ListEntities (without pagination)
func (r *implRepository) buildListEntitiesQuery(opt repo.ListEntitiesOptions) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, 6)

	sb.WriteString(fmt.Sprintf("SELECT %s FROM indexing_entities", entityColumns))

	where := make([]string, 0, 6)
	if opt.APIKey != "" {
		args = append(args, opt.APIKey)
		where = append(where, fmt.Sprintf("api_key = $%d", len(args)))
	}
	if len(opt.APIKeys) > 0 {
		args = append(args, pq.Array(opt.APIKeys))
		where = append(where, fmt.Sprintf("api_key = ANY($%d)", len(args)))
	}
	if opt.TargetEntityType != "" {
		args = append(args, opt.TargetEntityType)
		where = append(where, fmt.Sprintf("target_entity_type = $%d", len(args)))
	}
	if len(opt.TargetIDs) > 0 {
		args = append(args, pq.Array(opt.TargetIDs))
		where = append(where, fmt.Sprintf("target_id = ANY($%d)", len(args)))
	}
	if opt.NextAction != "" {
		args = append(args, string(opt.NextAction))
		where = append(where, fmt.Sprintf("next_action = $%d", len(args)))
	}
	if opt.IsIndexable != nil {
		args = append(args, *opt.IsIndexable)
		where = append(where, fmt.Sprintf("is_indexable = $%d", len(args)))
	}
	if opt.RequiresUpdate != nil {
		args = append(args, *opt.RequiresUpdate)
		where = append(where, fmt.Sprintf("requires_update = $%d", len(args)))
	}
	if opt.OnlyUnlocked {
		where = append(where, "lock_timestamp IS NULL")
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	sb.WriteString(" ORDER BY id ASC") // Stable order for batch processing

	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return sb.String(), args
}
