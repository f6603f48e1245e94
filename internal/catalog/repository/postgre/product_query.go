package postgre

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	repo "catalog-sync-srv/internal/catalog/repository"
)

// buildListProductsQuery - Build query for ListProducts
func (r *implRepository) buildListProductsQuery(opt repo.ListProductsOptions) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, 4)

	sb.WriteString(fmt.Sprintf("SELECT %s FROM products p", productColumns))

	// Apply ALL provided filters (AND condition)
	// Business logic to choose which filter belongs in UseCase
	where := make([]string, 0, 4)
	if len(opt.IDs) > 0 {
		args = append(args, pq.Array(opt.IDs))
		where = append(where, fmt.Sprintf("p.id = ANY($%d)", len(args)))
	}
	if opt.WebsiteID > 0 {
		args = append(args, opt.WebsiteID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_websites pw WHERE pw.product_id = p.id AND pw.website_id = $%d)", len(args)))
	}
	if opt.TypeID != "" {
		args = append(args, opt.TypeID)
		where = append(where, fmt.Sprintf("p.type_id = $%d", len(args)))
	}
	if opt.Status > 0 {
		args = append(args, opt.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if opt.UpdatedSince != nil {
		args = append(args, *opt.UpdatedSince)
		where = append(where, fmt.Sprintf("p.updated_at >= $%d", len(args)))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	sb.WriteString(" ORDER BY p.id ASC")

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
