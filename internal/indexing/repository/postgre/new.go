package postgre

import (
	"database/sql"

	"catalog-sync-srv/internal/indexing/repository"
)

// implRepository implements indexing repository.Repository interface
type implRepository struct {
	db *sql.DB
}

// New creates a new PostgreSQL repository for the indexing domain
func New(db *sql.DB) repository.Repository {
	return &implRepository{
		db: db,
	}
}
