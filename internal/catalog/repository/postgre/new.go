package postgre

import (
	"database/sql"

	"catalog-sync-srv/internal/catalog/repository"
)

// implRepository implements catalog repository.Repository interface
type implRepository struct {
	db *sql.DB
}

// New creates a new PostgreSQL repository for the catalog read model
func New(db *sql.DB) repository.Repository {
	return &implRepository{
		db: db,
	}
}
