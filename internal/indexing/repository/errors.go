package repository

import "errors"

var (
	ErrEntityExists   = errors.New("indexing entity already exists for tuple")
	ErrEntityNotFound = errors.New("indexing entity not found")
	ErrInvalidOptions = errors.New("invalid repository options")
)
