package http

import (
	"errors"
	"net/http"

	"catalog-sync-srv/internal/credential"
	"catalog-sync-srv/internal/indexing"
	pkgErrors "catalog-sync-srv/pkg/errors"
)

var (
	errInvalidBody     = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	errInvalidQuery    = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	errUnknownAction   = pkgErrors.NewHTTPError(http.StatusBadRequest, "Unknown sync action")
	errInvalidEntityID = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid entity id")
	errMissingAPIKey   = pkgErrors.NewHTTPError(http.StatusBadRequest, "Missing api_key parameter")
	errStoreNotFound   = pkgErrors.NewHTTPError(http.StatusNotFound, "Store not found")
	errEntityNotFound  = pkgErrors.NewHTTPError(http.StatusNotFound, "Indexing entity not found")
	errBadCredentials  = pkgErrors.NewHTTPError(http.StatusUnauthorized, "Invalid account credentials")
)

func (h handler) mapError(err error) error {
	var credErr *credential.InvalidCredentialsError
	if errors.As(err, &credErr) {
		return errBadCredentials
	}

	switch {
	case errors.Is(err, indexing.ErrUnknownAction):
		return errUnknownAction
	case errors.Is(err, indexing.ErrStoreNotFound):
		return errStoreNotFound
	case errors.Is(err, indexing.ErrEntityNotFound):
		return errEntityNotFound
	default:
		return err
	}
}
