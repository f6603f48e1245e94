package credential

import "context"

//go:generate mockery --name Provider
type Provider interface {
	// ForStore resolves the credentials configured for a store scope.
	ForStore(ctx context.Context, storeID int64) (AccountCredentials, error)
	// ForAPIKey resolves the credentials matching a public API key.
	ForAPIKey(ctx context.Context, apiKey string) (AccountCredentials, error)
	// List returns all configured credentials, one per store scope.
	List(ctx context.Context) ([]AccountCredentials, error)
	// Validate checks credential format before any remote call is attempted.
	Validate(cred AccountCredentials) error
}
