package credential

import (
	"context"
	"fmt"
	"regexp"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/encrypter"
)

// apiKeyPattern matches public JS API keys, e.g. "klevu-1234567890".
var apiKeyPattern = regexp.MustCompile(`^klevu-[A-Za-z0-9]+$`)

const minRestAuthKeyLength = 10

type implProvider struct {
	byStore  map[int64]AccountCredentials
	byAPIKey map[string]AccountCredentials
}

// New builds a provider from configured store credentials, decrypting the
// auth keys once at startup.
func New(stores []config.StoreCredentialConfig, enc encrypter.Encrypter) (Provider, error) {
	p := &implProvider{
		byStore:  make(map[int64]AccountCredentials, len(stores)),
		byAPIKey: make(map[string]AccountCredentials, len(stores)),
	}

	for _, s := range stores {
		authKey, err := enc.Decrypt(s.RestAuthKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt auth key for store %d: %w", s.StoreID, err)
		}
		cred := AccountCredentials{
			APIKey:      s.APIKey,
			RestAuthKey: authKey,
			StoreID:     s.StoreID,
		}
		p.byStore[s.StoreID] = cred
		p.byAPIKey[s.APIKey] = cred
	}

	return p, nil
}

func (p *implProvider) ForStore(ctx context.Context, storeID int64) (AccountCredentials, error) {
	cred, ok := p.byStore[storeID]
	if !ok {
		return AccountCredentials{}, fmt.Errorf("%w: store %d", ErrCredentialsNotFound, storeID)
	}
	return cred, nil
}

func (p *implProvider) ForAPIKey(ctx context.Context, apiKey string) (AccountCredentials, error) {
	cred, ok := p.byAPIKey[apiKey]
	if !ok {
		return AccountCredentials{}, fmt.Errorf("%w: api key %s", ErrCredentialsNotFound, apiKey)
	}
	return cred, nil
}

func (p *implProvider) List(ctx context.Context) ([]AccountCredentials, error) {
	creds := make([]AccountCredentials, 0, len(p.byStore))
	for _, cred := range p.byStore {
		creds = append(creds, cred)
	}
	return creds, nil
}

func (p *implProvider) Validate(cred AccountCredentials) error {
	if !apiKeyPattern.MatchString(cred.APIKey) {
		return &InvalidCredentialsError{
			APIKey:      cred.APIKey,
			RestAuthKey: cred.RestAuthKey,
			Reason:      "malformed api key",
		}
	}
	if len(cred.RestAuthKey) < minRestAuthKeyLength {
		return &InvalidCredentialsError{
			APIKey:      cred.APIKey,
			RestAuthKey: cred.RestAuthKey,
			Reason:      "auth key too short",
		}
	}
	return nil
}
