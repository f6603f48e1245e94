package credential

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialsNotFound = errors.New("no credentials configured for scope")
)

// InvalidCredentialsError reports credentials that failed format validation.
// Both values are interpolated so the failing scope can be identified in logs.
type InvalidCredentialsError struct {
	APIKey      string
	RestAuthKey string
	Reason      string
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid account credentials: %s (api key %q, auth key %q)",
		e.Reason, e.APIKey, e.RestAuthKey)
}
