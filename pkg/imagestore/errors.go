package imagestore

import "errors"

var (
	ErrBucketRequired   = errors.New("imagestore: bucket is required")
	ErrEndpointRequired = errors.New("imagestore: endpoint is required")
	ErrEmptySource      = errors.New("imagestore: empty source image")
	ErrInvalidBounds    = errors.New("imagestore: width and height must be positive")
	ErrDecodeFailed     = errors.New("imagestore: failed to decode source image")
)
