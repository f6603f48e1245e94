package stock

import "errors"

var (
	ErrUnknownMethod = errors.New("unknown stock calculation method")
)
