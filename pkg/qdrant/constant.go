package qdrant

import "time"

const (
	// DefaultTimeout is the default timeout for Qdrant operations.
	DefaultTimeout = 30 * time.Second

	// DefaultPingTimeout is the timeout for the initial connection ping.
	DefaultPingTimeout = 5 * time.Second
)
