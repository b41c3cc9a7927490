package recorder

import "time"

const (
	defaultFlushSize     = 500
	defaultFlushInterval = 2 * time.Second
	defaultFlushRPS      = 10
)
