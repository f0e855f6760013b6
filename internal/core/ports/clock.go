package ports

import "time"

// IDGenerator returns collision-resistant opaque ids.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time
