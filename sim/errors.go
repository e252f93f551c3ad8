package sim

import "errors"

// ErrInvalidConfiguration is returned when Options cannot describe a
// runnable scenario. No Flow is created.
var ErrInvalidConfiguration = errors.New("invalid configuration")
