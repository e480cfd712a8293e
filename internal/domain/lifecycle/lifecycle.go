// Package lifecycle holds process-wide start and stop constants.
package lifecycle

import "time"

// DefaultTimeout bounds start-up pings and graceful shutdown of each component.
const DefaultTimeout = 10 * time.Second
