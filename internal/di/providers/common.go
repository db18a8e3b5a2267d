// Package providers contains dependency injection providers for the MangaPortal server.
package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// maintenanceInterval is how often the store sweeps expired sessions
	// and runs value log GC.
	maintenanceInterval = time.Hour
)
