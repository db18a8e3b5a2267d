package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/mangaportal/mangaportal-server/internal/config"
	"github.com/mangaportal/mangaportal-server/internal/logger"
	"github.com/mangaportal/mangaportal-server/internal/sse"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.WithComponent("sse").Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
	cancelMaintenance context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	h.cancelMaintenance()
	return h.Close()
}

// ProvideStore provides the database store. Favorites and catalog
// writes emit through the SSE manager. A background maintenance loop
// sweeps expired sessions and runs Badger value log GC.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.WithComponent("store").Logger, sseHandle.Manager)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go db.StartMaintenance(ctx, maintenanceInterval)

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db, cancelMaintenance: cancel}, nil
}
