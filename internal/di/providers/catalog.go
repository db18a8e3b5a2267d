package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/mangaportal/mangaportal-server/internal/catalog"
	"github.com/mangaportal/mangaportal-server/internal/config"
	"github.com/mangaportal/mangaportal-server/internal/logger"
	"github.com/mangaportal/mangaportal-server/internal/service"
)

// CatalogBootstrap records what catalog initialization did at startup.
type CatalogBootstrap struct {
	Seeded  int
	Indexed int
}

// ProvideCatalogBootstrap seeds the built-in dataset into an empty
// store and rebuilds the search index from whatever the store holds.
func ProvideCatalogBootstrap(i do.Injector) (*CatalogBootstrap, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()

	seeded, err := catalog.SeedIfEmpty(ctx, storeHandle.Store)
	if err != nil {
		return nil, err
	}
	if seeded > 0 {
		log.Info("Catalog seeded", "entries", seeded)
	}

	indexed, err := catalogService.ReindexAll(ctx)
	if err != nil {
		return nil, err
	}

	return &CatalogBootstrap{Seeded: seeded, Indexed: indexed}, nil
}

// OverlayHandle wraps the catalog overlay watcher for lifecycle management.
// A nil Overlay means no overlay file is configured.
type OverlayHandle struct {
	*catalog.Overlay
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *OverlayHandle) Shutdown() error {
	if h.Overlay == nil {
		return nil
	}
	h.cancel()
	return h.Close()
}

// ProvideCatalogOverlay provides the hot-reloading catalog overlay
// watcher when an overlay file is configured.
func ProvideCatalogOverlay(i do.Injector) (*OverlayHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	// Overlay runs after bootstrap so its entries win over the seed.
	_ = do.MustInvoke[*CatalogBootstrap](i)

	if cfg.Catalog.OverlayPath == "" {
		return &OverlayHandle{}, nil
	}

	overlay, err := catalog.NewOverlay(cfg.Catalog.OverlayPath, storeHandle.Store, sseHandle.Manager, log.WithComponent("overlay").Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := overlay.Start(ctx); err != nil {
		cancel()
		_ = overlay.Close()
		return nil, err
	}

	log.Info("Catalog overlay active", "path", cfg.Catalog.OverlayPath)

	return &OverlayHandle{Overlay: overlay, cancel: cancel}, nil
}
