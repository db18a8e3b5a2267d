package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/mangaportal/mangaportal-server/internal/config"
	"github.com/mangaportal/mangaportal-server/internal/logger"
	"github.com/mangaportal/mangaportal-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve full-text index and wires it
// into the store so catalog writes are indexed as they land.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewIndex(search.Options{
		DataPath: filepath.Join(cfg.Data.BasePath, "search"),
		Logger:   log.WithComponent("search").Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	log.Info("Search index ready")

	return &SearchIndexHandle{Index: index}, nil
}
