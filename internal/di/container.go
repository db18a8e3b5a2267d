// Package di provides dependency injection configuration for the MangaPortal server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/mangaportal/mangaportal-server/internal/auth"
	"github.com/mangaportal/mangaportal-server/internal/config"
	"github.com/mangaportal/mangaportal-server/internal/di/providers"
	"github.com/mangaportal/mangaportal-server/internal/logger"
	"github.com/mangaportal/mangaportal-server/internal/media/images"
	"github.com/mangaportal/mangaportal-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database and event layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideImageProcessor)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideFavoritesService)
	do.Provide(injector, providers.ProvideProfileService)

	// Catalog bootstrap and overlay
	do.Provide(injector, providers.ProvideCatalogBootstrap)
	do.Provide(injector, providers.ProvideCatalogOverlay)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.FavoritesService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)

	// Catalog bootstrap and overlay
	_ = do.MustInvoke[*providers.CatalogBootstrap](injector)
	_ = do.MustInvoke[*providers.OverlayHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
