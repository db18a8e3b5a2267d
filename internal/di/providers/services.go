package providers

import (
	"github.com/samber/do/v2"

	"github.com/mangaportal/mangaportal-server/internal/auth"
	"github.com/mangaportal/mangaportal-server/internal/logger"
	"github.com/mangaportal/mangaportal-server/internal/media/images"
	"github.com/mangaportal/mangaportal-server/internal/service"
	"github.com/mangaportal/mangaportal-server/internal/validation"
)

// ProvideImageProcessor provides the avatar image processor.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return images.NewProcessor(log.WithComponent("images").Logger), nil
}

// ProvideSessionService provides the session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokens, validation.New(), log.WithComponent("session").Logger), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, searchHandle.Index, log.WithComponent("catalog").Logger), nil
}

// ProvideFavoritesService provides the favorites service.
func ProvideFavoritesService(i do.Injector) (*service.FavoritesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoritesService(storeHandle.Store, log.WithComponent("favorites").Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, processor, log.WithComponent("profile").Logger), nil
}
