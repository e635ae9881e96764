// Package storefront assembles the storefront HTTP application.
package storefront

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	cataloghttp "github.com/tair/crumbly/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/crumbly/internal/catalog/domain"
	catalogrepo "github.com/tair/crumbly/internal/catalog/repository"
	catalogquery "github.com/tair/crumbly/internal/catalog/usecase/query"

	carthttp "github.com/tair/crumbly/internal/cart/delivery/http"
	cartdomain "github.com/tair/crumbly/internal/cart/domain"
	cartrepo "github.com/tair/crumbly/internal/cart/repository"
	cartcommand "github.com/tair/crumbly/internal/cart/usecase/command"
	cartquery "github.com/tair/crumbly/internal/cart/usecase/query"

	favoritehttp "github.com/tair/crumbly/internal/favorite/delivery/http"
	favoritedomain "github.com/tair/crumbly/internal/favorite/domain"
	favoriterepo "github.com/tair/crumbly/internal/favorite/repository"
	favoritecommand "github.com/tair/crumbly/internal/favorite/usecase/command"
	favoritequery "github.com/tair/crumbly/internal/favorite/usecase/query"

	"github.com/tair/crumbly/internal/config"
	userhttp "github.com/tair/crumbly/internal/user/delivery/http"
	userdomain "github.com/tair/crumbly/internal/user/domain"
	userrepo "github.com/tair/crumbly/internal/user/repository"
	usercommand "github.com/tair/crumbly/internal/user/usecase/command"
	userquery "github.com/tair/crumbly/internal/user/usecase/query"

	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/auth"
	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/middleware"
	"github.com/tair/crumbly/pkg/storage"
)

// Handlers holds every HTTP handler of the storefront
type Handlers struct {
	Catalog   *cataloghttp.CatalogHandler
	Favorites *favoritehttp.FavoriteHandler
	Cart      *carthttp.CartHandler
	Users     *userhttp.UserHandler
	Metrics   *middleware.Metrics
}

// ProvideExecutor provides the query executor bounded by the configured timeout
func ProvideExecutor(db *gorm.DB, cfg *config.Config) database.Executor {
	return database.NewExecutor(db, cfg.Database.QueryTimeout)
}

// ProvideTokenManager provides the session token manager
func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

// ProvideSessionConfig provides the cookie and upload settings of the user handler
func ProvideSessionConfig(cfg *config.Config) userhttp.SessionConfig {
	return userhttp.SessionConfig{
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		TokenTTL:       cfg.Auth.TokenTTL,
		MaxUploadBytes: cfg.Upload.MaxUploadBytes,
	}
}

// ProvideRegisterUserHandler provides the registration command with the configured bcrypt cost
func ProvideRegisterUserHandler(
	repo userdomain.UserRepository,
	photos storage.PhotoStorage,
	events kafka.EventPublisher,
	cfg *config.Config,
) *usercommand.RegisterUserHandler {
	return usercommand.NewRegisterUserHandler(repo, photos, events, cfg.Auth.BcryptCost)
}

// CatalogSet provides the catalog reader
var CatalogSet = wire.NewSet(
	catalogrepo.NewSQLCakeRepository,
	wire.Bind(new(catalogdomain.CakeRepository), new(*catalogrepo.SQLCakeRepository)),
	catalogquery.NewListByCategoryHandler,
	catalogquery.NewListForViewerHandler,
	cataloghttp.NewCatalogHandler,
)

// FavoriteSet provides the favorites manager
var FavoriteSet = wire.NewSet(
	favoriterepo.NewSQLFavoriteRepository,
	wire.Bind(new(favoritedomain.FavoriteRepository), new(*favoriterepo.SQLFavoriteRepository)),
	favoritecommand.NewToggleFavoriteHandler,
	favoritecommand.NewDeleteFavoriteHandler,
	favoritequery.NewCountFavoritesHandler,
	favoritequery.NewListFavoritesHandler,
	favoritehttp.NewFavoriteHandler,
)

// CartSet provides the cart manager
var CartSet = wire.NewSet(
	cartrepo.NewSQLCartRepository,
	wire.Bind(new(cartdomain.CartRepository), new(*cartrepo.SQLCartRepository)),
	cartcommand.NewAddToCartHandler,
	cartcommand.NewRemoveFromCartHandler,
	cartquery.NewCountCartHandler,
	cartquery.NewListCartHandler,
	carthttp.NewCartHandler,
)

// UserSet provides the auth manager
var UserSet = wire.NewSet(
	userrepo.NewSQLUserRepository,
	wire.Bind(new(userdomain.UserRepository), new(*userrepo.SQLUserRepository)),
	ProvideTokenManager,
	ProvideSessionConfig,
	ProvideRegisterUserHandler,
	usercommand.NewLoginUserHandler,
	userquery.NewGetSessionHandler,
	userquery.NewCountUsersHandler,
	userhttp.NewUserHandler,
)

// AllHandlersSet provides every storefront handler
var AllHandlersSet = wire.NewSet(
	ProvideExecutor,
	middleware.NewMetrics,
	CatalogSet,
	FavoriteSet,
	CartSet,
	UserSet,
	wire.Struct(new(Handlers), "*"),
)
