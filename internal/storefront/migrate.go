package storefront

import (
	"fmt"

	"gorm.io/gorm"

	cartdomain "github.com/tair/crumbly/internal/cart/domain"
	catalogdomain "github.com/tair/crumbly/internal/catalog/domain"
	favoritedomain "github.com/tair/crumbly/internal/favorite/domain"
	userdomain "github.com/tair/crumbly/internal/user/domain"
	"github.com/tair/crumbly/pkg/logger"
)

// AutoMigrate creates the storefront tables and their unique indexes
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalogdomain.Cake{},
		&userdomain.User{},
		&favoritedomain.Favorite{},
		&cartdomain.CartItem{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Logger.Info().Msg("Database migrations completed")
	return nil
}
