//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/crumbly/internal/config"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/storage"
)

// InitializeHandlers wires the storefront handlers around the shared resources
func InitializeHandlers(
	cfg *config.Config,
	db *gorm.DB,
	photos storage.PhotoStorage,
	events kafka.EventPublisher,
	reg prometheus.Registerer,
) *Handlers {
	wire.Build(AllHandlersSet)
	return nil
}
