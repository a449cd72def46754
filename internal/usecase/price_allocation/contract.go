package price_allocation

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// AvailabilityResolver источник каталога юнитов и тарифов
type AvailabilityResolver interface {
	Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error)
}

// ChannelRepository интерфейс репозитория каналов продаж
type ChannelRepository interface {
	ListChannels(ctx context.Context, tenantID string) ([]domain.Channel, error)
}

// PricingEngine интерфейс движка цен
type PricingEngine interface {
	Price(ctx context.Context, req pricing.Request) (*pricing.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
