package exchangerate

import (
	"context"
	"errors"
	"fmt"
	"time"

	rateRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/exchangerate"
	"github.com/m04kA/SMC-RentalService/internal/integrations/fxapi"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Источники курса для метрики exchange_rate_lookups_total
const (
	sourceCache = "cache"
	sourceDB    = "db"
	sourceAPI   = "api"
	sourceMiss  = "miss"
)

// Options настройки провайдера
type Options struct {
	HistoricalTTL time.Duration
	TodayTTL      time.Duration
	LookbackDays  int
}

// Provider отдает курс "CLP за 1 USD" на дату: Redis -> PostgreSQL -> внешний API.
// Полученный из API курс сохраняется в БД и кэш. Повторы запросов не выполняются.
type Provider struct {
	cache        Cache
	repo         Repository
	api          APIClient
	opts         Options
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewProvider создает провайдер курсов; cache и m могут быть nil
func NewProvider(cache Cache, repo Repository, api APIClient, opts Options, m *metrics.Metrics, logger Logger) *Provider {
	if opts.LookbackDays < 0 {
		opts.LookbackDays = 0
	}
	return &Provider{
		cache:        cache,
		repo:         repo,
		api:          api,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// TodayRate курс на сегодня
func (p *Provider) TodayRate(ctx context.Context, tenantID string) (float64, error) {
	return p.RateFor(ctx, tenantID, p.today())
}

// RateFor курс на дату. Для будущих дат используется сегодняшний курс.
// Если на дату курс не опубликован, берется последний опубликованный за LookbackDays дней.
func (p *Provider) RateFor(ctx context.Context, tenantID string, day types.Date) (float64, error) {
	today := p.today()
	if day.After(today) {
		day = today
	}

	for i := 0; i <= p.opts.LookbackDays; i++ {
		candidate := day.AddDays(-i)

		rate, err := p.lookup(ctx, tenantID, candidate, today)
		if err == nil {
			if i > 0 {
				p.cacheRate(ctx, tenantID, day, rate, today)
			}
			return rate, nil
		}
		if !errors.Is(err, ErrRateNotFound) {
			return 0, err
		}
	}

	p.count(sourceMiss)
	p.logger.Warn("RateFor: no rate for tenant=%s on %s within %d days", tenantID, day, p.opts.LookbackDays)
	return 0, fmt.Errorf("%w: %s", ErrRateNotFound, day)
}

// lookup ищет курс ровно на дату по цепочке источников
func (p *Provider) lookup(ctx context.Context, tenantID string, day, today types.Date) (float64, error) {
	if p.cache != nil {
		rate, ok, err := p.cache.Get(ctx, tenantID, day)
		if err != nil {
			p.logger.Warn("RateFor: cache read failed for tenant=%s, date=%s: %v", tenantID, day, err)
		} else if ok {
			p.count(sourceCache)
			return rate, nil
		}
	}

	rate, err := p.repo.Get(ctx, tenantID, day)
	switch {
	case err == nil:
		p.count(sourceDB)
		p.cacheRate(ctx, tenantID, day, rate, today)
		return rate, nil
	case !errors.Is(err, rateRepo.ErrRateNotFound):
		p.logger.Error("RateFor: repository error for tenant=%s, date=%s: %v", tenantID, day, err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	rate, err = p.api.GetRate(ctx, day)
	if err != nil {
		if errors.Is(err, fxapi.ErrRateNotFound) {
			return 0, ErrRateNotFound
		}
		p.logger.Error("RateFor: exchange rate API failed for date=%s: %v", day, err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	p.count(sourceAPI)

	if err := p.repo.Upsert(ctx, tenantID, day, rate); err != nil {
		p.logger.Warn("RateFor: failed to persist rate for tenant=%s, date=%s: %v", tenantID, day, err)
	}
	p.cacheRate(ctx, tenantID, day, rate, today)

	return rate, nil
}

func (p *Provider) cacheRate(ctx context.Context, tenantID string, day types.Date, rate float64, today types.Date) {
	if p.cache == nil {
		return
	}
	ttl := p.opts.HistoricalTTL
	if !day.Before(today) {
		ttl = p.opts.TodayTTL
	}
	if err := p.cache.Set(ctx, tenantID, day, rate, ttl); err != nil {
		p.logger.Warn("RateFor: cache write failed for tenant=%s, date=%s: %v", tenantID, day, err)
	}
}

func (p *Provider) count(source string) {
	if p.metrics != nil {
		p.metrics.ExchangeRateLookups.WithLabelValues(source).Inc()
	}
}

func (p *Provider) today() types.Date {
	return types.DateOf(p.timeProvider.Now())
}
