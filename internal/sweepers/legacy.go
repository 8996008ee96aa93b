package sweepers

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/kamenart/catalog-service/internal/database"
)

var legacySentinelGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "catalog_legacy_sentinel_products",
	Help: "Products still carrying price-on-request sentinel text alongside a positive price.",
})

// LegacySentinelSweeper periodically scans for products whose description
// still carries a price-on-request sentinel phrase while a positive price is
// stored. Those rows predate the structured priceOnRequest flag and should
// be migrated by hand.
type LegacySentinelSweeper struct {
	store    *database.ProductStore
	logger   *zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
}

// NewLegacySentinelSweeper creates a sweeper over store.
func NewLegacySentinelSweeper(store *database.ProductStore, logger *zerolog.Logger, interval time.Duration) *LegacySentinelSweeper {
	return &LegacySentinelSweeper{
		store:    store,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep. Blocks until ctx is cancelled or Stop is
// called.
func (s *LegacySentinelSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("Starting legacy sentinel sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Legacy sentinel sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Legacy sentinel sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Legacy sentinel sweep failed")
			}
		}
	}
}

// Stop signals the sweeper to stop
func (s *LegacySentinelSweeper) Stop() {
	close(s.stopChan)
}

// Sweep runs one scan and reports what it found.
func (s *LegacySentinelSweeper) Sweep(ctx context.Context) error {
	s.logger.Debug().Msg("Scanning for legacy sentinel products")

	products, err := s.store.ListLegacySentinelProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list legacy sentinel products: %w", err)
	}

	legacySentinelGauge.Set(float64(len(products)))

	for _, p := range products {
		s.logger.Warn().
			Int64("id", p.ID).
			Str("slug", p.Slug).
			Str("category", p.Category).
			Msg("Product has sentinel text but a stored price")
	}

	return nil
}
