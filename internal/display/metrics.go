package display

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kamenart/catalog-service/internal/catalog"
)

var (
	// resolutions tracks display state resolutions per category.
	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "display_resolutions_total",
		Help: "Total number of display state resolutions by category",
	}, []string{"category"})

	// priceOnRequest tracks resolutions that ended in the price-on-request state.
	priceOnRequest = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "display_price_on_request_total",
		Help: "Total number of resolutions showing price on request by category",
	}, []string{"category"})

	// legacySentinelHits tracks resolutions where price-on-request came from
	// description text rather than a zero/absent price.
	legacySentinelHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "display_legacy_sentinel_hits_total",
		Help: "Total number of resolutions where the price-on-request state came from legacy description text",
	})

	// discountBadges tracks resolutions that rendered a discount badge.
	discountBadges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "display_discount_badges_total",
		Help: "Total number of resolutions showing a discount badge by category",
	}, []string{"category"})
)

func recordResolution(p *catalog.Product, state ResolvedDisplayState, legacyHit bool) {
	cat := string(p.Category)
	resolutions.WithLabelValues(cat).Inc()

	if state.IsPriceOnRequest {
		priceOnRequest.WithLabelValues(cat).Inc()
		if legacyHit {
			legacySentinelHits.Inc()
		}
	}
	if state.ShowDiscountBadge {
		discountBadges.WithLabelValues(cat).Inc()
	}
}
