package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlacedCounter counts successfully placed orders
	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	// OrderFailuresCounter counts rejected order placements by reason
	OrderFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_failures_total",
			Help: "Total number of rejected order placements",
		},
		[]string{"reason"},
	)

	// CatalogOperationsCounter counts admin mutations per entity
	CatalogOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_operations_total",
			Help: "Total number of catalog mutations",
		},
		[]string{"entity", "operation"},
	)

	// ProductStockGauge tracks the last known stock per product
	ProductStockGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_product_stock",
			Help: "Current stock level for products",
		},
		[]string{"product_id"},
	)

	// ViewInvalidationsCounter counts list view refresh signals
	ViewInvalidationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_view_invalidations_total",
			Help: "Total number of list view invalidations",
		},
		[]string{"view"},
	)

	// AuthAttemptsCounter counts login attempts by result
	AuthAttemptsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// DbOperationDuration records the duration of multi-statement operations
	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DbOperationDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordCatalogOperation increments the counter for catalog mutations
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordOrderFailure increments the rejected order counter
func RecordOrderFailure(reason string) {
	OrderFailuresCounter.WithLabelValues(reason).Inc()
}

// SetProductStock updates the stock gauge for a product
func SetProductStock(productID uint, stock int) {
	ProductStockGauge.WithLabelValues(strconv.FormatUint(uint64(productID), 10)).Set(float64(stock))
}

// DeleteProductStock drops the gauge series of a removed product
func DeleteProductStock(productID uint) {
	ProductStockGauge.DeleteLabelValues(strconv.FormatUint(uint64(productID), 10))
}
