// Package observability expone las métricas Prometheus de la aplicación.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsApplied cuenta movimientos aplicados con éxito, por operación
	// (create, update, delete) y tipo (IN, OUT).
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockcontrol_movements_applied_total",
		Help: "Movimientos de stock aplicados con éxito.",
	}, []string{"operation", "type"})

	// MovementsRejected cuenta movimientos rechazados, por razón
	// (insufficient_stock, validation, not_found, busy, storage).
	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockcontrol_movements_rejected_total",
		Help: "Movimientos de stock rechazados.",
	}, []string{"reason"})

	// HTTPRequests cuenta peticiones HTTP por método y clase de status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockcontrol_http_requests_total",
		Help: "Peticiones HTTP atendidas.",
	}, []string{"method", "status"})
)
