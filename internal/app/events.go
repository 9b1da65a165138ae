package app

import (
	"math"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/openpdv/pdvserver/internal/domain"
	"github.com/openpdv/pdvserver/internal/pos"
	"github.com/openpdv/pdvserver/pkg/metrics"
)

// initEvents wires the in-process event bus. The ledger publishes after each
// committed order; subscribers here keep the metrics counters and audit log.
func (a *Application) initEvents() {
	a.bus = evbus.New()

	err := a.bus.Subscribe(pos.EventOrderCreated, func(order *domain.Order) {
		metrics.IncrGauge("pos_orders_created", 1)
		metrics.IncrGauge("pos_revenue_cents", int64(math.Round(order.Total*100)))
		zap.L().Info("order created",
			zap.Int64("order_id", order.ID),
			zap.String("order_no", order.OrderNo),
			zap.Int64("table_id", order.TableID),
			zap.Int("items", len(order.Items)),
			zap.Float64("total", order.Total))
	})
	if err != nil {
		zap.S().Errorf("event bus subscribe error %s", err.Error())
	}
}
