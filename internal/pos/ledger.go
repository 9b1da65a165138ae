package pos

import (
	"context"
	"fmt"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/internal/domain"
	"github.com/openpdv/pdvserver/pkg/common"
)

// EventOrderCreated is published on the bus after an order commits, with the
// persisted *domain.Order as payload.
const EventOrderCreated = "pos.order.created"

// LineItem is one (product, quantity) pair of an order request.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Ledger writes orders. Each order commits in a single transaction: header
// plus all line items, with prices snapshotted from the catalog at write time.
type Ledger struct {
	db  *gorm.DB
	bus evbus.Bus
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewLedger creates a ledger. bus may be nil when no event subscribers exist
// (tests, one-shot tools).
func NewLedger(db *gorm.DB, bus evbus.Bus) *Ledger {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return &Ledger{db: db, bus: bus}
}

func (s *Ledger) nextOrderNo(at time.Time) string {
	return fmt.Sprintf("%s-%s", at.Format("20060102"), node.Generate().Base36())
}

func (s *Ledger) CreateOrder(ctx context.Context, tableID int64, items []LineItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, errors.Wrap(ErrValidation, "order must contain at least one item")
	}
	if tableID <= 0 {
		return nil, errors.Wrap(ErrValidation, "table_id is required")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, errors.Wrapf(ErrValidation, "quantity for product %d must be positive", it.ProductID)
		}
	}

	var table domain.DiningTable
	err := s.db.WithContext(ctx).Where("id = ?", tableID).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "table %d", tableID)
	}
	if err != nil {
		return nil, err
	}

	// Resolve every product before any write; a missing product aborts the
	// whole order with nothing persisted.
	products := make(map[int64]domain.Product, len(items))
	for _, it := range items {
		if _, dup := products[it.ProductID]; dup {
			continue
		}
		var p domain.Product
		err := s.db.WithContext(ctx).Where("id = ?", it.ProductID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "product %d", it.ProductID)
		}
		if err != nil {
			return nil, err
		}
		products[it.ProductID] = p
	}

	now := time.Now()
	order := domain.Order{
		OrderNo:   s.nextOrderNo(now),
		TableID:   table.ID,
		CreatedAt: now,
	}

	var total float64
	for _, it := range items {
		p := products[it.ProductID]
		subtotal := common.Round2(p.Price * float64(it.Quantity))
		total += subtotal
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
	}
	order.Total = common.Round2(total)

	// Header and items commit together; readers and the backup job never see
	// a partial order.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(EventOrderCreated, &order)
	}
	return &order, nil
}

func (s *Ledger) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "order %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
