package pos

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/internal/domain"
)

// Catalog manages products and dining tables. Records are plain data with a
// uniqueness constraint on the name; no cross-entity validation happens here.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (s *Catalog) CreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrValidation, "product name is required")
	}
	if price < 0 {
		return nil, errors.Wrap(ErrValidation, "product price must not be negative")
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).Where("name = ?", name).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, errors.Wrapf(ErrDuplicate, "product %q", name)
	}

	now := time.Now()
	p := domain.Product{Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Catalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "product %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct rewrites name and price. Historical order items keep their
// snapshotted name and unit price.
func (s *Catalog) UpdateProduct(ctx context.Context, id int64, name string, price float64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrValidation, "product name is required")
	}
	if price < 0 {
		return nil, errors.Wrap(ErrValidation, "product price must not be negative")
	}

	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != p.Name {
		var exists int64
		if err := s.db.WithContext(ctx).Model(&domain.Product{}).
			Where("name = ? AND id != ?", name, id).Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists > 0 {
			return nil, errors.Wrapf(ErrDuplicate, "product %q", name)
		}
	}

	p.Name = name
	p.Price = price
	p.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

func (s *Catalog) CreateTable(ctx context.Context, name string) (*domain.DiningTable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrValidation, "table name is required")
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&domain.DiningTable{}).Where("name = ?", name).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, errors.Wrapf(ErrDuplicate, "table %q", name)
	}

	now := time.Now()
	t := domain.DiningTable{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Catalog) ListTables(ctx context.Context) ([]domain.DiningTable, error) {
	var rows []domain.DiningTable
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
