package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	Name        string    `gorm:"column:name;not null"`
	Price       float64   `gorm:"column:price;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Quantity    int64     `gorm:"column:quantity;not null"`
	Image       string    `gorm:"column:image"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"price":       record.Price,
				"description": record.Description,
				"quantity":    record.Quantity,
				"image":       record.Image,
				"updated_at":  now,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// SetQuantity overwrites the stock of an existing product.
func (r *Repository) SetQuantity(ctx context.Context, id string, quantity int64) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Decrement subtracts qty in a single conditional UPDATE so concurrent purchases cannot oversell.
func (r *Repository) Decrement(ctx context.Context, id string, qty int64) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidPurchaseQty
	}
	result := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInsufficientStock
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Quantity:    product.Quantity,
		Image:       product.Image,
	}
}

func (r productRecord) toProjection() *projection.Projection[*domain.Product] {
	return projection.New(&domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Quantity:    r.Quantity,
		Image:       r.Image,
	}, r.CreatedAt, r.UpdatedAt)
}
