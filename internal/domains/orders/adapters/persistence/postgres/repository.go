package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.Run before use.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps an order to a relational row. Seq is assigned on first
// insert and never rewritten, so it gives List its collection order.
type orderRecord struct {
	Seq         int64           `gorm:"column:seq;autoIncrement;uniqueIndex"`
	ID          string          `gorm:"primaryKey;column:id;size:64"`
	Name        string          `gorm:"column:name;not null"`
	Category    string          `gorm:"column:category"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Status      string          `gorm:"column:status;type:varchar(32);index"`
	LastUpdated time.Time       `gorm:"column:last_updated;type:date;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order; an update keeps the row's position.
func (r *Repository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Order{}, err
	}
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":         record.Name,
				"category":     record.Category,
				"price":        record.Price,
				"quantity":     record.Quantity,
				"status":       record.Status,
				"last_updated": record.LastUpdated,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return domain.Order{}, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Order{}, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, ports.ErrNotFound
		}
		return domain.Order{}, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		Name:        order.Name,
		Category:    order.Category,
		Price:       order.Price,
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		LastUpdated: order.LastUpdated.Time(),
	}
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Status:      domain.Status(r.Status),
		LastUpdated: domain.DateOf(r.LastUpdated.UTC()),
	}
}
