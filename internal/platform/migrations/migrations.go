package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the order board. Repositories never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter.
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
