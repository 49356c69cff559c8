package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant вариант товара (размер/объём) со своим остатком.
//
// ВНИМАНИЕ: Stock может уходить в минус. Списание при выдаче заказа не блокируется
// нехваткой остатка, чтобы гонки между заказами не останавливали выдачу.
// Отрицательный остаток выравнивается приходом. Не превращать в проверку "stock >= 0".
type ProductVariant struct {
	Size     string           `json:"size"`
	Price    decimal.Decimal  `json:"price"`
	PriceOld *decimal.Decimal `json:"priceOld,omitempty"`
	Stock    int              `json:"stock"`
}

// Product товар с вариантами; варианты хранятся и записываются целиком
type Product struct {
	ID        int64
	Name      string
	Variants  []ProductVariant
	UpdatedAt time.Time
}

// VariantIndex позиция варианта по ключу (размеру) или -1
func (p *Product) VariantIndex(key string) int {
	for i, v := range p.Variants {
		if v.Size == key {
			return i
		}
	}
	return -1
}

// CrossesLowStock true, если остаток опустился до порога или ниже с уровня выше порога
func CrossesLowStock(oldStock, newStock int) bool {
	return oldStock > LowStockThreshold && newStock <= LowStockThreshold
}

// StockAdjustment запись журнала корректировок остатка
// EventKey уникален: повторный триггер с тем же ключом ничего не меняет
type StockAdjustment struct {
	EventKey   string
	ProductID  int64
	VariantKey string
	Delta      int
	CreatedAt  time.Time
}

// FulfilEventKey ключ списания позиции заказа
func FulfilEventKey(orderID int64, item int) string {
	return fmt.Sprintf("order:%d:item:%d:fulfil", orderID, item)
}

// ReturnEventKey ключ возврата позиции заказа
func ReturnEventKey(orderID int64, item int) string {
	return fmt.Sprintf("order:%d:item:%d:return", orderID, item)
}

// ManualEventKey ключ ручной корректировки; не пересекается с ключами заказов
func ManualEventKey(productID int64, key string) string {
	return fmt.Sprintf("manual:%d:%s", productID, key)
}

// SameTarget true, если корректировки относятся к одному событию: товар, вариант и изменение совпадают
func (a StockAdjustment) SameTarget(other StockAdjustment) bool {
	return a.ProductID == other.ProductID && a.VariantKey == other.VariantKey && a.Delta == other.Delta
}
