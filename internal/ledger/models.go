package ledger

import "time"

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a ledger row. Rows are append-only: nothing in this
// core ever mutates or deletes one.
type Transaction struct {
	ID            string
	Type          string
	Amount        float64
	Category      string
	Description   string
	Date          time.Time
	PaymentMethod string
	ProductID     *string
	CreatedAt     time.Time
}

// NewTransaction carries the caller-supplied fields of a transaction;
// the store assigns the id.
type NewTransaction struct {
	Type          string
	Amount        float64
	Category      string
	Description   string
	Date          time.Time
	PaymentMethod string
	ProductID     *string
}

// Product represents a catalog row. Read-only to this core.
type Product struct {
	ID                string
	Name              string
	Category          string
	SKU               string
	CostPrice         float64
	SellingPrice      float64
	StockQuantity     int
	LowStockThreshold int
	CreatedAt         time.Time
}
