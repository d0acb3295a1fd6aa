package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tejasm/munim/internal/database"
)

// SeedDefaults ensures a new database has a small product catalog and a few
// recent transactions to aggregate over. The rows are written in one
// transaction, so a half-seeded database cannot be observed. Idempotent and
// safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, now time.Time) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []Product{
		{Name: "Business Consulting Service", Category: "Services", SKU: "BCS-001", CostPrice: 500, SellingPrice: 1500, StockQuantity: 100, LowStockThreshold: 10},
		{Name: "Digital Marketing Package", Category: "Services", SKU: "DMP-002", CostPrice: 800, SellingPrice: 2000, StockQuantity: 50, LowStockThreshold: 5},
		{Name: "Software Development", Category: "Services", SKU: "SD-003", CostPrice: 2000, SellingPrice: 5000, StockQuantity: 25, LowStockThreshold: 3},
		{Name: "Office Supplies Bundle", Category: "Products", SKU: "OSB-004", CostPrice: 100, SellingPrice: 250, StockQuantity: 200, LowStockThreshold: 20},
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = seedID("product:" + p.SKU)
	}

	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	txs := []Transaction{
		{Type: TypeIncome, Amount: 15000, Category: "Services", Description: "Business Consulting - Q4 Strategy", Date: daysAgo(1), PaymentMethod: "Bank Transfer", ProductID: &ids[0]},
		{Type: TypeIncome, Amount: 20000, Category: "Services", Description: "Digital Marketing Campaign", Date: daysAgo(2), PaymentMethod: "Credit Card", ProductID: &ids[1]},
		{Type: TypeIncome, Amount: 50000, Category: "Services", Description: "Custom ERP Development", Date: daysAgo(3), PaymentMethod: "Bank Transfer", ProductID: &ids[2]},
		{Type: TypeIncome, Amount: 2500, Category: "Sales", Description: "Office Supplies - Corporate Order", Date: daysAgo(4), PaymentMethod: "Cash", ProductID: &ids[3]},
		{Type: TypeIncome, Amount: 18000, Category: "Services", Description: "SEO Optimization Service", Date: daysAgo(5), PaymentMethod: "UPI"},
		{Type: TypeExpense, Amount: 5000, Category: "Salary", Description: "Employee Salary - Development Team", Date: daysAgo(1), PaymentMethod: "Bank Transfer"},
		{Type: TypeExpense, Amount: 1200, Category: "Software", Description: "Microsoft Office 365 Subscription", Date: daysAgo(2), PaymentMethod: "Credit Card"},
		{Type: TypeExpense, Amount: 8000, Category: "Rent", Description: "Office Rent - Monthly", Date: daysAgo(3), PaymentMethod: "Bank Transfer"},
		{Type: TypeExpense, Amount: 2500, Category: "Marketing", Description: "Google Ads Campaign", Date: daysAgo(4), PaymentMethod: "Credit Card"},
		{Type: TypeExpense, Amount: 1500, Category: "Utilities", Description: "Electricity and Internet", Date: daysAgo(5), PaymentMethod: "UPI"},
	}
	return database.WithTx(db, func(tx *sql.Tx) error {
		for i, p := range products {
			_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO products(id, name, category, sku, cost_price, selling_price, stock_quantity, low_stock_threshold)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?);
			`, ids[i], p.Name, p.Category, p.SKU, p.CostPrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold)
			if err != nil {
				return err
			}
		}
		for _, t := range txs {
			_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions(id, type, amount, category, description, date, payment_method, product_id)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?);
			`, seedID("tx:"+t.Description), t.Type, t.Amount, t.Category, t.Description, t.Date, t.PaymentMethod, t.ProductID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func seedID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
