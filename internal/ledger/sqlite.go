package ledger

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
)

// SQLStore is the sqlite-backed ledger.
type SQLStore struct {
	db *sql.DB

	mu   sync.Mutex
	subs []*subscription
}

type subscription struct {
	fn     func()
	active bool
}

// NewSQLStore wraps an open database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Transactions(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, type, amount, category, description, date, payment_method, product_id, created_at
	FROM transactions
	ORDER BY rowid ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, name, category, sku, cost_price, selling_price, stock_quantity, low_stock_threshold, created_at
	FROM products
	ORDER BY rowid ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		var sku sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &sku, &p.CostPrice,
			&p.SellingPrice, &p.StockQuantity, &p.LowStockThreshold, &p.CreatedAt); err != nil {
			return nil, err
		}
		if sku.Valid {
			p.SKU = sku.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) AddTransaction(ctx context.Context, nt NewTransaction) (Transaction, error) {
	if nt.Amount < 0 || (nt.Type != TypeIncome && nt.Type != TypeExpense) {
		return Transaction{}, ErrInvalidTransaction
	}

	t := Transaction{
		ID:            uuid.NewString(),
		Type:          nt.Type,
		Amount:        nt.Amount,
		Category:      nt.Category,
		Description:   nt.Description,
		Date:          nt.Date,
		PaymentMethod: nt.PaymentMethod,
		ProductID:     nt.ProductID,
	}

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO transactions(id, type, amount, category, description, date, payment_method, product_id, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, t.ID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.PaymentMethod, t.ProductID)
	if err != nil {
		return Transaction{}, err
	}

	s.notify()
	return t, nil
}

// Subscribe registers fn for synchronous post-commit notification.
func (s *SQLStore) Subscribe(fn func()) func() {
	sub := &subscription{fn: fn, active: true}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		// active guards a notify round already snapshotted; removal keeps
		// the slice from growing with dead entries.
		sub.active = false
		for i, cur := range s.subs {
			if cur == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

// notify broadcasts one round, in registration order.
func (s *SQLStore) notify() {
	s.mu.Lock()
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, sub := range subs {
		if sub.active {
			sub.fn()
		}
	}
}

// scanTransaction handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var productID sql.NullString
	if err := row.Scan(&t.ID, &t.Type, &t.Amount, &t.Category, &t.Description,
		&t.Date, &t.PaymentMethod, &productID, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	if productID.Valid {
		t.ProductID = &productID.String
	}
	return t, nil
}
