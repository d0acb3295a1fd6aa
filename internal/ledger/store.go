package ledger

import (
	"context"
	"errors"
)

// ErrInvalidTransaction rejects appends with a negative amount or an
// unknown type.
var ErrInvalidTransaction = errors.New("ledger: invalid transaction")

// Reader is the read-side contract consumed by the analytics engine.
type Reader interface {
	// Transactions returns all transactions in insertion order.
	Transactions(ctx context.Context) ([]Transaction, error)
	// Products returns the product catalog.
	Products(ctx context.Context) ([]Product, error)
}

// Store is the full ledger contract: read-all, append, and synchronous
// change notification.
type Store interface {
	Reader
	// AddTransaction validates, assigns an id, appends, and notifies
	// subscribers before returning.
	AddTransaction(ctx context.Context, t NewTransaction) (Transaction, error)
	// Subscribe registers fn to be called synchronously, in registration
	// order, after every committed mutation. The returned function
	// unregisters it.
	Subscribe(fn func()) (unsubscribe func())
}
