package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tejasm/munim/internal/database"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewSQLStore(db)
}

func TestAddAndListTransactions(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	store := openTestStore(t)

	date := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	first, err := store.AddTransaction(ctx, NewTransaction{
		Type: TypeIncome, Amount: 1500, Category: "Services",
		Description: "Consulting", Date: date, PaymentMethod: "UPI",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := store.AddTransaction(ctx, NewTransaction{
		Type: TypeExpense, Amount: 200, Category: "Supplies",
		Description: "Stationery", Date: date.Add(time.Hour), PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	txs, err := store.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// insertion order is preserved
	require.Equal(t, first.ID, txs[0].ID)
	require.Equal(t, second.ID, txs[1].ID)
	require.Equal(t, TypeIncome, txs[0].Type)
	require.Equal(t, 1500.0, txs[0].Amount)
	require.Equal(t, "Consulting", txs[0].Description)
	require.True(t, date.Equal(txs[0].Date))
	require.Nil(t, txs[0].ProductID)
}

func TestAddTransactionValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.AddTransaction(ctx, NewTransaction{Type: TypeIncome, Amount: -1, Date: time.Now()})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = store.AddTransaction(ctx, NewTransaction{Type: "refund", Amount: 10, Date: time.Now()})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	txs, err := store.Transactions(ctx)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestTransactionProductReference(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, SeedDefaults(ctx, store.db, time.Now().UTC()))

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	tx, err := store.AddTransaction(ctx, NewTransaction{
		Type: TypeIncome, Amount: 999, Category: "Services",
		Description: "With reference", Date: time.Now().UTC(), ProductID: &products[0].ID,
	})
	require.NoError(t, err)
	require.NotNil(t, tx.ProductID)

	txs, err := store.Transactions(ctx)
	require.NoError(t, err)
	last := txs[len(txs)-1]
	require.NotNil(t, last.ProductID)
	require.Equal(t, products[0].ID, *last.ProductID)
}

func TestSubscribeNotifiesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	var calls []string
	unsubA := store.Subscribe(func() { calls = append(calls, "a") })
	unsubB := store.Subscribe(func() { calls = append(calls, "b") })
	defer unsubB()

	_, err := store.AddTransaction(ctx, NewTransaction{
		Type: TypeIncome, Amount: 1, Category: "Sales", Description: "x", Date: time.Now(),
	})
	require.NoError(t, err)

	// one synchronous round per mutation, in registration order
	require.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	_, err = store.AddTransaction(ctx, NewTransaction{
		Type: TypeExpense, Amount: 1, Category: "Rent", Description: "y", Date: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestUnsubscribeReleasesSubscription(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	unsubA := store.Subscribe(func() {})
	unsubB := store.Subscribe(func() {})

	store.mu.Lock()
	require.Len(t, store.subs, 2)
	store.mu.Unlock()

	unsubA()
	store.mu.Lock()
	require.Len(t, store.subs, 1)
	store.mu.Unlock()

	// unsubscribing twice is harmless
	unsubA()
	unsubB()
	store.mu.Lock()
	require.Empty(t, store.subs)
	store.mu.Unlock()
}

func TestSubscribeNotNotifiedOnRejectedAppend(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	notified := 0
	defer store.Subscribe(func() { notified++ })()

	_, err := store.AddTransaction(context.Background(), NewTransaction{Type: TypeIncome, Amount: -5})
	require.ErrorIs(t, err, ErrInvalidTransaction)
	require.Zero(t, notified)
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, SeedDefaults(ctx, store.db, now))
	txs, err := store.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 10)

	require.NoError(t, SeedDefaults(ctx, store.db, now))
	again, err := store.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, again, 10)

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 4)

	// seed income rows reference seeded products where intended
	withRef := 0
	for _, tx := range txs {
		if tx.ProductID != nil {
			withRef++
		}
	}
	require.Equal(t, 4, withRef)
}
