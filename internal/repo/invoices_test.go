package repo

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"invoicely/m/domain"
	"invoicely/m/internal/migrations"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	id, err := NewUsers(db).Create(context.Background(), username, username+"@example.com", "hash", "Test User")
	require.NoError(t, err)
	return id
}

func sampleInput() domain.InvoiceInput {
	due := "2026-10-01"
	return domain.InvoiceInput{
		InvoiceNumber:  "INV001",
		InvoiceDate:    "2026-09-01",
		DueDate:        &due,
		CompanyName:    "Acme Ltd",
		CompanyAddress: "1 Main St",
		CompanyEmail:   "billing@acme.test",
		CompanyPhone:   "+1 555 0100",
		ClientName:     "Globex",
		ClientAddress:  "9 Side Rd",
		ClientEmail:    "ap@globex.test",
		ClientPhone:    "+1 555 0199",
		Items: []domain.ItemInput{
			{Description: "Design", Quantity: 2, Price: 250, Total: 500},
			{Description: "Development", Quantity: 5, Price: 80, Total: 400},
			{Description: "Hosting", Quantity: 1, Price: 100, Total: 100},
		},
		Subtotal:    1000,
		TaxRate:     10,
		TaxAmount:   100,
		TotalAmount: 1070,
		Notes:       "Net 30",
	}
}

func TestCreateAndGetPreservesItemOrder(t *testing.T) {
	db := openTestDB(t)
	userID := createTestUser(t, db, "alice")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, userID, sampleInput())
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := invoices.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "INV001", got.InvoiceNumber)
	assert.Equal(t, "draft", got.Status)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Design", got.Items[0].Description)
	assert.Equal(t, "Development", got.Items[1].Description)
	assert.Equal(t, "Hosting", got.Items[2].Description)
	assert.Equal(t, 500.0, got.Items[0].Total)
	assert.Equal(t, 400.0, got.Items[1].Total)
	assert.Equal(t, 100.0, got.Items[2].Total)
}

func TestGetIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	userID := createTestUser(t, db, "alice")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, userID, sampleInput())
	require.NoError(t, err)

	first, err := invoices.Get(ctx, userID, id)
	require.NoError(t, err)
	second, err := invoices.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetScopedByOwner(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, alice, sampleInput())
	require.NoError(t, err)

	_, err = invoices.Get(ctx, bob, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = invoices.Get(ctx, alice, id+999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReplacesAllItems(t *testing.T) {
	db := openTestDB(t)
	userID := createTestUser(t, db, "alice")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, userID, sampleInput())
	require.NoError(t, err)

	updated := sampleInput()
	updated.InvoiceNumber = "INV001-R2"
	updated.Status = "sent"
	updated.Items = []domain.ItemInput{
		{Description: "Consulting", Quantity: 3, Price: 200, Total: 600},
		{Description: "Support", Quantity: 1, Price: 150, Total: 150},
	}
	require.NoError(t, invoices.Update(ctx, userID, id, updated))

	got, err := invoices.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "INV001-R2", got.InvoiceNumber)
	assert.Equal(t, "sent", got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Consulting", got.Items[0].Description)
	assert.Equal(t, "Support", got.Items[1].Description)
}

func TestUpdateForeignInvoiceNotFound(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, alice, sampleInput())
	require.NoError(t, err)

	err = invoices.Update(ctx, bob, id, sampleInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Alice's invoice is untouched.
	got, err := invoices.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.Len(t, got.Items, 3)
}

func TestUpdateDefaultsBlankStatusToDraft(t *testing.T) {
	db := openTestDB(t)
	userID := createTestUser(t, db, "alice")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, userID, sampleInput())
	require.NoError(t, err)

	updated := sampleInput()
	updated.Status = ""
	require.NoError(t, invoices.Update(ctx, userID, id, updated))

	got, err := invoices.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Status)
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	invoices := NewInvoices(db)
	ctx := context.Background()

	id, err := invoices.Create(ctx, alice, sampleInput())
	require.NoError(t, err)

	// Foreign-owned and nonexistent deletes both report not found.
	assert.ErrorIs(t, invoices.Delete(ctx, bob, id), domain.ErrNotFound)
	assert.ErrorIs(t, invoices.Delete(ctx, alice, id+999), domain.ErrNotFound)

	require.NoError(t, invoices.Delete(ctx, alice, id))
	_, err = invoices.Get(ctx, alice, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cascade removed the item rows as well.
	var orphans int
	require.NoError(t, db.Get(&orphans, `SELECT COUNT(*) FROM invoice_items WHERE invoice_id = $1`, id))
	assert.Zero(t, orphans)
}

func TestListNewestFirstWithItemCounts(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	invoices := NewInvoices(db)
	ctx := context.Background()

	first := sampleInput()
	first.InvoiceNumber = "INV001"
	_, err := invoices.Create(ctx, alice, first)
	require.NoError(t, err)

	second := sampleInput()
	second.InvoiceNumber = "INV002"
	second.Items = second.Items[:1]
	_, err = invoices.Create(ctx, alice, second)
	require.NoError(t, err)

	_, err = invoices.Create(ctx, bob, sampleInput())
	require.NoError(t, err)

	list, err := invoices.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "INV002", list[0].InvoiceNumber)
	assert.Equal(t, int64(1), list[0].ItemCount)
	assert.Equal(t, "INV001", list[1].InvoiceNumber)
	assert.Equal(t, int64(3), list[1].ItemCount)
}

func TestUsersByLogin(t *testing.T) {
	db := openTestDB(t)
	createTestUser(t, db, "alice")
	users := NewUsers(db)
	ctx := context.Background()

	byName, err := users.ByLogin(ctx, "alice")
	require.NoError(t, err)
	byMail, err := users.ByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byMail.ID)

	_, err = users.ByLogin(ctx, "nobody")
	assert.Error(t, err)
}
