package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Customer mirrors one row of the customers table. Phone, email, and
// address are nullable; name is not.
type Customer struct {
	ID      string
	Name    string
	Phone   pgtype.Text
	Email   pgtype.Text
	Address pgtype.Text
}

const getCustomerByPhoneOrEmail = `
SELECT id, name, phone, email, address
FROM customers
WHERE ($1 <> '' AND phone = $1)
   OR ($2 <> '' AND email = $2)
ORDER BY (phone = $1) DESC NULLS LAST
LIMIT 1
`

// GetCustomerByPhoneOrEmail resolves a customer by dedup key: phone when
// non-empty, else email. A phone match wins over an email match when both
// exist. Returns pgx.ErrNoRows when neither key matches.
func (q *Queries) GetCustomerByPhoneOrEmail(ctx context.Context, phone, email string) (Customer, error) {
	var c Customer
	err := q.db.QueryRow(ctx, getCustomerByPhoneOrEmail, phone, email).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address)
	return c, err
}

const insertCustomer = `
INSERT INTO customers (id, name, phone, email, address)
VALUES ($1, $2, $3, $4, $5)
`

// InsertCustomerParams are the values for a new customer row.
type InsertCustomerParams struct {
	ID      string
	Name    string
	Phone   pgtype.Text
	Email   pgtype.Text
	Address pgtype.Text
}

// InsertCustomer creates a customer.
func (q *Queries) InsertCustomer(ctx context.Context, p InsertCustomerParams) error {
	_, err := q.db.Exec(ctx, insertCustomer, p.ID, p.Name, p.Phone, p.Email, p.Address)
	return err
}

const updateCustomer = `
UPDATE customers
SET name = $2, phone = $3, email = $4, address = $5
WHERE id = $1
`

// UpdateCustomer overwrites the mutable fields of a customer. Merge
// policy (which incoming fields win) is decided by the caller; this
// statement writes exactly what it is given.
func (q *Queries) UpdateCustomer(ctx context.Context, c Customer) error {
	_, err := q.db.Exec(ctx, updateCustomer, c.ID, c.Name, c.Phone, c.Email, c.Address)
	return err
}

// Text converts a possibly-empty string into a nullable column value.
func Text(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
