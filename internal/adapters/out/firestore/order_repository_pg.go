package firestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dbcommon "sabordigital/internal/adapters/out/firestore/common"
	orderdom "sabordigital/internal/domain/order"
)

// OrderRepositoryPG implements order.Repository using PostgreSQL. It is
// the twin of OrderRepositoryFS for deployments that set DATABASE_URL.
//
// Schema:
//
//	CREATE TABLE orders (
//	  id                 TEXT PRIMARY KEY,
//	  session_id         TEXT NOT NULL,
//	  customer_name      TEXT NOT NULL,
//	  customer_phone     TEXT NOT NULL,
//	  items              JSONB NOT NULL,
//	  subtotal_cents     BIGINT NOT NULL,
//	  delivery_fee_cents BIGINT NOT NULL,
//	  total_cents        BIGINT NOT NULL,
//	  is_delivery        BOOLEAN NOT NULL,
//	  address_street     TEXT,
//	  address_city       TEXT,
//	  address_zip        TEXT,
//	  payment_method     TEXT NOT NULL,
//	  notes              TEXT,
//	  status             TEXT NOT NULL,
//	  created_at         TIMESTAMPTZ NOT NULL,
//	  updated_at         TIMESTAMPTZ NOT NULL
//	);
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `
  id, session_id, customer_name, customer_phone, items,
  subtotal_cents, delivery_fee_cents, total_cents,
  is_delivery, address_street, address_city, address_zip,
  payment_method, notes, status, created_at, updated_at
`

// =======================
// Queries
// =======================

func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	q := `SELECT` + orderColumns + `FROM orders WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryPG) List(ctx context.Context, filter orderdom.Filter, page orderdom.Page) (orderdom.PageResult, error) {
	where, args := orderWhere(filter)

	total, err := dbcommon.QueryCount(ctx, r.DB, `SELECT COUNT(*) FROM orders `+where, args...)
	if err != nil {
		return orderdom.PageResult{}, err
	}

	// PerPage <= 0 returns everything, matching the Firestore/file twins.
	q := fmt.Sprintf(`SELECT`+orderColumns+`FROM orders %s ORDER BY created_at DESC`, where)
	queryArgs := args
	if page.PerPage > 0 {
		_, limit, offset := dbcommon.NormalizePage(page.Number, page.PerPage, page.PerPage, 0)
		q += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		queryArgs = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, q, queryArgs...)
	if err != nil {
		return orderdom.PageResult{}, err
	}
	defer rows.Close()

	items := make([]orderdom.Order, 0, 16)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return orderdom.PageResult{}, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return orderdom.PageResult{}, err
	}
	return orderdom.PageResult{Items: items, TotalCount: total}, nil
}

func (r *OrderRepositoryPG) Count(ctx context.Context, filter orderdom.Filter) (int, error) {
	where, args := orderWhere(filter)
	return dbcommon.QueryCount(ctx, r.DB, `SELECT COUNT(*) FROM orders `+where, args...)
}

// =======================
// Commands
// =======================

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO orders (
  id, session_id, customer_name, customer_phone, items,
  subtotal_cents, delivery_fee_cents, total_cents,
  is_delivery, address_street, address_city, address_zip,
  payment_method, notes, status, created_at, updated_at
) VALUES (
  $1, $2, $3, $4, $5,
  $6, $7, $8,
  $9, $10, $11, $12,
  $13, $14, $15, $16, $17
)
`
	_, err = r.DB.ExecContext(ctx, q,
		o.ID, o.SessionID, o.CustomerName, o.CustomerPhone, itemsJSON,
		o.SubtotalCents, o.DeliveryFeeCents, o.TotalCents,
		o.IsDelivery, o.Address.Street, o.Address.City, o.Address.ZipCode,
		o.PaymentMethod, o.Notes, string(o.Status), o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	if dbcommon.IsUniqueViolation(err) {
		return orderdom.ErrConflict
	}
	return err
}

func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, id string, status orderdom.Status, updatedAt time.Time) error {
	const q = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, q, strings.TrimSpace(id), string(status), updatedAt.UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

// =======================
// helpers
// =======================

func orderWhere(f orderdom.Filter) (string, []any) {
	conds := []string{}
	args := []any{}

	if f.SessionID != "" {
		args = append(args, f.SessionID)
		conds = append(conds, fmt.Sprintf("session_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		ph := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			args = append(args, string(s))
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "status IN ("+strings.Join(ph, ", ")+")")
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf("customer_name ILIKE $%d", len(args)))
	}
	if f.CreatedFrom != nil {
		args = append(args, f.CreatedFrom.UTC())
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.CreatedTo != nil {
		args = append(args, f.CreatedTo.UTC())
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanOrder(row dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		o         orderdom.Order
		itemsJSON []byte
		street    sql.NullString
		city      sql.NullString
		zip       sql.NullString
		notes     sql.NullString
		status    string
	)
	err := row.Scan(
		&o.ID, &o.SessionID, &o.CustomerName, &o.CustomerPhone, &itemsJSON,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.TotalCents,
		&o.IsDelivery, &street, &city, &zip,
		&o.PaymentMethod, &notes, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return orderdom.Order{}, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return orderdom.Order{}, err
		}
	}
	o.Address = orderdom.AddressSnapshot{Street: street.String, City: city.String, ZipCode: zip.String}
	o.Notes = notes.String
	o.Status = orderdom.Status(status)
	return o, nil
}
