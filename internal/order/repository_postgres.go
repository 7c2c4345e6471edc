package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, user_id, email, items, total, currency, payment_method, status, stripe_session_id, created_at, updated_at, paid_at`

	getOrderByIDQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	insertOrderQuery = `
		INSERT INTO orders (id, user_id, email, items, total, currency, payment_method, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING ` + orderColumns

	setStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + orderColumns

	// Partial update only: the webhook confirmation merges the paid
	// fields into the row and leaves everything else untouched. The
	// status guard keeps late deliveries from reviving shipped or
	// cancelled orders.
	markPaidQuery = `
		UPDATE orders
		SET status = 'paid', stripe_session_id = $2, paid_at = $3, updated_at = $3
		WHERE id = $1 AND status NOT IN ('shipped', 'cancelled')
		RETURNING ` + orderColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	row := r.db.QueryRow(insertOrderQuery,
		ord.ID, ord.UserID, ord.Email, itemsJSON, ord.Total, ord.Currency,
		ord.PaymentMethod, ord.Status, ord.CreatedAt, ord.UpdatedAt)
	return scanOrder(row)
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) List(f Filter) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.UserID != 0 {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(id ILIKE $%d OR email ILIKE $%d OR payment_method ILIKE $%d OR items::text ILIKE $%d)", n, n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetStatus(id string, status Status, updatedAt string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(setStatusQuery, string(status), updatedAt, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) MarkPaid(id string, sessionID string, paidAt string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(markPaidQuery, id, sessionID, paidAt))
	if err == nil {
		return ord, nil
	}
	if err != sql.ErrNoRows {
		return Order{}, err
	}
	// Either the order does not exist or it sits in a terminal status.
	// The latter is a no-op, the former bubbles up so the caller can
	// report a retryable failure.
	return r.GetByID(id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	ord := Order{}
	var (
		itemsJSON []byte
		status    string
		sessionID sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
		paidAt    sql.NullString
	)
	if err := scanner.Scan(
		&ord.ID,
		&ord.UserID,
		&ord.Email,
		&itemsJSON,
		&ord.Total,
		&ord.Currency,
		&ord.PaymentMethod,
		&status,
		&sessionID,
		&createdAt,
		&updatedAt,
		&paidAt,
	); err != nil {
		return Order{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
			return Order{}, err
		}
	}
	ord.Status = Status(status)
	if sessionID.Valid {
		ord.StripeSessionID = sessionID.String
	}
	if createdAt.Valid {
		ord.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		ord.UpdatedAt = updatedAt.String
	}
	if paidAt.Valid {
		ord.PaidAt = paidAt.String
	}
	return ord, nil
}
