package cart

import (
	"database/sql"
	"encoding/json"
	"strconv"
)

// PostgresRepository keeps the cart as a jsonb map on the users row,
// keyed by product id.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetQuantities(userID int) (map[int]int, error) {
	var raw sql.NullString
	err := r.db.QueryRow(`SELECT cart FROM users WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := make(map[int]int)
	if !raw.Valid || raw.String == "" {
		return out, nil
	}

	m := make(map[string]int)
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		return nil, err
	}
	for k, qty := range m {
		pid, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[pid] = qty
	}
	return out, nil
}

func (r *PostgresRepository) SaveQuantities(userID int, quantities map[int]int, updatedAt string) error {
	m := make(map[string]int, len(quantities))
	for pid, qty := range quantities {
		m[strconv.Itoa(pid)] = qty
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}

	res, err := r.db.Exec(`UPDATE users SET cart = $1, updated_at = $2 WHERE user_id = $3`,
		string(raw), updatedAt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
