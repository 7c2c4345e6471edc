package favorite

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getFavoriteIDsQuery = `
		SELECT coalesce(favorite_ids, ARRAY[]::integer[]) FROM users WHERE user_id = $1
	`
	addFavoriteQuery = `
		UPDATE users
		SET favorite_ids = array_append(coalesce(favorite_ids, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND NOT ($2 = ANY(coalesce(favorite_ids, ARRAY[]::integer[])))
		RETURNING favorite_ids
	`
	removeFavoriteQuery = `
		UPDATE users
		SET favorite_ids = array_remove(coalesce(favorite_ids, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
		RETURNING favorite_ids
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetIDs(userID int) ([]int, error) {
	var arr pq.Int64Array
	if err := r.db.QueryRow(getFavoriteIDsQuery, userID).Scan(&arr); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(addFavoriteQuery, userID, productID, updatedAt).Scan(&arr)
	if err == nil {
		return toInts(arr), nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	// Guarded update matched no row: either the user is missing or the
	// product is already a favorite. The current list settles both.
	return r.GetIDs(userID)
}

func (r *PostgresRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeFavoriteQuery, userID, productID, updatedAt).Scan(&arr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInts(arr), nil
}

func toInts(arr pq.Int64Array) []int {
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v))
	}
	return out
}
