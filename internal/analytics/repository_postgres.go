package analytics

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertEventQuery = `
		INSERT INTO events (id, type, visitor_id, path, payload, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	countByDayQuery = `
		SELECT substring(created_at from 1 for 10) AS day, count(*)
		FROM events
		WHERE substring(created_at from 1 for 10) >= $1
		GROUP BY day
		ORDER BY day
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ev Event) (Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	payloadJSON, err := json.Marshal(ev.Payload)
	if err != nil {
		return Event{}, err
	}
	if _, err := r.db.Exec(insertEventQuery,
		ev.ID, ev.Type, ev.VisitorID, ev.Path, payloadJSON, ev.CreatedAt); err != nil {
		return Event{}, err
	}
	return ev, nil
}

func (r *PostgresRepository) CountByDay(since string) ([]DayCount, error) {
	rows, err := r.db.Query(countByDayQuery, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayCount, 0)
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}
