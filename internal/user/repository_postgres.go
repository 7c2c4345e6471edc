package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `user_id, email, password, username, role, banned, created_at, updated_at`

	listUsersQuery    = `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	getUserByIDQuery  = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	getUserByEmail    = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	insertUserQuery   = `
		INSERT INTO users (email, password, username, role, banned, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			password = $2,
			username = $3,
			role = $4,
			banned = $5,
			updated_at = $6
		WHERE user_id = $7
	`
	setRoleQuery   = `UPDATE users SET role = $1, updated_at = $2 WHERE user_id = $3 RETURNING ` + userColumns
	setBannedQuery = `UPDATE users SET banned = $1, updated_at = $2 WHERE user_id = $3 RETURNING ` + userColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmail, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Email,
		u.Password,
		u.Username,
		u.Role,
		u.Banned,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		u.Email,
		u.Password,
		u.Username,
		u.Role,
		u.Banned,
		u.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) SetRole(id int, role string, updatedAt string) (User, error) {
	u, err := scanUser(r.db.QueryRow(setRoleQuery, role, updatedAt, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) SetBanned(id int, banned bool, updatedAt string) (User, error) {
	u, err := scanUser(r.db.QueryRow(setBannedQuery, banned, updatedAt, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(scanner rowScanner) (User, error) {
	u := User{}
	var (
		username  sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&username,
		&u.Role,
		&u.Banned,
		&createdAt,
		&updatedAt,
	); err != nil {
		return User{}, err
	}
	if username.Valid {
		u.Username = username.String
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.String
	}
	return u, nil
}
