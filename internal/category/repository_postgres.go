package category

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT category_id, name, created_at
		FROM categories
		ORDER BY name
	`
	listAllSubcategoriesQuery = `
		SELECT subcategory_id, name, category_id, category_name, created_at
		FROM subcategories
		ORDER BY category_id, name
	`
	listSubcategoriesQuery = `
		SELECT subcategory_id, name, category_id, category_name, created_at
		FROM subcategories
		WHERE category_id = $1
		ORDER BY name
	`
	insertCategoryQuery = `
		INSERT INTO categories (category_id, name, created_at)
		VALUES ($1,$2,$3)
	`
	insertSubcategoryQuery = `
		INSERT INTO subcategories (subcategory_id, name, category_id, category_name, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every category with its subcategories attached.
func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		var createdAt sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			c.CreatedAt = createdAt.String
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subs, err := r.listAllSubcategories()
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]Subcategory, len(out))
	for _, s := range subs {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}
	for i := range out {
		out[i].Subcategories = byCategory[out[i].ID]
	}
	return out, nil
}

func (r *PostgresRepository) ListSubcategories(categoryID string) ([]Subcategory, error) {
	rows, err := r.db.Query(listSubcategoriesQuery, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubcategories(rows)
}

func (r *PostgresRepository) listAllSubcategories() ([]Subcategory, error) {
	rows, err := r.db.Query(listAllSubcategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubcategories(rows)
}

// Reset replaces the whole category tree inside one transaction.
func (r *PostgresRepository) Reset(categories []Category) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM subcategories`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM categories`); err != nil {
		return err
	}

	for _, c := range categories {
		if _, err := tx.Exec(insertCategoryQuery, c.ID, c.Name, c.CreatedAt); err != nil {
			return err
		}
		for _, s := range c.Subcategories {
			if _, err := tx.Exec(insertSubcategoryQuery, s.ID, s.Name, s.CategoryID, s.CategoryName, s.CreatedAt); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func scanSubcategories(rows *sql.Rows) ([]Subcategory, error) {
	out := make([]Subcategory, 0)
	for rows.Next() {
		var s Subcategory
		var createdAt sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.CategoryName, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			s.CreatedAt = createdAt.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
