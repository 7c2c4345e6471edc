package product

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `product_id, name, price, stock, category, category_id, subcategory, subcategory_id, image_url, promo, created_at, updated_at`

	getProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	insertProductQuery = `
		INSERT INTO products (name, price, stock, category, category_id, subcategory, subcategory_id, image_url, promo, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			price = $2,
			stock = $3,
			category = $4,
			category_id = $5,
			subcategory = $6,
			subcategory_id = $7,
			image_url = $8,
			promo = $9,
			updated_at = $10
		WHERE product_id = $11
	`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List applies the optional filter server-side and returns newest first.
func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.SubcategoryID != "" {
		args = append(args, f.SubcategoryID)
		conds = append(conds, fmt.Sprintf("subcategory_id = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, product_id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	promoJSON, err := marshalPromo(p.Promo)
	if err != nil {
		return Product{}, err
	}

	var id int
	err = r.db.QueryRow(
		insertProductQuery,
		p.Name,
		p.Price,
		p.Stock,
		p.Category,
		p.CategoryID,
		p.Subcategory,
		p.SubcategoryID,
		p.ImageURL,
		promoJSON,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	promoJSON, err := marshalPromo(p.Promo)
	if err != nil {
		return Product{}, err
	}

	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Price,
		p.Stock,
		p.Category,
		p.CategoryID,
		p.Subcategory,
		p.SubcategoryID,
		p.ImageURL,
		promoJSON,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset deletes all products and inserts the provided list in a single
// transaction (used by the seed command).
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}

	for _, p := range products {
		promoJSON, err := marshalPromo(p.Promo)
		if err != nil {
			return err
		}
		var id int
		err = tx.QueryRow(insertProductQuery,
			p.Name,
			p.Price,
			p.Stock,
			p.Category,
			p.CategoryID,
			p.Subcategory,
			p.SubcategoryID,
			p.ImageURL,
			promoJSON,
			p.CreatedAt,
			p.UpdatedAt,
		).Scan(&id)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func marshalPromo(p *Promo) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		category      sql.NullString
		categoryID    sql.NullString
		subcategory   sql.NullString
		subcategoryID sql.NullString
		imageURL      sql.NullString
		promoJSON     []byte
		createdAt     sql.NullString
		updatedAt     sql.NullString
	)

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Stock,
		&category,
		&categoryID,
		&subcategory,
		&subcategoryID,
		&imageURL,
		&promoJSON,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	if category.Valid {
		p.Category = category.String
	}
	if categoryID.Valid {
		p.CategoryID = categoryID.String
	}
	if subcategory.Valid {
		p.Subcategory = subcategory.String
	}
	if subcategoryID.Valid {
		p.SubcategoryID = subcategoryID.String
	}
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}
	if len(promoJSON) > 0 {
		var promo Promo
		if err := json.Unmarshal(promoJSON, &promo); err == nil {
			p.Promo = &promo
		}
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}

	return p, nil
}
