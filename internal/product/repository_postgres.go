package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `
        p.product_id::text, p.product_name, p.image_paths, p.type_id::text, t.type_name,
        p.count_in_stock, p.price, p.discounted_price, p.description, p.avg_star,
        p.recommended_types, p.keywords, p.traits, p.created_at, p.updated_at`

const productFrom = ` FROM products p LEFT JOIN product_types t ON t.type_id = p.type_id`

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var p Product
	var images, recommended, keywords, traits pq.StringArray
	var typeID, typeName, createdAt, updatedAt sql.NullString
	err := row.Scan(&p.ID, &p.Name, &images, &typeID, &typeName,
		&p.CountInStock, &p.Price, &p.DiscountedPrice, &p.Description, &p.AvgStar,
		&recommended, &keywords, &traits, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.ImagePaths = images
	if typeID.Valid {
		p.ProductTypeID = &typeID.String
	}
	if typeName.Valid {
		p.ProductTypeName = &typeName.String
	}
	p.RecommendedTypes = recommended
	p.Keywords = keywords
	p.Traits = traits
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}

func (r *PostgresRepository) List(f ListFilter) ([]Product, int, error) {
	conds := []string{}
	args := []interface{}{}
	if len(f.Traits) > 0 {
		args = append(args, pq.Array(f.Traits))
		conds = append(conds, fmt.Sprintf(`p.traits && $%d`, len(args)))
	}
	if len(f.MBTI) > 0 {
		args = append(args, pq.Array(f.MBTI))
		conds = append(conds, fmt.Sprintf(`p.recommended_types && $%d`, len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(p.product_name ILIKE $%d OR p.description ILIKE $%d OR array_to_string(p.keywords, ' ') ILIKE $%d)`, n, n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " OR ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*)`+productFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := `p.created_at`
	switch f.SortBy {
	case "price":
		orderBy = `p.price`
	case "productName":
		orderBy = `p.product_name`
	}
	if f.Desc {
		orderBy += ` DESC`
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, productFrom, where, orderBy, len(args)-1, len(args))
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(
		`SELECT`+productColumns+productFrom+` WHERE p.product_id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT`+productColumns+productFrom+`
        WHERE p.product_id = ANY($1::uuid[])
        ORDER BY array_position($1::uuid[], p.product_id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`
        INSERT INTO products (product_name, image_paths, type_id, count_in_stock, price,
            discounted_price, description, avg_star, recommended_types, keywords, traits,
            created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING product_id::text`,
		p.Name, pq.Array(p.ImagePaths), p.ProductTypeID, p.CountInStock, p.Price,
		p.DiscountedPrice, p.Description, p.AvgStar, pq.Array(p.RecommendedTypes),
		pq.Array(p.Keywords), pq.Array(p.Traits), p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	res, err := r.db.Exec(`
        UPDATE products
        SET product_name = $1, image_paths = $2, type_id = $3, count_in_stock = $4,
            price = $5, discounted_price = $6, description = $7, avg_star = $8,
            recommended_types = $9, keywords = $10, traits = $11, updated_at = $12
        WHERE product_id = $13`,
		p.Name, pq.Array(p.ImagePaths), p.ProductTypeID, p.CountInStock, p.Price,
		p.DiscountedPrice, p.Description, p.AvgStar, pq.Array(p.RecommendedTypes),
		pq.Array(p.Keywords), pq.Array(p.Traits), p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
