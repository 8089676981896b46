package producttype

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const typeColumns = `type_id::text, type_name, created_at, updated_at`

func scanType(row interface{ Scan(...interface{}) error }) (ProductType, error) {
	var t ProductType
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &createdAt, &updatedAt); err != nil {
		return ProductType{}, err
	}
	t.CreatedAt = createdAt.String
	t.UpdatedAt = updatedAt.String
	return t, nil
}

func (r *PostgresRepository) List() ([]ProductType, error) {
	rows, err := r.db.Query(`SELECT ` + typeColumns + ` FROM product_types ORDER BY type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductType, 0)
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (ProductType, error) {
	t, err := scanType(r.db.QueryRow(`SELECT `+typeColumns+` FROM product_types WHERE type_id = $1`, id))
	if err == sql.ErrNoRows {
		return ProductType{}, ErrNotFound
	}
	return t, err
}

func (r *PostgresRepository) GetByName(name string) (ProductType, error) {
	t, err := scanType(r.db.QueryRow(`SELECT `+typeColumns+` FROM product_types WHERE type_name = $1`, name))
	if err == sql.ErrNoRows {
		return ProductType{}, ErrNotFound
	}
	return t, err
}

func (r *PostgresRepository) Create(t ProductType) (ProductType, error) {
	err := r.db.QueryRow(`
        INSERT INTO product_types (type_name, created_at, updated_at)
        VALUES ($1, $2, $3)
        RETURNING type_id::text`,
		t.Name, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return ProductType{}, err
	}
	return t, nil
}

func (r *PostgresRepository) Update(id string, t ProductType) (ProductType, error) {
	res, err := r.db.Exec(`UPDATE product_types SET type_name = $1, updated_at = $2 WHERE type_id = $3`,
		t.Name, t.UpdatedAt, id)
	if err != nil {
		return ProductType{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ProductType{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM product_types WHERE type_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
