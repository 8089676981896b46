package address

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const addressColumns = `address_id::text, user_id::text, receiver_name, phone_number,
        province, district, ward, detail_address, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...interface{}) error }) (Address, error) {
	var a Address
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&a.ID, &a.UserID, &a.Receiver, &a.Phone,
		&a.Province, &a.District, &a.Ward, &a.Detail, &a.IsDefault, &createdAt, &updatedAt)
	if err != nil {
		return Address{}, err
	}
	a.CreatedAt = createdAt.String
	a.UpdatedAt = updatedAt.String
	return a, nil
}

func (r *PostgresRepository) ListByUser(userID string) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(`SELECT `+addressColumns+` FROM addresses WHERE address_id = $1`, id))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(`
        INSERT INTO addresses (user_id, receiver_name, phone_number, province, district, ward,
            detail_address, is_default, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING address_id::text`,
		a.UserID, a.Receiver, a.Phone, a.Province, a.District, a.Ward,
		a.Detail, a.IsDefault, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(id string, a Address) (Address, error) {
	res, err := r.db.Exec(`
        UPDATE addresses SET receiver_name = $1, phone_number = $2, province = $3, district = $4,
            ward = $5, detail_address = $6, is_default = $7, updated_at = $8
        WHERE address_id = $9`,
		a.Receiver, a.Phone, a.Province, a.District, a.Ward, a.Detail, a.IsDefault, a.UpdatedAt, id)
	if err != nil {
		return Address{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Address{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) ClearDefault(userID, now string) error {
	_, err := r.db.Exec(`UPDATE addresses SET is_default = FALSE, updated_at = $1 WHERE user_id = $2 AND is_default`, now, userID)
	return err
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE address_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
