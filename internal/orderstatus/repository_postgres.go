package orderstatus

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const statusColumns = `order_status_id::text, order_status_name, created_at, updated_at`

func scanStatus(row interface{ Scan(...interface{}) error }) (Status, error) {
	var s Status
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &createdAt, &updatedAt); err != nil {
		return Status{}, err
	}
	s.CreatedAt = createdAt.String
	s.UpdatedAt = updatedAt.String
	return s, nil
}

func (r *PostgresRepository) List() ([]Status, error) {
	rows, err := r.db.Query(`SELECT ` + statusColumns + ` FROM order_statuses ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Status, 0)
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Status, error) {
	s, err := scanStatus(r.db.QueryRow(`SELECT `+statusColumns+` FROM order_statuses WHERE order_status_id = $1`, id))
	if err == sql.ErrNoRows {
		return Status{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepository) GetByName(name string) (Status, error) {
	s, err := scanStatus(r.db.QueryRow(`SELECT `+statusColumns+` FROM order_statuses WHERE order_status_name = $1`, name))
	if err == sql.ErrNoRows {
		return Status{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepository) Create(s Status) (Status, error) {
	err := r.db.QueryRow(`
        INSERT INTO order_statuses (order_status_name, created_at, updated_at)
        VALUES ($1, $2, $3)
        RETURNING order_status_id::text`,
		s.Name, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		return Status{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(id string, s Status) (Status, error) {
	res, err := r.db.Exec(`UPDATE order_statuses SET order_status_name = $1, updated_at = $2 WHERE order_status_id = $3`,
		s.Name, s.UpdatedAt, id)
	if err != nil {
		return Status{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Status{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM order_statuses WHERE order_status_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
