package user

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `user_id::text, fullname, email, password, phone, gender, date_of_birth, role, avatar_path, refresh_token, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var u User
	var dob, avatar, refresh, createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Fullname, &u.Email, &u.Password, &u.Phone, &u.Gender,
		&dob, &u.Role, &avatar, &refresh, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}
	u.DateOfBirth = dob.String
	if avatar.Valid {
		u.AvatarPath = &avatar.String
	}
	u.RefreshToken = refresh.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}

func (r *PostgresRepository) List(f ListFilter) ([]User, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.Fullname != "" {
		args = append(args, "%"+f.Fullname+"%")
		where += fmt.Sprintf(` AND fullname ILIKE $%d`, len(args))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		where += fmt.Sprintf(` AND email ILIKE $%d`, len(args))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		where += fmt.Sprintf(` AND role = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`
        INSERT INTO users (fullname, email, password, phone, gender, date_of_birth, role, avatar_path, refresh_token, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING user_id::text`,
		u.Fullname, u.Email, u.Password, u.Phone, u.Gender, u.DateOfBirth, u.Role,
		u.AvatarPath, u.RefreshToken, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id string, u User) (User, error) {
	res, err := r.db.Exec(`
        UPDATE users
        SET fullname = $1, email = $2, phone = $3, gender = $4, date_of_birth = $5,
            password = CASE WHEN $6 = '' THEN password ELSE $6 END,
            avatar_path = COALESCE($7, avatar_path),
            updated_at = $8
        WHERE user_id = $9`,
		u.Fullname, u.Email, u.Phone, u.Gender, u.DateOfBirth, u.Password,
		u.AvatarPath, u.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) SetRefreshToken(id, token string) error {
	res, err := r.db.Exec(`UPDATE users SET refresh_token = $1 WHERE user_id = $2`, token, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
