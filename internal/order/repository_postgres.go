package order

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `o.order_id::text, o.user_id::text, o.address_id::text, o.order_status_id::text,
        s.order_status_name, o.delivery_method, o.payment_method, o.total_price,
        o.order_date, o.delivered_date, o.created_at, o.updated_at`

const orderFrom = ` FROM orders o LEFT JOIN order_statuses s ON s.order_status_id = o.order_status_id`

func scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var o Order
	var statusName, deliveredDate, createdAt, updatedAt sql.NullString
	err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.StatusID, &statusName,
		&o.DeliveryMethod, &o.PaymentMethod, &o.TotalPrice,
		&o.OrderDate, &deliveredDate, &createdAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}
	o.StatusName = statusName.String
	if deliveredDate.Valid {
		o.DeliveredDate = &deliveredDate.String
	}
	o.CreatedAt = createdAt.String
	o.UpdatedAt = updatedAt.String
	return o, nil
}

func (r *PostgresRepository) List(filter ListFilter) ([]Order, int, error) {
	conds := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.StatusID != "" {
		conds = append(conds, "o.order_status_id = "+arg(filter.StatusID))
	}
	if filter.UserID != "" {
		conds = append(conds, "o.user_id = "+arg(filter.UserID))
	}
	if filter.DateFrom != "" {
		conds = append(conds, "o.order_date >= "+arg(filter.DateFrom))
	}
	if filter.DateTo != "" {
		conds = append(conds, "o.order_date <= "+arg(filter.DateTo))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*)`+orderFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	query := `SELECT ` + orderColumns + orderFrom + where +
		` ORDER BY o.order_date DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) ListByUser(userID string) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+orderFrom+` WHERE o.user_id = $1 ORDER BY o.order_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+orderFrom+` WHERE o.order_id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.db.Query(`
        SELECT order_detail_id::text, order_id::text, product_id::text, quantity, item_price
        FROM order_details WHERE order_id = $1`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.ItemPrice); err != nil {
			return Order{}, err
		}
		o.Details = append(o.Details, d)
	}
	return o, rows.Err()
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
        INSERT INTO orders (user_id, address_id, order_status_id, delivery_method, payment_method,
            total_price, order_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING order_id::text`,
		o.UserID, o.AddressID, o.StatusID, o.DeliveryMethod, o.PaymentMethod,
		o.TotalPrice, o.OrderDate, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range o.Details {
		o.Details[i].OrderID = o.ID
		err = tx.QueryRow(`
            INSERT INTO order_details (order_id, product_id, quantity, item_price)
            VALUES ($1, $2, $3, $4)
            RETURNING order_detail_id::text`,
			o.ID, o.Details[i].ProductID, o.Details[i].Quantity, o.Details[i].ItemPrice).
			Scan(&o.Details[i].ID)
		if err != nil {
			return Order{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(id, statusID string, deliveredDate *string, now string) (Order, error) {
	res, err := r.db.Exec(`
        UPDATE orders SET order_status_id = $1, delivered_date = COALESCE($2, delivered_date), updated_at = $3
        WHERE order_id = $4`,
		statusID, deliveredDate, now, id)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}
