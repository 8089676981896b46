package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = `cart_item_id::text, cart_id::text, product_id::text, quantity, item_price, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (Item, error) {
	var it Item
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.ItemPrice, &createdAt, &updatedAt); err != nil {
		return Item{}, err
	}
	it.CreatedAt = createdAt.String
	it.UpdatedAt = updatedAt.String
	return it, nil
}

func (r *PostgresRepository) GetByUser(userID string) (Cart, []Item, error) {
	var c Cart
	var createdAt, updatedAt sql.NullString
	err := r.db.QueryRow(`
        SELECT cart_id::text, user_id::text, created_at, updated_at
        FROM carts WHERE user_id = $1`, userID).
		Scan(&c.ID, &c.UserID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Cart{}, nil, ErrCartNotFound
	}
	if err != nil {
		return Cart{}, nil, err
	}
	c.CreatedAt = createdAt.String
	c.UpdatedAt = updatedAt.String

	rows, err := r.db.Query(`SELECT `+itemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY created_at`, c.ID)
	if err != nil {
		return Cart{}, nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return Cart{}, nil, err
		}
		items = append(items, it)
	}
	return c, items, rows.Err()
}

func (r *PostgresRepository) CreateCart(userID, now string) (Cart, error) {
	c := Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
	err := r.db.QueryRow(`
        INSERT INTO carts (user_id, created_at, updated_at)
        VALUES ($1, $2, $3)
        RETURNING cart_id::text`,
		userID, now, now).Scan(&c.ID)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *PostgresRepository) GetItem(itemID string) (Item, error) {
	it, err := scanItem(r.db.QueryRow(`SELECT `+itemColumns+` FROM cart_items WHERE cart_item_id = $1`, itemID))
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	return it, err
}

func (r *PostgresRepository) FindItem(cartID, productID string) (Item, error) {
	it, err := scanItem(r.db.QueryRow(`SELECT `+itemColumns+` FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID))
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	return it, err
}

// SaveItem writes the line item and touches the parent cart inside one
// transaction so the cart's updated_at always reflects its latest line write.
func (r *PostgresRepository) SaveItem(item Item, now string) (Item, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Item{}, err
	}
	defer tx.Rollback()

	if item.ID == "" {
		err = tx.QueryRow(`
            INSERT INTO cart_items (cart_id, product_id, quantity, item_price, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING cart_item_id::text`,
			item.CartID, item.ProductID, item.Quantity, item.ItemPrice, now, now).Scan(&item.ID)
		if err != nil {
			return Item{}, err
		}
		item.CreatedAt = now
	} else {
		res, err := tx.Exec(`
            UPDATE cart_items SET quantity = $1, item_price = $2, updated_at = $3
            WHERE cart_item_id = $4`,
			item.Quantity, item.ItemPrice, now, item.ID)
		if err != nil {
			return Item{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Item{}, ErrItemNotFound
		}
	}
	item.UpdatedAt = now

	if _, err := tx.Exec(`UPDATE carts SET updated_at = $1 WHERE cart_id = $2`, now, item.CartID); err != nil {
		return Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) DeleteItem(cartID, productID, now string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at = $1 WHERE cart_id = $2`, now, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) Clear(cartID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM carts WHERE cart_id = $1`, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartNotFound
	}
	return tx.Commit()
}
