package cart

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGetByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT cart_id::text, user_id::text, created_at, updated_at").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "user_id", "created_at", "updated_at"}).
			AddRow("c0ffee00-0000-4000-8000-000000000001", testUserID, "2026-08-01T10:00:00Z", "2026-08-02T10:00:00Z"))
	mock.ExpectQuery("SELECT cart_item_id::text").
		WithArgs("c0ffee00-0000-4000-8000-000000000001").
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id", "cart_id", "product_id", "quantity", "item_price", "created_at", "updated_at"}).
			AddRow("11111111-0000-4000-8000-000000000001", "c0ffee00-0000-4000-8000-000000000001", mugID, 3, 30.0, "2026-08-01T10:00:00Z", "2026-08-02T10:00:00Z"))

	repo := NewPostgresRepository(db)
	c, items, err := repo.GetByUser(testUserID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if c.UserID != testUserID || len(items) != 1 {
		t.Fatalf("unexpected result: %+v / %+v", c, items)
	}
	if items[0].Quantity != 3 || items[0].ItemPrice != 30 {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostgresGetByUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT cart_id::text").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "user_id", "created_at", "updated_at"}))

	repo := NewPostgresRepository(db)
	if _, _, err := repo.GetByUser(testUserID); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestPostgresSaveItemInsertTouchesCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cartID := "c0ffee00-0000-4000-8000-000000000001"
	now := "2026-08-03T10:00:00Z"

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO cart_items").
		WithArgs(cartID, mugID, 2, 20.0, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"cart_item_id"}).AddRow("11111111-0000-4000-8000-000000000002"))
	mock.ExpectExec("UPDATE carts SET updated_at").
		WithArgs(now, cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(db)
	item, err := repo.SaveItem(Item{CartID: cartID, ProductID: mugID, Quantity: 2, ItemPrice: 20}, now)
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	if item.ID == "" || item.UpdatedAt != now {
		t.Fatalf("unexpected item: %+v", item)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostgresClearDeletesCartRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cartID := "c0ffee00-0000-4000-8000-000000000001"

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM carts").
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(db)
	if err := repo.Clear(cartID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
