package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var productRows = []string{
	"product_id", "product_name", "image_paths", "type_id", "type_name",
	"count_in_stock", "price", "discounted_price", "description", "avg_star",
	"recommended_types", "keywords", "traits", "created_at", "updated_at",
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := "3f0c8e07-3a84-4f5b-8c47-b2de7a5a9a01"
	rows := sqlmock.NewRows(productRows).
		AddRow(id, "Mug", "{/img/mug.png}", nil, nil, 12, 90.0, 0.0, "Ceramic mug", 4.5,
			"{INFP,ENFP}", "{mug,gift}", "{cozy}", "2025-01-02T00:00:00Z", "2025-01-02T00:00:00Z")
	// the select list must name the type_id column the schema creates
	mock.ExpectQuery(`p\.type_id::text`).WithArgs(id).WillReturnRows(rows)

	p, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Name != "Mug" || p.Price != 90 {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(p.RecommendedTypes) != 2 || p.RecommendedTypes[0] != "INFP" {
		t.Fatalf("unexpected recommended types %v", p.RecommendedTypes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestList_MBTIFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	count := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery("SELECT COUNT").WithArgs(pq.Array([]string{"INFP"})).WillReturnRows(count)

	rows := sqlmock.NewRows(productRows).
		AddRow("3f0c8e07-3a84-4f5b-8c47-b2de7a5a9a01", "Candle", "{}", nil, nil,
			3, 120.0, 99.0, "Scented candle", 5.0, "{INFP}", "{}", "{calm}", "t", "u")
	mock.ExpectQuery("FROM products p").
		WithArgs(pq.Array([]string{"INFP"}), 10, 0).
		WillReturnRows(rows)

	products, total, err := repo.List(ListFilter{MBTI: []string{"INFP"}, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("expected 1 product, got total=%d len=%d", total, len(products))
	}
	if products[0].UnitPrice() != 99 {
		t.Fatalf("expected discounted unit price 99, got %v", products[0].UnitPrice())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_WritesTypeIDColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	typeID := "6f1cbe43-04f5-4ce4-9dfd-9d2f24f1da1c"
	mock.ExpectQuery(`INSERT INTO products \(product_name, image_paths, type_id,`).
		WithArgs("Mug", pq.Array([]string{"/img/mug.png"}), &typeID, 12, 90.0,
			0.0, "Ceramic mug", 0.0, pq.Array([]string{"INFP"}),
			pq.Array([]string(nil)), pq.Array([]string(nil)),
			"2025-01-02T00:00:00Z", "2025-01-02T00:00:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).
			AddRow("3f0c8e07-3a84-4f5b-8c47-b2de7a5a9a01"))

	created, err := repo.Create(Product{
		Name:             "Mug",
		ImagePaths:       []string{"/img/mug.png"},
		ProductTypeID:    &typeID,
		CountInStock:     12,
		Price:            90,
		Description:      "Ceramic mug",
		RecommendedTypes: []string{"INFP"},
		CreatedAt:        "2025-01-02T00:00:00Z",
		UpdatedAt:        "2025-01-02T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("3f0c8e07-3a84-4f5b-8c47-b2de7a5a9a01").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete("3f0c8e07-3a84-4f5b-8c47-b2de7a5a9a01"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
