package statistics

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hngoc-dev/gift-shop-backend/internal/orderstatus"
)

func TestRevenueByYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(2026, orderstatus.StatusCancelled, orderstatus.StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count", "revenue", "paid", "cancelled"}).
			AddRow(14, 1250.5, 980.0, 2))

	repo := NewPostgresRepository(db)
	s, err := repo.RevenueByYear(2026)
	if err != nil {
		t.Fatalf("RevenueByYear: %v", err)
	}
	if s.TotalOrders != 14 || s.Revenue != 1250.5 || s.PaidRevenue != 980 || s.CancelledOrders != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOrdersPerMonthFillsGaps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXTRACT").
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count", "revenue"}).
			AddRow(2, 3, 120.0).
			AddRow(8, 5, 410.0))

	repo := NewPostgresRepository(db)
	months, err := repo.OrdersPerMonth(2026)
	if err != nil {
		t.Fatalf("OrdersPerMonth: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[1].Orders != 3 || months[7].Revenue != 410 {
		t.Fatalf("unexpected months: %+v", months)
	}
	if months[0].Orders != 0 || months[11].Revenue != 0 {
		t.Fatalf("expected empty months to be zero, got %+v / %+v", months[0], months[11])
	}
}

func TestRangeSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// the comparison must go through timestamptz so offset timestamps
	// (e.g. +07:00 input against stored Z-suffixed dates) order correctly
	mock.ExpectQuery(`order_date::timestamptz >= \$1::timestamptz`).
		WithArgs("2026-01-01T07:00:00+07:00", "2026-06-30T23:59:59Z").
		WillReturnRows(sqlmock.NewRows([]string{"count", "revenue"}).AddRow(7, 530.25))

	repo := NewPostgresRepository(db)
	s, err := repo.Range("2026-01-01T07:00:00+07:00", "2026-06-30T23:59:59Z")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if s.TotalOrders != 7 || s.Revenue != 530.25 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
