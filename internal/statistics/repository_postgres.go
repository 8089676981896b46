package statistics

import (
	"database/sql"

	"github.com/hngoc-dev/gift-shop-backend/internal/orderstatus"
)

type Repository interface {
	RevenueByYear(year int) (YearSummary, error)
	OrdersPerMonth(year int) ([]MonthStat, error)
	Range(dateFrom, dateTo string) (RangeSummary, error)
}

// PostgresRepository aggregates directly over the orders table. order_date is
// stored as RFC3339 text, so it is cast before EXTRACT.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RevenueByYear(year int) (YearSummary, error) {
	s := YearSummary{Year: year}
	err := r.db.QueryRow(`
        SELECT COUNT(*),
               COALESCE(SUM(o.total_price) FILTER (WHERE st.order_status_name <> $2), 0),
               COALESCE(SUM(o.total_price) FILTER (WHERE st.order_status_name = $3), 0),
               COUNT(*) FILTER (WHERE st.order_status_name = $2)
        FROM orders o
        JOIN order_statuses st ON st.order_status_id = o.order_status_id
        WHERE EXTRACT(YEAR FROM o.order_date::timestamptz) = $1`,
		year, orderstatus.StatusCancelled, orderstatus.StatusCompleted).
		Scan(&s.TotalOrders, &s.Revenue, &s.PaidRevenue, &s.CancelledOrders)
	if err != nil {
		return YearSummary{}, err
	}
	return s, nil
}

func (r *PostgresRepository) OrdersPerMonth(year int) ([]MonthStat, error) {
	rows, err := r.db.Query(`
        SELECT EXTRACT(MONTH FROM order_date::timestamptz)::int AS month,
               COUNT(*), COALESCE(SUM(total_price), 0)
        FROM orders
        WHERE EXTRACT(YEAR FROM order_date::timestamptz) = $1
        GROUP BY month
        ORDER BY month`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMonth := make(map[int]MonthStat)
	for rows.Next() {
		var m MonthStat
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue); err != nil {
			return nil, err
		}
		byMonth[m.Month] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// every month appears in the result, ordered, zeroes included
	out := make([]MonthStat, 0, 12)
	for month := 1; month <= 12; month++ {
		m, ok := byMonth[month]
		if !ok {
			m = MonthStat{Month: month}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *PostgresRepository) Range(dateFrom, dateTo string) (RangeSummary, error) {
	s := RangeSummary{DateFrom: dateFrom, DateTo: dateTo}
	err := r.db.QueryRow(`
        SELECT COUNT(*), COALESCE(SUM(total_price), 0)
        FROM orders
        WHERE order_date::timestamptz >= $1::timestamptz
          AND order_date::timestamptz <= $2::timestamptz`,
		dateFrom, dateTo).Scan(&s.TotalOrders, &s.Revenue)
	if err != nil {
		return RangeSummary{}, err
	}
	return s, nil
}
