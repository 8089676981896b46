package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/hngoc-dev/gift-shop-backend/internal/address"
	"github.com/hngoc-dev/gift-shop-backend/internal/cart"
	"github.com/hngoc-dev/gift-shop-backend/internal/config"
	"github.com/hngoc-dev/gift-shop-backend/internal/mbti"
	"github.com/hngoc-dev/gift-shop-backend/internal/order"
	"github.com/hngoc-dev/gift-shop-backend/internal/orderstatus"
	"github.com/hngoc-dev/gift-shop-backend/internal/product"
	"github.com/hngoc-dev/gift-shop-backend/internal/producttype"
	"github.com/hngoc-dev/gift-shop-backend/internal/statistics"
	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	typeService := producttype.NewService(producttype.NewPostgresRepository(db))
	typeHandler := producttype.NewHandler(typeService)

	productService := product.NewService(product.NewPostgresRepository(db), typeService)
	productHandler := product.NewHandler(productService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	statusService := orderstatus.NewService(orderstatus.NewPostgresRepository(db))
	if err := statusService.Seed(); err != nil {
		panic(err)
	}
	statusHandler := orderstatus.NewHandler(statusService)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService, address.NewProvincesClient(cfg.ProvincesAPIURL))

	orderService := order.NewService(order.NewPostgresRepository(db), cartService, statusService, addressService)
	orderHandler := order.NewHandler(orderService)

	statisticsHandler := statistics.NewHandler(statistics.NewPostgresRepository(db))

	mbtiHandler := mbti.NewHandler(mbti.NewService(productService))

	// public surface: auth, catalog browsing, the quiz and location lookups
	userHandler.RegisterPublicRoutes(app)
	typeHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	mbtiHandler.RegisterPublicRoutes(app)
	addressHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	typeHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	statusHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	statisticsHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// ensureSchema creates the tables on first run. Timestamps are stored as
// RFC3339 text so the same values round-trip through the API unchanged.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS users (
            user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            fullname TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            phone TEXT,
            gender TEXT,
            date_of_birth TEXT,
            role TEXT NOT NULL DEFAULT 'customer',
            avatar_path TEXT,
            refresh_token TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS product_types (
            type_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            type_name TEXT NOT NULL UNIQUE,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            product_name TEXT NOT NULL,
            image_paths TEXT[] NOT NULL DEFAULT '{}',
            type_id UUID REFERENCES product_types(type_id),
            count_in_stock INT NOT NULL DEFAULT 0,
            price DOUBLE PRECISION NOT NULL,
            discounted_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            description TEXT,
            avg_star DOUBLE PRECISION NOT NULL DEFAULT 0,
            recommended_types TEXT[] NOT NULL DEFAULT '{}',
            keywords TEXT[] NOT NULL DEFAULT '{}',
            traits TEXT[] NOT NULL DEFAULT '{}',
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            cart_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL UNIQUE REFERENCES users(user_id),
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            cart_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            cart_id UUID NOT NULL REFERENCES carts(cart_id) ON DELETE CASCADE,
            product_id UUID NOT NULL REFERENCES products(product_id),
            quantity INT NOT NULL,
            item_price DOUBLE PRECISION NOT NULL,
            created_at TEXT,
            updated_at TEXT,
            UNIQUE (cart_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            address_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(user_id),
            receiver_name TEXT NOT NULL,
            phone_number TEXT NOT NULL,
            province TEXT NOT NULL,
            district TEXT NOT NULL,
            ward TEXT NOT NULL,
            detail_address TEXT NOT NULL,
            is_default BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS order_statuses (
            order_status_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_status_name TEXT NOT NULL UNIQUE,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(user_id),
            address_id UUID NOT NULL REFERENCES addresses(address_id),
            order_status_id UUID NOT NULL REFERENCES order_statuses(order_status_id),
            delivery_method TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            order_date TEXT NOT NULL,
            delivered_date TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS order_details (
            order_detail_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
            product_id UUID NOT NULL REFERENCES products(product_id),
            quantity INT NOT NULL,
            item_price DOUBLE PRECISION NOT NULL
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
