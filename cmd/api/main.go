package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/groshop/grocery-shop-backend/internal/analytics"
	"github.com/groshop/grocery-shop-backend/internal/cart"
	"github.com/groshop/grocery-shop-backend/internal/category"
	"github.com/groshop/grocery-shop-backend/internal/config"
	"github.com/groshop/grocery-shop-backend/internal/favorite"
	"github.com/groshop/grocery-shop-backend/internal/order"
	"github.com/groshop/grocery-shop-backend/internal/payment"
	"github.com/groshop/grocery-shop-backend/internal/product"
	"github.com/groshop/grocery-shop-backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	log := newLogger(cfg.LogLevel)

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	if err := bootstrapSchema(db); err != nil {
		log.WithError(err).Fatal("schema bootstrap failed")
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
	app.Use(requestLogger(log))

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productRepo := product.NewPostgresRepository(db)
	productHandler := product.NewHandler(product.NewService(productRepo))

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)

	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db), productRepo))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPostgresRepository(db), productRepo))

	analyticsHandler := analytics.NewHandler(analytics.NewService(analytics.NewPostgresRepository(db)), log)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)
	paymentHandler := payment.NewHandler(gateway, orderService, cfg.StripeWebhookSecret, cfg.ClientURL, log)

	// The webhook signature covers the raw request bytes and the gateway
	// calls in unauthenticated, so payment routes go in before the JWT
	// middleware. Same for the other public surface.
	paymentHandler.RegisterRoutes(app)
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	analyticsHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", user.AdminRequired())
	userHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	analyticsHandler.RegisterAdminRoutes(admin)

	log.WithField("addr", cfg.Addr).Info("starting api server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func requestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.OriginalURL(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request")
		return err
	}
}

func bootstrapSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			username TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			banned BOOLEAN NOT NULL DEFAULT FALSE,
			cart jsonb NOT NULL DEFAULT '{}',
			favorite_ids integer[] NOT NULL DEFAULT ARRAY[]::integer[],
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS subcategories (
			subcategory_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category_id TEXT NOT NULL,
			category_name TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price numeric NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			category TEXT,
			category_id TEXT,
			subcategory TEXT,
			subcategory_id TEXT,
			image_url TEXT,
			promo jsonb,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			email TEXT,
			items jsonb NOT NULL DEFAULT '[]',
			total numeric NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'EUR',
			payment_method TEXT,
			status TEXT NOT NULL,
			stripe_session_id TEXT,
			created_at TEXT,
			updated_at TEXT,
			paid_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			visitor_id TEXT,
			path TEXT,
			payload jsonb,
			created_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
