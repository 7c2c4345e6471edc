package main

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/groshop/grocery-shop-backend/internal/category"
	"github.com/groshop/grocery-shop-backend/internal/config"
	"github.com/groshop/grocery-shop-backend/internal/product"
)

// seedData is the store's category tree. Every subcategory gets ten
// generated placeholder products.
var seedData = []struct {
	name string
	subs []string
}{
	{
		name: "Хранителни продукти",
		subs: []string{
			"Хлебни изделия",
			"Тестени/Паста",
			"Пакетирани",
			"Млечни продукти",
			"Месо",
			"Замразени",
			"Сладки",
			"Напитки",
			"Алкохолни напитки",
			"Плодове",
			"Зеленчуци",
			"Салати",
			"Тютюнови изделия",
		},
	},
	{
		name: "Нехранителни продукти",
		subs: []string{"Битова химия", "Хигиена", "Козметика", "Медицински", "Бебе"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("database open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("database ping failed")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	categories := buildCategories(now)
	if err := category.NewPostgresRepository(db).Reset(categories); err != nil {
		logrus.WithError(err).Fatal("category seed failed")
	}

	products := buildProducts(categories, now)
	if err := product.NewService(product.NewPostgresRepository(db)).ResetProducts(products); err != nil {
		logrus.WithError(err).Fatal("product seed failed")
	}

	logrus.WithFields(logrus.Fields{
		"categories": len(categories),
		"products":   len(products),
	}).Info("seed complete")
}

func buildCategories(now string) []category.Category {
	out := make([]category.Category, 0, len(seedData))
	for _, c := range seedData {
		cat := category.Category{
			ID:        category.Slugify(c.name),
			Name:      c.name,
			CreatedAt: now,
		}
		for _, sub := range c.subs {
			cat.Subcategories = append(cat.Subcategories, category.Subcategory{
				ID:           category.SubcategoryID(cat.ID, sub),
				Name:         sub,
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				CreatedAt:    now,
			})
		}
		out = append(out, cat)
	}
	return out
}

func buildProducts(categories []category.Category, now string) []product.Product {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out := make([]product.Product, 0)
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			for i := 1; i <= 10; i++ {
				name := fmt.Sprintf("%s продукт %d", sub.Name, i)
				out = append(out, product.Product{
					Name:          name,
					Price:         roundCents(1 + rng.Float64()*20),
					Stock:         10 + rng.Intn(90),
					Category:      cat.Name,
					CategoryID:    cat.ID,
					Subcategory:   sub.Name,
					SubcategoryID: sub.ID,
					ImageURL:      imageFor(name),
					CreatedAt:     now,
					UpdatedAt:     now,
				})
			}
		}
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func imageFor(seed string) string {
	return "https://picsum.photos/seed/" + url.QueryEscape(seed) + "/600/400"
}
