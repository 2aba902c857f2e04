// Package main implements a standalone seed script that populates the
// storefront catalog with demo products via direct SQL. Intended for local
// development and demo environments; running it twice is safe because every
// insert is ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type seedProduct struct {
	Name     string
	Price    int64
	Category string
	Brand    string
	Material string
	Sizes    []string
	ImageURL string
	AgeDays  int
}

var seedProducts = []seedProduct{
	{"Classic White Tee", 2000, "T-Shirts", "Nour", "Cotton", []string{"S", "M", "L", "XL"}, "/images/classic-white-tee.jpg", 3},
	{"Graphic Black Tee", 2500, "T-Shirts", "Nour", "Cotton", []string{"S", "M", "L"}, "/images/graphic-black-tee.jpg", 12},
	{"Oversized Navy Tee", 2800, "T-Shirts", "Atlas", "Organic Cotton", []string{"M", "L", "XL"}, "/images/oversized-navy-tee.jpg", 45},
	{"Slim Fit Jeans", 8900, "Jeans", "Atlas", "Denim", []string{"30", "32", "34", "36"}, "/images/slim-fit-jeans.jpg", 8},
	{"Relaxed Straight Jeans", 9500, "Jeans", "Medina", "Denim", []string{"32", "34", "36"}, "/images/relaxed-straight-jeans.jpg", 60},
	{"Linen Summer Shirt", 6500, "Shirts", "Medina", "Linen", []string{"S", "M", "L", "XL"}, "/images/linen-summer-shirt.jpg", 5},
	{"Oxford Button-Down", 7200, "Shirts", "Nour", "Cotton", []string{"M", "L", "XL"}, "/images/oxford-button-down.jpg", 20},
	{"Wool Blend Hoodie", 11000, "Hoodies", "Atlas", "Wool Blend", []string{"S", "M", "L"}, "/images/wool-blend-hoodie.jpg", 15},
	{"Zip-Up Fleece Hoodie", 9800, "Hoodies", "Medina", "Fleece", []string{"M", "L", "XL"}, "/images/zip-up-fleece-hoodie.jpg", 90},
	{"Canvas Tote Bag", 3500, "Accessories", "Nour", "Canvas", []string{"One Size"}, "/images/canvas-tote-bag.jpg", 2},
	{"Leather Belt", 4200, "Accessories", "Medina", "Leather", []string{"85", "95", "105"}, "/images/leather-belt.jpg", 30},
	{"Knit Beanie", 2200, "Accessories", "Atlas", "Wool", []string{"One Size"}, "/images/knit-beanie.jpg", 120},
}

func main() {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	pass := getEnv("POSTGRES_PASSWORD", "postgres")
	dbName := getEnv("POSTGRES_DB", "storefront")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	now := time.Now().UTC()
	inserted := 0
	for _, p := range seedProducts {
		sizes, err := json.Marshal(p.Sizes)
		if err != nil {
			log.Fatalf("marshal sizes for %q: %v", p.Name, err)
		}
		dateAdded := now.AddDate(0, 0, -p.AgeDays)

		tag, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, price, category, brand, material, sizes, image_url, date_added)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.Name)).String(), p.Name, p.Price, p.Category, p.Brand, p.Material, sizes, p.ImageURL, dateAdded)
		if err != nil {
			log.Fatalf("insert product %q: %v", p.Name, err)
		}
		inserted += int(tag.RowsAffected())
	}

	log.Printf("seed complete: %d products inserted", inserted)
}
