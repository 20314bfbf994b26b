package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/novamart/storefront-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())
	silent := gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent})
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: silent})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, description, category, price string, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	if description != "" {
		product.Description = &description
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return product
}

func TestListOrdersByCategoryThenName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Laptop UltraSlim", "", "Computers", "1250.00", 10)
	seedProduct(t, db, "AudioBliss Headphones", "", "Audio", "249.50", 25)
	seedProduct(t, db, "Portable SoundWave Speaker", "", "Audio", "99.99", 80)

	products, err := repo.List(ctx, Filters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	want := []string{"AudioBliss Headphones", "Portable SoundWave Speaker", "Laptop UltraSlim"}
	for i, name := range want {
		if products[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, products[i].Name)
		}
	}
}

func TestListQueryMatchesNameAndDescription(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Smartphone Alpha", "Flagship phone with OLED display", "Mobile Phones", "799.99", 50)
	seedProduct(t, db, "Gaming Rig Titan", "Liquid-cooled desktop", "Computers", "1999.00", 5)

	byName, err := repo.List(ctx, Filters{Query: "ALPHA"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Smartphone Alpha" {
		t.Fatalf("unexpected name match: %+v", byName)
	}

	byDescription, err := repo.List(ctx, Filters{Query: "liquid-cooled"})
	if err != nil {
		t.Fatalf("list by description: %v", err)
	}
	if len(byDescription) != 1 || byDescription[0].Name != "Gaming Rig Titan" {
		t.Fatalf("unexpected description match: %+v", byDescription)
	}

	none, err := repo.List(ctx, Filters{Query: "turbine"})
	if err != nil {
		t.Fatalf("list no match: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}
}

func TestListCategoryIsExactMatch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Smartwatch Pro X", "", "Wearables", "429.00", 30)
	seedProduct(t, db, "Smartphone Alpha", "", "Mobile Phones", "799.99", 50)

	matched, err := repo.List(ctx, Filters{Category: "Wearables"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Smartwatch Pro X" {
		t.Fatalf("unexpected category match: %+v", matched)
	}

	partial, err := repo.List(ctx, Filters{Category: "Wear"})
	if err != nil {
		t.Fatalf("list partial category: %v", err)
	}
	if len(partial) != 0 {
		t.Fatalf("category filter should be exact, got %+v", partial)
	}
}

func TestCategoriesDistinctSorted(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Smartphone Alpha", "", "Mobile Phones", "799.99", 50)
	seedProduct(t, db, "Laptop UltraSlim", "", "Computers", "1250.00", 10)
	seedProduct(t, db, "Gaming Rig Titan", "", "Computers", "1999.00", 5)
	seedProduct(t, db, "Mystery Box", "", "", "10.00", 1)

	categories, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"Computers", "Mobile Phones"}
	if len(categories) != len(want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, categories)
		}
	}
}

func TestDecrementStockGuard(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Portable SoundWave Speaker", "", "Audio", "99.99", 3)

	ok, err := repo.DecrementStock(ctx, product.ID, 2)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to succeed")
	}

	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	if err != nil {
		t.Fatalf("second decrement: %v", err)
	}
	if ok {
		t.Fatal("expected guard to reject over-decrement")
	}

	var current models.Product
	if err := db.First(&current, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if current.Stock != 1 {
		t.Fatalf("expected stock 1 after rejected decrement, got %d", current.Stock)
	}

	ok, err = repo.DecrementStock(ctx, 999999, 1)
	if err != nil {
		t.Fatalf("decrement unknown: %v", err)
	}
	if ok {
		t.Fatal("expected guard to reject unknown product")
	}
}
