package migrate

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/pkg/db"
	"github.com/novamart/storefront-backend/pkg/db/models"
)

// SeedProducts inserts the starter catalog when the products table is empty.
// Returns true when rows were inserted.
func SeedProducts(ctx context.Context, client *db.Client) (bool, error) {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	products := starterCatalog()
	if err := client.DB().WithContext(ctx).Create(&products).Error; err != nil {
		return false, err
	}
	return true, nil
}

func starterCatalog() []models.Product {
	return []models.Product{
		{
			Name:        "Smartphone Alpha",
			Category:    "Mobile Phones",
			Price:       decimal.RequireFromString("799.99"),
			ImageURL:    strPtr("https://placehold.co/300x300/E0E0E0/B0B0B0?text=Smartphone"),
			Description: strPtr("Next-gen smartphone with AI features."),
			Badge:       strPtr("New"),
			Stock:       50,
		},
		{
			Name:        "Laptop UltraSlim",
			Category:    "Laptops",
			Price:       decimal.RequireFromString("1250.00"),
			ImageURL:    strPtr("https://placehold.co/300x300/D8D8D8/A8A8A8?text=Laptop"),
			Description: strPtr("Lightweight and powerful for on-the-go productivity."),
			Badge:       strPtr("Sale"),
			Stock:       30,
		},
		{
			Name:        "AudioBliss Headphones",
			Category:    "Audio",
			Price:       decimal.RequireFromString("249.50"),
			ImageURL:    strPtr("https://placehold.co/300x300/E8E8E8/B8B8B8?text=Headphones"),
			Description: strPtr("Immersive sound with active noise cancellation."),
			Stock:       75,
		},
		{
			Name:        "Smartwatch Pro X",
			Category:    "Wearables",
			Price:       decimal.RequireFromString("429.00"),
			ImageURL:    strPtr("https://placehold.co/300x300/F0F0F0/C0C0C0?text=Smartwatch"),
			Description: strPtr("Advanced health tracking and seamless connectivity."),
			Badge:       strPtr("Hot"),
			Stock:       40,
		},
		{
			Name:        "Gaming Rig Titan",
			Category:    "Gaming",
			Price:       decimal.RequireFromString("1999.00"),
			ImageURL:    strPtr("https://placehold.co/300x300/C2E0FF/5C85A6?text=Gaming+PC"),
			Description: strPtr("Ultimate performance for serious gamers."),
			Badge:       strPtr("New"),
			Stock:       15,
		},
		{
			Name:        "Portable SoundWave Speaker",
			Category:    "Audio",
			Price:       decimal.RequireFromString("99.99"),
			ImageURL:    strPtr("https://placehold.co/300x300/FFDDC2/A67C5C?text=Speaker"),
			Description: strPtr("Compact speaker with rich, room-filling sound."),
			Stock:       100,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
