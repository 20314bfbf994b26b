package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/novamart/storefront-backend/pkg/db/models"
)

// Filters narrows a catalog listing. Query matches name or description
// case-insensitively; Category is an exact match.
type Filters struct {
	Query    string
	Category string
}

// Repository owns product reads and the stock mutation used by order commits.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns products matching the filters, ordered by category then name
// so storefront sections render deterministically.
func (r *Repository) List(ctx context.Context, filters Filters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?",
			pattern, pattern,
		)
	}
	if c := strings.TrimSpace(filters.Category); c != "" {
		query = query.Where("category = ?", c)
	}

	var products []models.Product
	if err := query.Order("category ASC, name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads a single product. Returns gorm.ErrRecordNotFound when the
// id does not exist.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists the distinct non-empty category names in ascending order.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// DecrementStock atomically reduces stock by qty, guarded so the row is only
// touched while enough stock remains. Returns false when the guard rejects
// the update, which means a concurrent commit claimed the units first. Call
// through a WithTx-bound repository so the decrement joins the order insert.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
