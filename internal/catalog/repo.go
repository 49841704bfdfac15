package catalog

import (
	"context"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows a category product listing to the selected
// ambiance/color/material taxonomy values. Empty fields are ignored.
type ProductFilter struct {
	CategoryID uuid.UUID
	Ambiance   string
	Color      string
	Material   string
}

// Repository exposes catalog read queries. All reads are public storefront
// queries; only available products are ever listed.
type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListNewProducts(ctx context.Context, limit int) ([]models.Product, error)
	ListRelatedProducts(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
	ListAmbiances(ctx context.Context) ([]models.Ambiance, error)
	ListColors(ctx context.Context) ([]models.Color, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repositoryImpl) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// ListProducts returns available products for a category, newest first.
func (r *repositoryImpl) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND available = ?", filter.CategoryID, true)

	if filter.Ambiance != "" {
		q = q.Where("ambiance = ?", filter.Ambiance)
	}
	if filter.Color != "" {
		q = q.Where("color = ?", filter.Color)
	}
	if filter.Material != "" {
		q = q.Where("materials LIKE ?", "%"+filter.Material+"%")
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repositoryImpl) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Subcategory").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) ListNewProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("available = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListRelatedProducts returns other available products from the same
// category, excluding the product being viewed.
func (r *repositoryImpl) ListRelatedProducts(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND available = ?", categoryID, excludeID, true).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repositoryImpl) ListAmbiances(ctx context.Context) ([]models.Ambiance, error) {
	var ambiances []models.Ambiance
	if err := r.db.WithContext(ctx).Order("name").Find(&ambiances).Error; err != nil {
		return nil, err
	}
	return ambiances, nil
}

func (r *repositoryImpl) ListColors(ctx context.Context) ([]models.Color, error) {
	var colors []models.Color
	if err := r.db.WithContext(ctx).Order("name").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *repositoryImpl) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.WithContext(ctx).Order("name").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}
