package catalog

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
	"github.com/dfameublement/catalogue-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the public catalog browse operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*CategoryPageDTO, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductPageDTO, error)
	ListNewProducts(ctx context.Context, limit int) ([]ProductDTO, error)
	ListRelated(ctx context.Context, productID uuid.UUID, limit int) ([]ProductDTO, error)
	ListFilterOptions(ctx context.Context) (*FilterOptionsDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// ListProductsParams selects products within a category, optionally
// narrowed by taxonomy filters.
type ListProductsParams struct {
	CategoryID uuid.UUID
	Ambiance   string
	Color      string
	Material   string
}

// CategoryPageDTO bundles a category with its subcategories, matching what
// a category landing page needs in a single round trip.
type CategoryPageDTO struct {
	Category      CategoryDTO      `json:"category"`
	Subcategories []SubcategoryDTO `json:"subcategories"`
}

// ProductPageDTO bundles a product with related products from the same
// category.
type ProductPageDTO struct {
	Product ProductDTO   `json:"product"`
	Related []ProductDTO `json:"related"`
}

// NewService wires catalog dependencies. The logger is optional; a nil
// logger silences the degraded-read warnings.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryDTO(c))
	}
	return out, nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryPageDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug required")
	}

	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	subcategories, err := s.repo.ListSubcategories(ctx, category.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}

	page := &CategoryPageDTO{
		Category:      newCategoryDTO(*category),
		Subcategories: make([]SubcategoryDTO, 0, len(subcategories)),
	}
	for _, sc := range subcategories {
		page.Subcategories = append(page.Subcategories, newSubcategoryDTO(sc))
	}
	return page, nil
}

func (s *service) ListProducts(ctx context.Context, params ListProductsParams) ([]ProductDTO, error) {
	if params.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	products, err := s.repo.ListProducts(ctx, ProductFilter{
		CategoryID: params.CategoryID,
		Ambiance:   strings.TrimSpace(params.Ambiance),
		Color:      strings.TrimSpace(params.Color),
		Material:   strings.TrimSpace(params.Material),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return newProductDTOs(products), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductPageDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	related, err := s.repo.ListRelatedProducts(ctx, product.CategoryID, product.ID, pagination.DefaultLimit)
	if err != nil {
		// The product page still renders without suggestions.
		if s.logg != nil {
			s.logg.Error(ctx, "catalog.related_products_failed", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related products"))
		}
		related = nil
	}

	return &ProductPageDTO{
		Product: newProductDTO(*product),
		Related: newProductDTOs(related),
	}, nil
}

func (s *service) ListNewProducts(ctx context.Context, limit int) ([]ProductDTO, error) {
	products, err := s.repo.ListNewProducts(ctx, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list new products")
	}
	return newProductDTOs(products), nil
}

func (s *service) ListRelated(ctx context.Context, productID uuid.UUID, limit int) ([]ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	related, err := s.repo.ListRelatedProducts(ctx, product.CategoryID, product.ID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related products")
	}
	return newProductDTOs(related), nil
}

func (s *service) ListFilterOptions(ctx context.Context) (*FilterOptionsDTO, error) {
	ambiances, err := s.repo.ListAmbiances(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ambiances")
	}
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colors")
	}
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}

	options := &FilterOptionsDTO{
		Ambiances: make([]FilterOptionDTO, 0, len(ambiances)),
		Colors:    make([]FilterOptionDTO, 0, len(colors)),
		Materials: make([]FilterOptionDTO, 0, len(materials)),
	}
	for _, a := range ambiances {
		options.Ambiances = append(options.Ambiances, FilterOptionDTO{ID: a.ID.String(), Name: a.Name})
	}
	for _, c := range colors {
		options.Colors = append(options.Colors, FilterOptionDTO{ID: c.ID.String(), Name: c.Name, HexCode: c.HexCode})
	}
	for _, m := range materials {
		options.Materials = append(options.Materials, FilterOptionDTO{ID: m.ID.String(), Name: m.Name})
	}
	return options, nil
}
