package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	categories     []models.Category
	categoryBySlug map[string]*models.Category
	subcategories  []models.Subcategory
	products       []models.Product
	productByID    map[uuid.UUID]*models.Product
	related        []models.Product
	ambiances      []models.Ambiance
	colors         []models.Color
	materials      []models.Material

	lastFilter ProductFilter
	failWith   error
	relatedErr error
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, f.failWith
}

func (f *fakeRepo) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if c, ok := f.categoryBySlug[slug]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	return f.subcategories, nil
}

func (f *fakeRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	f.lastFilter = filter
	return f.products, f.failWith
}

func (f *fakeRepo) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if p, ok := f.productByID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListNewProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return f.products, f.failWith
}

func (f *fakeRepo) ListRelatedProducts(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	if f.relatedErr != nil {
		return nil, f.relatedErr
	}
	return f.related, nil
}

func (f *fakeRepo) ListAmbiances(ctx context.Context) ([]models.Ambiance, error) {
	return f.ambiances, f.failWith
}

func (f *fakeRepo) ListColors(ctx context.Context) ([]models.Color, error) {
	return f.colors, nil
}

func (f *fakeRepo) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return f.materials, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestGetCategoryBySlug(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Salons", Slug: "salons"}
	repo := &fakeRepo{
		categoryBySlug: map[string]*models.Category{"salons": category},
		subcategories: []models.Subcategory{
			{ID: uuid.New(), Name: "Canapés", Slug: "canapes", CategoryID: category.ID},
		},
	}
	svc := newTestService(t, repo)

	page, err := svc.GetCategoryBySlug(context.Background(), "salons")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if page.Category.Slug != "salons" {
		t.Fatalf("unexpected category slug %q", page.Category.Slug)
	}
	if len(page.Subcategories) != 1 || page.Subcategories[0].Slug != "canapes" {
		t.Fatalf("unexpected subcategories %+v", page.Subcategories)
	}
}

func TestGetCategoryBySlugNotFound(t *testing.T) {
	svc := newTestService(t, &fakeRepo{categoryBySlug: map[string]*models.Category{}})

	_, err := svc.GetCategoryBySlug(context.Background(), "inconnu")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestGetCategoryBySlugRequiresSlug(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.GetCategoryBySlug(context.Background(), "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestListProductsTrimsFilters(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	categoryID := uuid.New()

	_, err := svc.ListProducts(context.Background(), ListProductsParams{
		CategoryID: categoryID,
		Ambiance:   " Moderne ",
		Color:      "Noir",
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if repo.lastFilter.Ambiance != "Moderne" {
		t.Fatalf("ambiance not trimmed: %q", repo.lastFilter.Ambiance)
	}
	if repo.lastFilter.CategoryID != categoryID {
		t.Fatalf("category id not forwarded")
	}
}

func TestListProductsRequiresCategory(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.ListProducts(context.Background(), ListProductsParams{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestListProductsWrapsRepoErrors(t *testing.T) {
	svc := newTestService(t, &fakeRepo{failWith: errors.New("connection reset")})

	_, err := svc.ListProducts(context.Background(), ListProductsParams{CategoryID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestGetProductIncludesRelated(t *testing.T) {
	categoryID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Table basse", CategoryID: categoryID}
	repo := &fakeRepo{
		productByID: map[uuid.UUID]*models.Product{product.ID: product},
		related: []models.Product{
			{ID: uuid.New(), Name: "Table d'appoint", CategoryID: categoryID},
		},
	}
	svc := newTestService(t, repo)

	page, err := svc.GetProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if page.Product.Name != "Table basse" {
		t.Fatalf("unexpected product %+v", page.Product)
	}
	if len(page.Related) != 1 {
		t.Fatalf("expected 1 related product, got %d", len(page.Related))
	}
}

func TestGetProductLogsRelatedFailure(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Name: "Buffet", CategoryID: uuid.New()}
	repo := &fakeRepo{
		productByID: map[uuid.UUID]*models.Product{product.ID: product},
		relatedErr:  errors.New("related query timed out"),
	}

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	svc, err := NewService(repo, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	page, err := svc.GetProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("GetProduct must degrade gracefully, got %v", err)
	}
	if len(page.Related) != 0 {
		t.Fatalf("expected no related products, got %d", len(page.Related))
	}
	if !bytes.Contains(buf.Bytes(), []byte("catalog.related_products_failed")) {
		t.Fatalf("expected the related failure to be logged; log=%s", buf.String())
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := newTestService(t, &fakeRepo{productByID: map[uuid.UUID]*models.Product{}})

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestListFilterOptions(t *testing.T) {
	repo := &fakeRepo{
		ambiances: []models.Ambiance{{ID: uuid.New(), Name: "Moderne"}},
		colors:    []models.Color{{ID: uuid.New(), Name: "Noir", HexCode: "#000000"}},
		materials: []models.Material{{ID: uuid.New(), Name: "Chêne"}},
	}
	svc := newTestService(t, repo)

	options, err := svc.ListFilterOptions(context.Background())
	if err != nil {
		t.Fatalf("ListFilterOptions: %v", err)
	}
	if len(options.Ambiances) != 1 || options.Ambiances[0].Name != "Moderne" {
		t.Fatalf("unexpected ambiances %+v", options.Ambiances)
	}
	if options.Colors[0].HexCode != "#000000" {
		t.Fatalf("hex code not mapped: %+v", options.Colors)
	}
}

func TestListRelatedExcludesUnknownProduct(t *testing.T) {
	svc := newTestService(t, &fakeRepo{productByID: map[uuid.UUID]*models.Product{}})

	_, err := svc.ListRelated(context.Background(), uuid.New(), 4)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestListRelatedReturnsSameCategoryProducts(t *testing.T) {
	categoryID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Fauteuil", CategoryID: categoryID}
	repo := &fakeRepo{
		productByID: map[uuid.UUID]*models.Product{product.ID: product},
		related:     []models.Product{{ID: uuid.New(), Name: "Pouf", CategoryID: categoryID}},
	}
	svc := newTestService(t, repo)

	related, err := svc.ListRelated(context.Background(), product.ID, 4)
	if err != nil {
		t.Fatalf("ListRelated: %v", err)
	}
	if len(related) != 1 || related[0].Name != "Pouf" {
		t.Fatalf("unexpected related %+v", related)
	}
}
