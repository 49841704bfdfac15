package catalog

import (
	"github.com/dfameublement/catalogue-backend/pkg/db/models"
)

type CategoryDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ImageURL  *string `json:"image_url,omitempty"`
	HeroImage *string `json:"hero_image,omitempty"`
}

type SubcategoryDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category_id"`
}

type ProductDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	ProductImage   *string         `json:"product_image,omitempty"`
	AmbientImages  []string        `json:"ambient_images,omitempty"`
	Diagrams       []string        `json:"diagrams,omitempty"`
	Ambiance       *string         `json:"ambiance,omitempty"`
	Color          *string         `json:"color,omitempty"`
	Materials      *string         `json:"materials,omitempty"`
	Dimensions     *string         `json:"dimensions,omitempty"`
	Weight         *string         `json:"weight,omitempty"`
	AdditionalInfo *string         `json:"additional_info,omitempty"`
	Category       *CategoryDTO    `json:"category,omitempty"`
	Subcategory    *SubcategoryDTO `json:"subcategory,omitempty"`
}

type FilterOptionDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code,omitempty"`
}

type FilterOptionsDTO struct {
	Ambiances []FilterOptionDTO `json:"ambiances"`
	Colors    []FilterOptionDTO `json:"colors"`
	Materials []FilterOptionDTO `json:"materials"`
}

func newCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID.String(),
		Name:      category.Name,
		Slug:      category.Slug,
		ImageURL:  category.ImageURL,
		HeroImage: category.HeroImage,
	}
}

func newSubcategoryDTO(subcategory models.Subcategory) SubcategoryDTO {
	return SubcategoryDTO{
		ID:         subcategory.ID.String(),
		Name:       subcategory.Name,
		Slug:       subcategory.Slug,
		CategoryID: subcategory.CategoryID.String(),
	}
}

func newProductDTO(product models.Product) ProductDTO {
	dto := ProductDTO{
		ID:             product.ID.String(),
		Name:           product.Name,
		Description:    product.Description,
		ImageURL:       product.ImageURL,
		ProductImage:   product.ProductImage,
		AmbientImages:  product.AmbientImages,
		Diagrams:       product.Diagrams,
		Ambiance:       product.Ambiance,
		Color:          product.Color,
		Materials:      product.Materials,
		Dimensions:     product.Dimensions,
		Weight:         product.Weight,
		AdditionalInfo: product.AdditionalInfo,
	}
	if product.Category != nil {
		category := newCategoryDTO(*product.Category)
		dto.Category = &category
	}
	if product.Subcategory != nil {
		subcategory := newSubcategoryDTO(*product.Subcategory)
		dto.Subcategory = &subcategory
	}
	return dto
}

func newProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, newProductDTO(p))
	}
	return out
}
