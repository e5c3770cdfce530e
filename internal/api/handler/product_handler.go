package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/api/dto"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/RoyceAzure/lab/plantshop/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts handles GET /products?category=&search=&featured=.
// Supplied filters combine with AND.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		CategorySlug: r.URL.Query().Get("category"),
		Search:       r.URL.Query().Get("search"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, convertProductToDTO(p))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetProductBySlug handles GET /products/{slug}.
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalogService.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, convertProductToDTO(*product))
}

// ListCategories handles GET /products/categories.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, convertCategoryToDTO(c))
	}
	writeJSON(w, http.StatusOK, result)
}

func convertProductToDTO(p model.Product) dto.ProductDTO {
	productDTO := dto.ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         dto.NewMoney(p.Price),
		ImageURL:      p.ImageURL,
		Stock:         p.Stock,
		IsFeatured:    p.IsFeatured,
		BotanicalName: p.BotanicalName,
		CareLevel:     p.CareLevel,
		Sunlight:      p.Sunlight,
		WaterNeeds:    p.WaterNeeds,
		Height:        p.Height,
	}
	if p.Category != nil {
		productDTO.Category = &dto.CategoryDTO{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	return productDTO
}

func convertCategoryToDTO(c model.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}
