package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/plantshop/internal/api/dto"
	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/RoyceAzure/lab/plantshop/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertCartToDTO(cart))
}

// AddItem handles POST /cart. Quantities for an existing line accumulate.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.InvalidArgument("Invalid request body"))
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertCartToDTO(cart))
}

// UpdateItem handles PUT /cart/{id}. The quantity replaces the stored one.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	cartItemID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.InvalidArgument("Invalid request body"))
		return
	}

	cart, err := h.cartService.UpdateItem(r.Context(), userID, cartItemID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertCartToDTO(cart))
}

// RemoveItem handles DELETE /cart/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	cartItemID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), userID, cartItemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertCartToDTO(cart))
}

// ClearCart handles DELETE /cart. Clearing an empty cart succeeds.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	cart, err := h.cartService.ClearCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertCartToDTO(cart))
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.InvalidArgument("Invalid id")
	}
	return id, nil
}

func convertCartToDTO(cart model.Cart) dto.CartDTO {
	items := make([]dto.CartItemDTO, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, dto.CartItemDTO{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     dto.NewMoney(line.Price),
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			Stock:     line.Stock,
			Subtotal:  dto.NewMoney(line.Subtotal),
		})
	}
	return dto.CartDTO{
		Items: items,
		Total: dto.NewMoney(cart.Total),
	}
}
