package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/api/dto"
	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/RoyceAzure/lab/plantshop/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /orders: converts the current cart into an order
// and answers 201 with the full denormalized order for the confirmation view.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.InvalidArgument("Invalid request body"))
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), userID, model.ShippingInfo{
		Address:    req.ShippingAddress,
		City:       req.ShippingCity,
		PostalCode: req.ShippingPostalCode,
		Phone:      req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, convertOrderToDTO(*order, false))
}

// ListOrders handles GET /orders, newest first, summary fields only.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		result = append(result, convertOrderToDTO(o, false))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetOrder handles GET /orders/{id} with line items.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(r)
	if !ok {
		writeError(w, r, apperr.Unauthenticated("Authentication required"))
		return
	}

	orderID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, convertOrderToDTO(*order, true))
}

func convertOrderToDTO(o model.Order, withItems bool) dto.OrderDTO {
	orderDTO := dto.OrderDTO{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		TotalAmount:        dto.NewMoney(o.TotalAmount),
		Status:             string(o.Status),
		ShippingAddress:    o.ShippingAddress,
		ShippingCity:       o.ShippingCity,
		ShippingPostalCode: o.ShippingPostalCode,
		Phone:              o.Phone,
		PaymentMethod:      o.PaymentMethod,
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
	}
	if withItems {
		orderDTO.Items = make([]dto.OrderItemDTO, 0, len(o.Items))
		for _, item := range o.Items {
			orderDTO.Items = append(orderDTO.Items, dto.OrderItemDTO{
				ID:           item.ID,
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				ProductPrice: dto.NewMoney(item.ProductPrice),
				Quantity:     item.Quantity,
				Subtotal:     dto.NewMoney(item.Subtotal),
			})
		}
	}
	return orderDTO
}
