package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

type stockChangeRequest struct {
	BookID        string `json:"bookId"`
	Shelf         string `json:"shelf"`
	NumberOfBooks int    `json:"numberOfBooks"`
}

type placeOrderRequest struct {
	Books map[string]int `json:"books"`
}

type fulfillOrderRequest struct {
	Fulfillments []fulfillmentLine `json:"fulfillments"`
}

type fulfillmentLine struct {
	Book          string `json:"book"`
	Shelf         string `json:"shelf"`
	NumberOfBooks int    `json:"numberOfBooks"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type stockResponse struct {
	Stock int `json:"stock"`
}

type shelfResponse struct {
	Shelf string `json:"shelf"`
	Count int    `json:"count"`
}

type orderIDResponse struct {
	OrderID string `json:"orderId"`
}

type pendingOrderResponse struct {
	OrderID string         `json:"orderId"`
	Books   map[string]int `json:"books"`
}

type orderResponse struct {
	OrderID   string         `json:"orderId"`
	Books     map[string]int `json:"books"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) error {
	stock, err := h.ledger.TotalStock(r.Context(), chi.URLParam(r, "bookId"))
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, stockResponse{Stock: stock})
}

func (h *Handler) placeStock(w http.ResponseWriter, r *http.Request) error {
	var request stockChangeRequest
	if err := decodeJSON(r, &request); err != nil {
		return err
	}

	if err := h.ledger.PlaceStock(r.Context(), request.BookID, request.Shelf, request.NumberOfBooks); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) deductStock(w http.ResponseWriter, r *http.Request) error {
	var request stockChangeRequest
	if err := decodeJSON(r, &request); err != nil {
		return err
	}

	if err := h.ledger.DeductStock(r.Context(), request.BookID, request.Shelf, request.NumberOfBooks); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) findOnShelf(w http.ResponseWriter, r *http.Request) error {
	shelves, err := h.ledger.FindOnShelf(r.Context(), chi.URLParam(r, "bookId"))
	if err != nil {
		return err
	}

	response := make([]shelfResponse, 0, len(shelves))
	for _, shelf := range shelves {
		response = append(response, shelfResponse{Shelf: shelf.ShelfID, Count: shelf.Count})
	}

	return writeJSON(w, http.StatusOK, response)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) error {
	var request placeOrderRequest
	if err := decodeJSON(r, &request); err != nil {
		return err
	}

	orderID, err := h.orders.PlaceOrderWithQuantities(r.Context(), request.Books)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, orderIDResponse{OrderID: orderID})
}

func (h *Handler) listPendingOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.orders.ListPendingOrders(r.Context())
	if err != nil {
		return err
	}

	response := make([]pendingOrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, pendingOrderResponse{OrderID: order.OrderID, Books: order.Books})
	}

	return writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) error {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, orderResponse{
		OrderID:   order.OrderID,
		Books:     order.Books,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})
}

func (h *Handler) fulfillOrder(w http.ResponseWriter, r *http.Request) error {
	var request fulfillOrderRequest
	if err := decodeJSON(r, &request); err != nil {
		return err
	}

	lines := make([]core.FulfillmentLine, 0, len(request.Fulfillments))
	for _, line := range request.Fulfillments {
		lines = append(lines, core.FulfillmentLine{BookID: line.Book, ShelfID: line.Shelf, Quantity: line.NumberOfBooks})
	}

	if err := h.orders.FulfillOrder(r.Context(), chi.URLParam(r, "orderId"), lines); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, successResponse{Success: true})
}
