package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/crumbly/internal/cart/usecase/command"
	"github.com/tair/crumbly/internal/cart/usecase/query"
	"github.com/tair/crumbly/pkg/httpx"
)

// CartHandler handles HTTP requests for carts using CQRS pattern
type CartHandler struct {
	addHandler    *command.AddToCartHandler
	removeHandler *command.RemoveFromCartHandler

	countHandler *query.CountCartHandler
	listHandler  *query.ListCartHandler
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	addHandler *command.AddToCartHandler,
	removeHandler *command.RemoveFromCartHandler,
	countHandler *query.CountCartHandler,
	listHandler *query.ListCartHandler,
) *CartHandler {
	return &CartHandler{
		addHandler:    addHandler,
		removeHandler: removeHandler,
		countHandler:  countHandler,
		listHandler:   listHandler,
	}
}

// AddRequest is the body of POST /addingToCart
type AddRequest struct {
	UserID httpx.ID `json:"user_id"`
	CakeID httpx.ID `json:"cake_id"`
}

// CartCount is the single row of the cart count result
type CartCount struct {
	Cart int64 `json:"cart"`
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/addingToCart", httpx.Handle(h.Add)).Methods(http.MethodPost)
	router.HandleFunc("/userCartCount/{id}", httpx.Handle(h.Count)).Methods(http.MethodGet)
	router.HandleFunc("/getCartCakes/{user_id}", httpx.Handle(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/deleteCartCake/{cake_id}/{user_id}", httpx.Handle(h.Remove)).Methods(http.MethodDelete)
}

// Add godoc
// @Summary Add a cake to a user's cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddRequest true "User and cake"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /addingToCart [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	var req AddRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	if err := h.addHandler.Handle(r.Context(), command.AddToCartCommand{
		UserID: uint(req.UserID),
		CakeID: uint(req.CakeID),
	}); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.MessageResponse{Success: true, Message: "Cake added to your cart"}, nil
}

// Count godoc
// @Summary Count the items in a user's cart
// @Tags cart
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} httpx.StatusResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /userCartCount/{id} [get]
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	userID, err := httpx.PathID(r, "id")
	if err != nil {
		return 0, nil, err
	}

	count, err := h.countHandler.Handle(r.Context(), query.CountCartQuery{UserID: userID})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.StatusResponse{
		Status: httpx.StatusSuccess,
		Result: []CartCount{{Cart: count}},
	}, nil
}

// List godoc
// @Summary List the cakes in a user's cart
// @Tags cart
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} httpx.ListResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /getCartCakes/{user_id} [get]
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	cakes, err := h.listHandler.Handle(r.Context(), query.ListCartQuery{UserID: userID})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.ListResponse{Success: true, Result: cakes}, nil
}

// Remove godoc
// @Summary Remove a cake from a user's cart
// @Tags cart
// @Produce json
// @Param cake_id path int true "Cake ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /deleteCartCake/{cake_id}/{user_id} [delete]
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	cakeID, err := httpx.PathID(r, "cake_id")
	if err != nil {
		return 0, nil, err
	}
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.removeHandler.Handle(r.Context(), command.RemoveFromCartCommand{CakeID: cakeID, UserID: userID}); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.MessageResponse{
		Success: true,
		Message: "Cake successfully removed from my cart.",
	}, nil
}
