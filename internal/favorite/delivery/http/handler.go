package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/crumbly/internal/favorite/usecase/command"
	"github.com/tair/crumbly/internal/favorite/usecase/query"
	"github.com/tair/crumbly/pkg/httpx"
)

// FavoriteHandler handles HTTP requests for favorites using CQRS pattern
type FavoriteHandler struct {
	toggleHandler *command.ToggleFavoriteHandler
	deleteHandler *command.DeleteFavoriteHandler

	countHandler *query.CountFavoritesHandler
	listHandler  *query.ListFavoritesHandler
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(
	toggleHandler *command.ToggleFavoriteHandler,
	deleteHandler *command.DeleteFavoriteHandler,
	countHandler *query.CountFavoritesHandler,
	listHandler *query.ListFavoritesHandler,
) *FavoriteHandler {
	return &FavoriteHandler{
		toggleHandler: toggleHandler,
		deleteHandler: deleteHandler,
		countHandler:  countHandler,
		listHandler:   listHandler,
	}
}

// ToggleRequest is the body of POST /toggleFavorites
type ToggleRequest struct {
	CakeID httpx.ID `json:"cake_id"`
	UserID httpx.ID `json:"user_id"`
}

// ToggleResponse reports the favorite state after a toggle
type ToggleResponse struct {
	Success bool `json:"success"`
	Liked   bool `json:"liked"`
}

// LikesCount is the single row of the favorites count result
type LikesCount struct {
	Likes int64 `json:"likes"`
}

// RegisterRoutes registers favorite routes
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/toggleFavorites", httpx.Handle(h.Toggle)).Methods(http.MethodPost)
	router.HandleFunc("/userFavorites/{id}", httpx.Handle(h.Count)).Methods(http.MethodGet)
	router.HandleFunc("/getMyFavoritesCakes/{user_id}", httpx.Handle(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/deleteMyFavoritesCake/{cake_id}/{user_id}", httpx.Handle(h.Delete)).Methods(http.MethodDelete)
}

// Toggle godoc
// @Summary Like or unlike a cake
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body ToggleRequest true "Cake and user"
// @Success 200 {object} ToggleResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /toggleFavorites [post]
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	var req ToggleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	liked, err := h.toggleHandler.Handle(r.Context(), command.ToggleFavoriteCommand{
		CakeID: uint(req.CakeID),
		UserID: uint(req.UserID),
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, ToggleResponse{Success: true, Liked: liked}, nil
}

// Count godoc
// @Summary Count a user's favorites
// @Tags favorites
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} httpx.StatusResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /userFavorites/{id} [get]
func (h *FavoriteHandler) Count(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	userID, err := httpx.PathID(r, "id")
	if err != nil {
		return 0, nil, err
	}

	count, err := h.countHandler.Handle(r.Context(), query.CountFavoritesQuery{UserID: userID})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.StatusResponse{
		Status: httpx.StatusSuccess,
		Result: []LikesCount{{Likes: count}},
	}, nil
}

// List godoc
// @Summary List a user's favorite cakes
// @Tags favorites
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} httpx.ListResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /getMyFavoritesCakes/{user_id} [get]
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	cakes, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.ListResponse{Success: true, Result: cakes}, nil
}

// Delete godoc
// @Summary Remove a cake from a user's favorites
// @Tags favorites
// @Produce json
// @Param cake_id path int true "Cake ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /deleteMyFavoritesCake/{cake_id}/{user_id} [delete]
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	cakeID, err := httpx.PathID(r, "cake_id")
	if err != nil {
		return 0, nil, err
	}
	userID, err := httpx.PathID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteFavoriteCommand{CakeID: cakeID, UserID: userID}); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.MessageResponse{
		Success: true,
		Message: "Cake successfully removed from my favorites.",
	}, nil
}
