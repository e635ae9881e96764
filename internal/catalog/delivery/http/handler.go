package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/crumbly/internal/catalog/usecase/query"
	"github.com/tair/crumbly/pkg/httpx"
)

// CatalogHandler handles HTTP requests for the cake catalog
type CatalogHandler struct {
	listByCategory *query.ListByCategoryHandler
	listForViewer  *query.ListForViewerHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(listByCategory *query.ListByCategoryHandler, listForViewer *query.ListForViewerHandler) *CatalogHandler {
	return &CatalogHandler{
		listByCategory: listByCategory,
		listForViewer:  listForViewer,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/getCakes", httpx.Handle(h.ListCakes)).Methods(http.MethodGet)
	router.HandleFunc("/getCakes/{category}", httpx.Handle(h.ListByCategory)).Methods(http.MethodGet)
	router.HandleFunc("/getCakes/{category}/{user_id}", httpx.Handle(h.ListByCategoryForViewer)).Methods(http.MethodGet)
}

// ListCakes godoc
// @Summary List all cakes
// @Description Lists the whole catalog; with user_id each cake carries the viewer's liked flag
// @Tags catalog
// @Produce json
// @Param user_id query int false "Viewer user ID"
// @Success 200 {object} httpx.ListResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /getCakes [get]
func (h *CatalogHandler) ListCakes(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	viewerID, err := httpx.OptionalQueryID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	cakes, err := h.listForViewer.Handle(r.Context(), query.ListForViewerQuery{ViewerID: viewerID})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.ListResponse{Success: true, Result: cakes}, nil
}

// ListByCategory godoc
// @Summary List cakes of a category
// @Tags catalog
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} httpx.ListResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /getCakes/{category} [get]
func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	cakes, err := h.listByCategory.Handle(r.Context(), query.ListByCategoryQuery{
		Category: mux.Vars(r)["category"],
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.ListResponse{Success: true, Result: cakes}, nil
}

// ListByCategoryForViewer godoc
// @Summary List cakes of a category for a viewer
// @Tags catalog
// @Produce json
// @Param category path string true "Category"
// @Param user_id path int true "Viewer user ID"
// @Success 200 {object} httpx.ListResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /getCakes/{category}/{user_id} [get]
func (h *CatalogHandler) ListByCategoryForViewer(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
	viewerID, err := httpx.PathID(r, "user_id")
	if err != nil {
		return 0, nil, err
	}

	cakes, err := h.listForViewer.Handle(r.Context(), query.ListForViewerQuery{
		Category:        mux.Vars(r)["category"],
		ViewerID:        &viewerID,
		RequireCategory: true,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, httpx.ListResponse{Success: true, Result: cakes}, nil
}
