package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/cart/usecase/command"
	"github.com/tair/crumbly/internal/cart/usecase/query"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/database"
)

// fakeCart keeps one user's cart as a set of cake ids
type fakeCart struct {
	items map[uint]bool
	cakes []catalog.CakeSummary
	err   error
}

func newFakeCart() *fakeCart {
	return &fakeCart{items: map[uint]bool{}}
}

func (f *fakeCart) Exists(_ context.Context, _, cakeID uint) (bool, error) {
	return f.items[cakeID], f.err
}

func (f *fakeCart) Add(_ context.Context, _, cakeID uint) error {
	f.items[cakeID] = true
	return nil
}

func (f *fakeCart) Delete(_ context.Context, _, cakeID uint) (int64, error) {
	if !f.items[cakeID] {
		return 0, f.err
	}
	delete(f.items, cakeID)
	return 1, nil
}

func (f *fakeCart) CountByUser(context.Context, uint) (int64, error) {
	return int64(len(f.items)), f.err
}

func (f *fakeCart) ListCakesByUser(context.Context, uint) ([]catalog.CakeSummary, error) {
	return f.cakes, f.err
}

func newRouter(repo *fakeCart) *mux.Router {
	events := kafka.NoopPublisher{}
	h := NewCartHandler(
		command.NewAddToCartHandler(repo, events),
		command.NewRemoveFromCartHandler(repo, events),
		query.NewCountCartHandler(repo),
		query.NewListCartHandler(repo),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestAdd_ThenDuplicateRejected(t *testing.T) {
	router := newRouter(newFakeCart())

	rec := do(router, http.MethodPost, "/addingToCart", `{"user_id":3,"cake_id":9}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Cake added to your cart"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/addingToCart", `{"user_id":3,"cake_id":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"Status":"Error","message":"Cake is already in your cart"}`, rec.Body.String())
}

func TestAdd_MissingIDs(t *testing.T) {
	rec := do(newRouter(newFakeCart()), http.MethodPost, "/addingToCart", `{"user_id":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User ID and Cake ID are required")
}

func TestCount(t *testing.T) {
	repo := newFakeCart()
	repo.items[1], repo.items[2], repo.items[3] = true, true, true

	rec := do(newRouter(repo), http.MethodGet, "/userCartCount/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Status":"Success","Result":[{"cart":3}]}`, rec.Body.String())
}

func TestList(t *testing.T) {
	repo := newFakeCart()
	repo.cakes = []catalog.CakeSummary{}

	rec := do(newRouter(repo), http.MethodGet, "/getCartCakes/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"Result":[]}`, rec.Body.String())
}

func TestRemove(t *testing.T) {
	repo := newFakeCart()
	repo.items[9] = true
	router := newRouter(repo)

	rec := do(router, http.MethodDelete, "/deleteCartCake/9/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Cake successfully removed from my cart."}`, rec.Body.String())

	rec = do(router, http.MethodDelete, "/deleteCartCake/9/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimeoutMapsTo504(t *testing.T) {
	repo := newFakeCart()
	repo.err = database.ErrTimeout

	rec := do(newRouter(repo), http.MethodGet, "/userCartCount/3", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
