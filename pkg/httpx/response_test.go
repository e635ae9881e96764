package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/database"
)

func TestHandle_Success(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
		return http.StatusOK, ListResponse{Success: true, Result: []string{}}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/getCakes/birthday", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"Result":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLabel  string
		wantMsg    string
	}{
		{"validation", apperror.Validation("Category is required"), http.StatusBadRequest, "Error", "Category is required"},
		{"conflict with label", apperror.Conflict("User already exists. Please log in.").WithLabel(apperror.LabelExists), http.StatusConflict, "Exists", "User already exists. Please log in."},
		{"conflict with code", fmt.Errorf("add: %w", apperror.Conflict("Cake is already in your cart").WithCode(http.StatusBadRequest)), http.StatusBadRequest, "Error", "Cake is already in your cart"},
		{"not found", apperror.NotFound("Like not found."), http.StatusNotFound, "Error", "Like not found."},
		{"timeout", fmt.Errorf("list: %w", database.ErrTimeout), http.StatusGatewayTimeout, "Error", messageTimeout},
		{"internal hides cause", apperror.Internal("pq: relation cakes does not exist"), http.StatusInternalServerError, "Error", messageInternal},
		{"unclassified", errors.New("dial tcp: refused"), http.StatusInternalServerError, "Error", messageInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Handle(func(w http.ResponseWriter, r *http.Request) (int, interface{}, error) {
				return 0, nil, tt.err
			})

			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantLabel, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"user_id": tt.raw})
			got, err := PathID(r, "user_id")
			if tt.wantErr {
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalQueryID(t *testing.T) {
	id, err := OptionalQueryID(httptest.NewRequest(http.MethodGet, "/getCakes", nil), "user_id")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = OptionalQueryID(httptest.NewRequest(http.MethodGet, "/getCakes?user_id=5", nil), "user_id")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint(5), *id)

	_, err = OptionalQueryID(httptest.NewRequest(http.MethodGet, "/getCakes?user_id=x", nil), "user_id")
	assert.Error(t, err)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var body struct {
		CakeID ID `json:"cake_id"`
		UserID ID `json:"user_id"`
		Other  ID `json:"other"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"cake_id":9,"user_id":"3","other":null}`), &body))
	assert.Equal(t, ID(9), body.CakeID)
	assert.Equal(t, ID(3), body.UserID)
	assert.Equal(t, ID(0), body.Other)

	assert.Error(t, json.Unmarshal([]byte(`{"cake_id":"nine"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"cake_id":-1}`), &body))
}
