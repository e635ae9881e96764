package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/crumbly/pkg/apperror"
)

// PathID parses a positive numeric route variable
func PathID(r *http.Request, name string) (uint, error) {
	return parseID(mux.Vars(r)[name], name)
}

// OptionalQueryID parses a positive numeric query parameter; absent means nil
func OptionalQueryID(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(fmt.Sprintf("Invalid %s", name))
	}
	return uint(id), nil
}

// ID is a JSON id accepting both numbers and numeric strings; null or "" decode to zero
type ID uint

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*id = 0
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = ID(parsed)
	return nil
}
