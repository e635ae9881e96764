package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/httpx"
	"github.com/tair/crumbly/pkg/logger"
)

// Recover turns a panicking handler into a 500 JSON response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newStatusRecorder(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.Error(r.Context()).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("Recovered from panic")

			if !rw.wroteHeader {
				httpx.RespondError(rw, r, apperror.Internal("panic"))
			}
		}()

		next.ServeHTTP(rw, r)
	})
}
