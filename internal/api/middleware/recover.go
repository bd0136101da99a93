package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
)

// Recoverer turns a panic in a later handler into a 500 error envelope. The
// panic value and stack are logged through the request logger; the client
// only sees the generic message.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "", nil,
				fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
