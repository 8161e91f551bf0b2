package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
)

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered: request_id=%s, method=%s, path=%s, error=%v\n%s",
						GetRequestID(r.Context()), r.Method, r.URL.Path, err, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
