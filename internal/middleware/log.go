package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

const maxLoggedBody = 2 << 10

func LogMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var body []byte
			if r.Body != nil {
				var err error
				body, err = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
				if err != nil {
					logger.Warnf("request_id=%s method=%s uri=%s read body: %v",
						chiMiddleware.GetReqID(r.Context()), r.Method, r.RequestURI, err)
					jsonError(w, "bad_request", http.StatusBadRequest)
					return
				}
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger.Infof("request_id=%s method=%s uri=%s status=%d duration=%s size=%d body=%s outputheaders=%v",
				chiMiddleware.GetReqID(r.Context()),
				r.Method,
				r.RequestURI,
				status,
				time.Since(start),
				ww.BytesWritten(),
				redact(r.URL.Path, body),
				ww.Header(),
			)
		})
	}
}

// redact hides credentials posted to the login route.
func redact(path string, body []byte) []byte {
	if path == "/api/admin/login" && len(body) > 0 {
		return []byte("[redacted]")
	}
	return body
}
