// Package web serves the storefront routes over plain HTTP for local
// development. Each route is bridged into the same proxy-event handler
// the Lambda entrypoints run, so behavior matches the deployed API.
package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jacentio/storefront/internal/api"
)

// ProxyHandler is the shape every route handler shares.
type ProxyHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Routes mounts the full route table with request-id, panic recovery, and
// request logging middleware.
func Routes(h *api.Handler, p *api.PaymentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", healthHandler)
	r.Route("/shoe-products", func(r chi.Router) {
		r.Post("/", Bridge(h.CreateProduct))
		r.Get("/", Bridge(h.ListProducts))
		r.Get("/{id}", Bridge(h.GetProduct))
		r.Put("/{id}", Bridge(h.UpdateProduct))
		r.Delete("/{id}", Bridge(h.DeleteProduct))
	})
	r.Post("/create-payment-intent", Bridge(p.CreatePaymentIntent))
	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}

// Bridge adapts a proxy-event handler to net/http. Repeated query and
// header values collapse to their first entry, matching what API Gateway
// hands a Lambda in a proxy event.
func Bridge(h ProxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read request body", http.StatusBadRequest)
			return
		}

		req := events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Path:                  r.URL.Path,
			Headers:               firstValues(r.Header),
			QueryStringParameters: firstValues(r.URL.Query()),
			PathParameters:        routeParams(r),
			Body:                  string(body),
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			http.Error(w, "handler failure", http.StatusInternalServerError)
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)
	}
}

// routeParams lifts chi's URL parameters into the proxy event's path
// parameter map.
func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func firstValues(m map[string][]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, vs := range m {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// requestLogger emits one slog line per request after the handler runs.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
