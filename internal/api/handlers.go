// Package api implements the HTTP surface behind each catalog and payment
// route. Handlers take API Gateway proxy events, so the same functions run
// under Lambda directly and under the local server through the web bridge.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/storefront/internal/catalog"
	"github.com/jacentio/storefront/internal/store"
)

// ProductStore is the persistence surface the catalog handlers depend on.
// *store.Store satisfies it.
type ProductStore interface {
	Create(ctx context.Context, p catalog.Product) (catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	Update(ctx context.Context, p catalog.Product) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, in store.SearchInput) (store.SearchResult, error)
	Count(ctx context.Context, query string) (int, error)
}

// Handler serves the catalog routes.
type Handler struct {
	store           ProductStore
	logger          *slog.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewHandler wires the catalog routes to a product store. A nil logger
// falls back to slog.Default(), and page sizes outside sane bounds are
// corrected rather than rejected.
func NewHandler(st ProductStore, defaultPageSize, maxPageSize int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	return &Handler{
		store:           st,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// CreateProduct handles POST /shoe-products.
func (h *Handler) CreateProduct(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	fields, errResp := decodeBody(req)
	if errResp != nil {
		return *errResp, nil
	}
	if violations := catalog.ValidateProduct(fields); len(violations) > 0 {
		return respondViolations(violations), nil
	}

	created, err := h.store.Create(ctx, catalog.FromFields(fields))
	if err != nil {
		h.logger.Error("create product failed", "error", err)
		return respondInternal(), nil
	}
	return respond(http.StatusCreated, dataBody{Data: created}), nil
}

// GetProduct handles GET /shoe-products/{id}.
func (h *Handler) GetProduct(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return respondError(http.StatusBadRequest, codeInvalidRequest, "id is required"), nil
	}

	p, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return respondNotFound(), nil
	}
	if err != nil {
		h.logger.Error("get product failed", "id", id, "error", err)
		return respondInternal(), nil
	}
	return respond(http.StatusOK, dataBody{Data: p}), nil
}

// UpdateProduct handles PUT /shoe-products/{id}. The body is a full
// replacement validated under the same rules as create; the id in the
// path wins over anything in the body.
func (h *Handler) UpdateProduct(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return respondError(http.StatusBadRequest, codeInvalidRequest, "id is required"), nil
	}

	fields, errResp := decodeBody(req)
	if errResp != nil {
		return *errResp, nil
	}
	if violations := catalog.ValidateProduct(fields); len(violations) > 0 {
		return respondViolations(violations), nil
	}

	p := catalog.FromFields(fields)
	p.ID = id
	updated, err := h.store.Update(ctx, p)
	if errors.Is(err, store.ErrNotFound) {
		return respondNotFound(), nil
	}
	if err != nil {
		h.logger.Error("update product failed", "id", id, "error", err)
		return respondInternal(), nil
	}
	return respond(http.StatusOK, dataBody{Data: updated}), nil
}

// DeleteProduct handles DELETE /shoe-products/{id}.
func (h *Handler) DeleteProduct(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return respondError(http.StatusBadRequest, codeInvalidRequest, "id is required"), nil
	}

	err := h.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return respondNotFound(), nil
	}
	if err != nil {
		h.logger.Error("delete product failed", "id", id, "error", err)
		return respondInternal(), nil
	}
	return respondNoContent(), nil
}

// ListProducts handles GET /shoe-products. One storage page is fetched
// per request, then sorted and projected in memory; the total count is
// computed independently of the page.
func (h *Handler) ListProducts(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := req.QueryStringParameters
	query := params["query"]

	pageSize := h.defaultPageSize
	if raw, ok := params["pageSize"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return respondError(http.StatusBadRequest, codeInvalidRequest, "pageSize must be a positive integer"), nil
		}
		pageSize = n
		if pageSize > h.maxPageSize {
			pageSize = h.maxPageSize
		}
	}

	sortBy := params["sortBy"]
	switch sortBy {
	case "", catalog.SortByPrice, catalog.SortByID:
	default:
		return respondError(http.StatusBadRequest, codeInvalidRequest, `sortBy must be "price" or "id"`), nil
	}
	sortOrder := params["sortOrder"]
	switch sortOrder {
	case "", catalog.SortAscending, catalog.SortDescending:
	default:
		return respondError(http.StatusBadRequest, codeInvalidRequest, `sortOrder must be "asc" or "desc"`), nil
	}

	result, err := h.store.Search(ctx, store.SearchInput{
		Query:  query,
		Limit:  int32(pageSize),
		Cursor: params["nextPageKey"],
	})
	if errors.Is(err, store.ErrBadCursor) {
		return respondError(http.StatusBadRequest, codeInvalidRequest, "nextPageKey is not a valid page cursor"), nil
	}
	if err != nil {
		h.logger.Error("list products failed", "error", err)
		return respondInternal(), nil
	}

	count, err := h.store.Count(ctx, query)
	if err != nil {
		h.logger.Error("count products failed", "error", err)
		return respondInternal(), nil
	}

	page := result.Products
	if page == nil {
		page = []catalog.Product{}
	}
	catalog.SortPage(page, sortBy, sortOrder)

	var data any = page
	if omit := splitFields(params["omitFields"]); len(omit) > 0 {
		data = catalog.Project(page, omit)
	}

	return respond(http.StatusOK, listBody{
		Data: data,
		Pagination: pagination{
			PageSize:    pageSize,
			TotalCount:  count,
			NextPageKey: nullableCursor(result.NextCursor),
		},
	}), nil
}

// splitFields parses a comma-separated field list, dropping blanks.
func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
