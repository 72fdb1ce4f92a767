package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/storefront/internal/api"
	"github.com/jacentio/storefront/internal/catalog"
	"github.com/jacentio/storefront/internal/store"
	"github.com/jacentio/storefront/internal/web"
)

// routeStore records what reached the persistence layer through the full
// router and bridge.
type routeStore struct {
	gotID     string
	gotSearch store.SearchInput
	product   catalog.Product
}

func (f *routeStore) Create(_ context.Context, p catalog.Product) (catalog.Product, error) {
	p.ID = "created-1"
	return p, nil
}

func (f *routeStore) Get(_ context.Context, id string) (catalog.Product, error) {
	f.gotID = id
	return f.product, nil
}

func (f *routeStore) Update(_ context.Context, p catalog.Product) (catalog.Product, error) {
	f.gotID = p.ID
	return p, nil
}

func (f *routeStore) Delete(_ context.Context, id string) error {
	f.gotID = id
	return nil
}

func (f *routeStore) Search(_ context.Context, in store.SearchInput) (store.SearchResult, error) {
	f.gotSearch = in
	return store.SearchResult{Products: []catalog.Product{f.product}}, nil
}

func (f *routeStore) Count(_ context.Context, _ string) (int, error) {
	return 1, nil
}

type routeIntents struct{}

func (routeIntents) CreateIntent(_ context.Context, _ int64) (string, error) {
	return "pi_local_secret", nil
}

// memStore keeps products in a map so a test can walk a full record
// lifecycle through the router.
type memStore struct {
	nextID   int
	products map[string]catalog.Product
}

func newMemStore() *memStore {
	return &memStore{products: map[string]catalog.Product{}}
}

func (m *memStore) Create(_ context.Context, p catalog.Product) (catalog.Product, error) {
	m.nextID++
	p.ID = fmt.Sprintf("mem-%d", m.nextID)
	m.products[p.ID] = p
	return p, nil
}

func (m *memStore) Get(_ context.Context, id string) (catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return catalog.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (m *memStore) Update(_ context.Context, p catalog.Product) (catalog.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return catalog.Product{}, store.ErrNotFound
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) Search(_ context.Context, _ store.SearchInput) (store.SearchResult, error) {
	var page []catalog.Product
	for _, p := range m.products {
		page = append(page, p)
	}
	return store.SearchResult{Products: page}, nil
}

func (m *memStore) Count(_ context.Context, _ string) (int, error) {
	return len(m.products), nil
}

func newServer(st *routeStore) *httptest.Server {
	h := api.NewHandler(st, 10, 100, nil)
	p := api.NewPaymentHandler(routeIntents{}, nil)
	return httptest.NewServer(web.Routes(h, p))
}

func TestRoutes_Health(t *testing.T) {
	srv := newServer(&routeStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestRoutes_PathParameterReachesHandler(t *testing.T) {
	st := &routeStore{product: catalog.Product{ID: "abc-123", Name: "Trail Runner", Price: 1}}
	srv := newServer(st)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/shoe-products/abc-123")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if st.gotID != "abc-123" {
		t.Errorf("store saw id %q, want abc-123", st.gotID)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRoutes_QueryParametersReachHandler(t *testing.T) {
	st := &routeStore{product: catalog.Product{ID: "p1", Name: "Air Max", Price: 99}}
	srv := newServer(st)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/shoe-products?query=Air&pageSize=3")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	want := store.SearchInput{Query: "Air", Limit: 3}
	if st.gotSearch != want {
		t.Errorf("search input = %+v, want %+v", st.gotSearch, want)
	}
}

func TestRoutes_CreateRoundTrip(t *testing.T) {
	srv := newServer(&routeStore{})
	defer srv.Close()

	body := `{"name": "Trail Runner", "price": 129.99, "available": true, "imageUrl": "https://img.example.com/trail.png"}`
	resp, err := http.Post(srv.URL+"/shoe-products", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var env struct {
		Data catalog.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.ID != "created-1" {
		t.Errorf("data.id = %q, want created-1", env.Data.ID)
	}
}

func TestRoutes_DeleteReturnsNoContent(t *testing.T) {
	st := &routeStore{}
	srv := newServer(st)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/shoe-products/p-3", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if st.gotID != "p-3" {
		t.Errorf("store saw id %q, want p-3", st.gotID)
	}
}

func TestRoutes_ProductLifecycle(t *testing.T) {
	h := api.NewHandler(newMemStore(), 10, 100, nil)
	p := api.NewPaymentHandler(routeIntents{}, nil)
	srv := httptest.NewServer(web.Routes(h, p))
	defer srv.Close()

	type envelope struct {
		Data catalog.Product `json:"data"`
	}

	body := `{"name": "Air", "description": "Running shoe", "price": 120, "available": true, "imageUrl": "https://x.example.com/y.jpg"}`
	resp, err := http.Post(srv.URL+"/shoe-products", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	var created envelope
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create body: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if created.Data.ID == "" {
		t.Fatal("create returned empty id")
	}

	url := srv.URL + "/shoe-products/" + created.Data.ID

	resp, err = http.Get(url)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	var got envelope
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode get body: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	if got.Data.Name != "Air" || got.Data.Price != 120 {
		t.Errorf("get = %+v, want created fields", got.Data)
	}

	update := `{"name": "Air", "description": "Running shoe", "price": 150, "available": true, "imageUrl": "https://x.example.com/y.jpg"}`
	req, _ := http.NewRequest(http.MethodPut, url, strings.NewReader(update))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT error: %v", err)
	}
	var updated envelope
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode put body: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want 200", resp.StatusCode)
	}
	if updated.Data.Price != 150 {
		t.Errorf("updated price = %v, want 150", updated.Data.Price)
	}

	req, _ = http.NewRequest(http.MethodDelete, url, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, err = http.Get(url)
	if err != nil {
		t.Fatalf("GET after delete error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestRoutes_PaymentIntent(t *testing.T) {
	srv := newServer(&routeStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/create-payment-intent", "application/json",
		strings.NewReader(`{"amount": 19.99}`))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var env struct {
		Data struct {
			ClientSecret string `json:"clientSecret"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.ClientSecret != "pi_local_secret" {
		t.Errorf("clientSecret = %q", env.Data.ClientSecret)
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	srv := newServer(&routeStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/no-such-route")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBridge_HandlerError(t *testing.T) {
	failing := func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("boom")
	}

	rec := httptest.NewRecorder()
	web.Bridge(failing)(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestBridge_CopiesResponse(t *testing.T) {
	echo := func(_ context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusTeapot,
			Headers:    map[string]string{"X-Flavor": "oolong"},
			Body:       req.Body,
		}, nil
	}

	rec := httptest.NewRecorder()
	web.Bridge(echo)(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("hello")))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if rec.Header().Get("X-Flavor") != "oolong" {
		t.Errorf("X-Flavor = %q", rec.Header().Get("X-Flavor"))
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q, want hello", rec.Body.String())
	}
}
