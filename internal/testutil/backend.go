package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// FakeBackend is a minimal stand-in for the billing API. Routes are keyed by
// "METHOD /path"; unmatched requests return 404 with the backend's error
// shape.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*http.Request
}

func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{
		routes: make(map[string]http.HandlerFunc),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *FakeBackend) Close() {
	b.Server.Close()
}

func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// Handle registers a route, e.g. Handle("GET", "/v1/plans/plan_1", ...).
func (b *FakeBackend) Handle(method, path string, handler http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = handler
}

// RespondJSON registers a route that returns a fixed JSON body.
func (b *FakeBackend) RespondJSON(method, path string, status int, body interface{}) {
	b.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		data, _ := jsonCodec.Marshal(body)
		w.Write(data)
	})
}

// Requests returns the requests seen so far, in order.
func (b *FakeBackend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*http.Request, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Clone(r.Context()))
	handler, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"resource not found"}}`))
		return
	}
	handler(w, r)
}
