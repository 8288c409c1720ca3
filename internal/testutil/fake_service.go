package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hupe1980/qconnect/core"
)

// RecordedRequest is one request received by a FakeService.
type RecordedRequest struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Header    http.Header
	Body      []byte
	URLParams map[string]string
}

// CannedResponse is what the FakeService answers for an operation.
type CannedResponse struct {
	Status int
	Header http.Header
	Body   string
}

// FakeService is an httptest server routing a set of operation descriptors
// by method and path template. Unmatched routes answer 404 with an
// UnknownOperationException body.
type FakeService struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []RecordedRequest
	responses map[string]CannedResponse
}

// NewFakeService starts a FakeService for ops. The server is closed when the
// test finishes.
func NewFakeService(t testing.TB, ops ...*core.Operation) *FakeService {
	t.Helper()

	fs := &FakeService{responses: map[string]CannedResponse{}}

	r := chi.NewRouter()
	for _, op := range ops {
		r.Method(op.Method, op.Path, fs.handler(op))
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Amzn-Errortype", "UnknownOperationException")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"no route"}`)
	})

	fs.Server = httptest.NewServer(r)
	t.Cleanup(fs.Close)

	return fs
}

// Respond registers the canned answer for an operation.
func (fs *FakeService) Respond(operation string, status int, body string) {
	fs.RespondWith(operation, CannedResponse{Status: status, Body: body})
}

// RespondWith registers a canned answer including headers.
func (fs *FakeService) RespondWith(operation string, resp CannedResponse) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.responses[operation] = resp
}

// Requests returns a snapshot of the recorded requests.
func (fs *FakeService) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]RecordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (fs *FakeService) LastRequest() (RecordedRequest, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return RecordedRequest{}, false
	}
	return fs.requests[len(fs.requests)-1], true
}

func (fs *FakeService) handler(op *core.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		params := map[string]string{}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, k := range rctx.URLParams.Keys {
				params[k] = rctx.URLParams.Values[i]
			}
		}

		fs.mu.Lock()
		fs.requests = append(fs.requests, RecordedRequest{
			Operation: op.Name,
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			Query:     r.URL.Query(),
			Header:    r.Header.Clone(),
			Body:      body,
			URLParams: params,
		})
		resp, ok := fs.responses[op.Name]
		fs.mu.Unlock()

		if !ok {
			resp = CannedResponse{Status: http.StatusOK, Body: "{}"}
		}
		for k, vs := range resp.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, resp.Body)
	}
}
