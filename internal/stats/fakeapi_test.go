package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fakeAPI serves canned contributions keyed by "release/module/company"
// using the lower-cased query values.
type fakeAPI struct {
	mu       sync.Mutex
	queries  []url.Values
	failures map[string]int
	commits  map[string]int
	raw      map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		failures: map[string]int{},
		commits:  map[string]int{},
		raw:      map[string]string{},
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("release") + "/" + q.Get("module") + "/" + q.Get("company")

	a.mu.Lock()
	a.queries = append(a.queries, q)
	status, failing := a.failures[key]
	raw, hasRaw := a.raw[key]
	commits := a.commits[key]
	a.mu.Unlock()

	if failing {
		http.Error(w, "boom", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if hasRaw {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"contribution": map[string]any{
			"commit_count":              commits,
			"drafted_blueprint_count":   0,
			"completed_blueprint_count": 0,
			"filed_bug_count":           0,
			"resolved_bug_count":        0,
			"marks":                     map[string]int{},
			"translations":              0,
		},
	})
}

func (a *fakeAPI) requests() []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]url.Values(nil), a.queries...)
}
