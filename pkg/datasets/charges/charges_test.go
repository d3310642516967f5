package charges

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/civicdata/dallaspd/pkg/soda"
)

func TestFetch_QueryMapping(t *testing.T) {
	last := new(url.URL)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = *r.URL
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]soda.Row{})
	}))
	defer server.Close()

	c := soda.NewClient(soda.WithBaseURL(server.URL))
	_, err := Fetch(context.Background(), c, Options{
		Severities: []string{"F2", "F3"},
		PenalCodes: []string{"PC 30.02"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if last.Path != "/9u3q-af6p.json" {
		t.Errorf("unexpected path %q", last.Path)
	}
	where := last.Query().Get("$where")
	for _, clause := range []string{
		"severity in ('F2', 'F3')",
		"penalcode in ('PC 30.02')",
	} {
		if !strings.Contains(where, clause) {
			t.Errorf("$where missing %q: %q", clause, where)
		}
	}
}
