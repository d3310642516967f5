package useofforce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/errors"
	"github.com/civicdata/dallaspd/pkg/soda"
)

func captureServer(t *testing.T) (*httptest.Server, *url.URL, *int) {
	t.Helper()
	last := new(url.URL)
	requests := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		*last = *r.URL
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]soda.Row{})
	}))
	t.Cleanup(server.Close)
	return server, last, requests
}

func TestFetch_OutOfRangeYearFailsBeforeRequest(t *testing.T) {
	server, _, requests := captureServer(t)
	c := soda.NewClient(soda.WithBaseURL(server.URL))

	for _, year := range []int{2016, 2021, 0} {
		_, err := Fetch(context.Background(), c, Options{Year: year})
		if err == nil {
			t.Fatalf("expected error for year %d", year)
		}
		if !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("year %d: expected INVALID_ARGUMENT, got %v", year, err)
		}
	}
	if *requests != 0 {
		t.Errorf("out-of-range years must issue zero requests, got %d", *requests)
	}
}

func TestFetch_PreRenameFieldNames(t *testing.T) {
	server, last, _ := captureServer(t)
	c := soda.NewClient(soda.WithBaseURL(server.URL))

	_, err := Fetch(context.Background(), c, Options{
		Common:       datasets.Common{StartDate: "2019-03-01", EndDate: "2019-03-31"},
		Year:         2019,
		ServiceTypes: []string{"Arrest"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if last.Path != "/46zb-7qgj.json" {
		t.Errorf("unexpected path for 2019: %q", last.Path)
	}
	where := last.Query().Get("$where")
	for _, clause := range []string{
		"service_ty in ('Arrest')",
		"occurred_d >= '2019-03-01T00:00:00'",
	} {
		if !strings.Contains(where, clause) {
			t.Errorf("$where missing %q: %q", clause, where)
		}
	}
}

func TestFetch_RenamedFieldNames2020(t *testing.T) {
	server, last, _ := captureServer(t)
	c := soda.NewClient(soda.WithBaseURL(server.URL))

	_, err := Fetch(context.Background(), c, Options{
		Common:       datasets.Common{StartDate: "2020-06-01"},
		Year:         2020,
		ServiceTypes: []string{"Call for Service"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if last.Path != "/nufk-2iqn.json" {
		t.Errorf("unexpected path for 2020: %q", last.Path)
	}
	where := last.Query().Get("$where")
	for _, clause := range []string{
		"service_type in ('Call for Service')",
		"occurred_date >= '2020-06-01T00:00:00'",
	} {
		if !strings.Contains(where, clause) {
			t.Errorf("$where missing %q: %q", clause, where)
		}
	}
}

func TestDescriptor_EveryYearResolves(t *testing.T) {
	for year := FirstYear; year <= LastYear; year++ {
		ds, err := Descriptor(year)
		if err != nil {
			t.Fatalf("Descriptor(%d) failed: %v", year, err)
		}
		if ds.ID == "" || ds.DateField == "" {
			t.Errorf("incomplete descriptor for %d: %+v", year, ds)
		}
	}
}
