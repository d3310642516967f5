package observability

import (
	"context"
	"testing"
	"time"
)

type recordingFetchHooks struct {
	pages int
	done  TerminationReason
}

func (r *recordingFetchHooks) OnPage(_ context.Context, _ string, _, _ int) { r.pages++ }
func (r *recordingFetchHooks) OnDone(_ context.Context, _ string, _ int, reason TerminationReason) {
	r.done = reason
}

type recordingHTTPHooks struct {
	requests  int
	responses int
	errors    int
}

func (r *recordingHTTPHooks) OnRequest(context.Context, string, string, string) { r.requests++ }
func (r *recordingHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
	r.responses++
}
func (r *recordingHTTPHooks) OnError(context.Context, string, string, string, error) { r.errors++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Should not panic
	Fetch().OnPage(context.Background(), "incidents", 0, 1000)
	Fetch().OnDone(context.Background(), "incidents", 1000, ReasonLimitReached)
	HTTP().OnRequest(context.Background(), "GET", "example.com", "/resource/qv6i-rri7.json")
}

func TestSetFetchHooks(t *testing.T) {
	defer Reset()

	rec := &recordingFetchHooks{}
	SetFetchHooks(rec)

	Fetch().OnPage(context.Background(), "arrests", 0, 500)
	Fetch().OnDone(context.Background(), "arrests", 500, ReasonShortPage)

	if rec.pages != 1 {
		t.Errorf("expected 1 page event, got %d", rec.pages)
	}
	if rec.done != ReasonShortPage {
		t.Errorf("expected %s, got %s", ReasonShortPage, rec.done)
	}
}

func TestSetHTTPHooks(t *testing.T) {
	defer Reset()

	rec := &recordingHTTPHooks{}
	SetHTTPHooks(rec)

	HTTP().OnRequest(context.Background(), "GET", "example.com", "/x")
	HTTP().OnResponse(context.Background(), "GET", "example.com", "/x", 200, time.Millisecond)

	if rec.requests != 1 || rec.responses != 1 {
		t.Errorf("expected 1 request and 1 response, got %d and %d", rec.requests, rec.responses)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingFetchHooks{}
	SetFetchHooks(rec)
	SetFetchHooks(nil)

	Fetch().OnPage(context.Background(), "charges", 0, 10)
	if rec.pages != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}
