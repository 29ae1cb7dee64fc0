package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mealmesh/mealmesh/pkg/event"
)

func TestSSEHandlerStreamsBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	h := newReportHandler(nil, nil, nil, nil)
	h.sse = NewSSEHandler(hub, nil)
	router := newTestRouter(h, adminSession())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/reports/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		router.ServeHTTP(rec, req)
	}()

	// Wait for the connection to subscribe before broadcasting, then
	// give the handler time to flush before tearing down. The recorder
	// is only read once the handler has returned.
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 })
	hub.Broadcast(event.ReportEvent{EventType: event.EventReportSubmitted, ReportID: "r1", Status: "pending"})
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancel")
	}

	body := rec.Body.String()
	if !strings.Contains(body, ": connected") {
		t.Error("stream should open with a connected comment")
	}
	if !strings.Contains(body, "retry: 2000") {
		t.Error("stream should advertise the retry interval")
	}
	if !strings.Contains(body, "event: report") {
		t.Error("stream should frame broadcasts as report events")
	}
	if !strings.Contains(body, `"report_id":"r1"`) {
		t.Error("stream should carry the event payload")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never met")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSSEHandlerRequiresBackOfficeRole(t *testing.T) {
	h := newReportHandler(nil, nil, nil, nil)
	router := newTestRouter(h, customerSession())

	req := httptest.NewRequest(http.MethodGet, "/reports/stream", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
