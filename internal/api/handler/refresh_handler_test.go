package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRefreshHandler_Accepts(t *testing.T) {
	d := &stubDispatcher{limit: -1}
	c, rec := newContext(http.MethodPost, "/v1/tracking/refresh",
		`{"trackingNumbers":["TN 1","TN2","TN1"],"courierCode":"dhl"}`)

	if err := NewRefreshHandler(d, zerolog.Nop()).Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["count"] != float64(2) || body["jobId"] == "" {
		t.Errorf("unexpected body %v", body)
	}
	if len(d.reqs) != 2 || d.reqs[0].TrackingNumber != "TN1" || d.reqs[1].TrackingNumber != "TN2" {
		t.Fatalf("unexpected enqueued requests %+v", d.reqs)
	}
	if d.reqs[0].JobID != body["jobId"] || d.reqs[0].CourierCode != "dhl" {
		t.Errorf("job id or courier not propagated: %+v", d.reqs[0])
	}
}

func TestRefreshHandler_Validation(t *testing.T) {
	many := make([]string, 101)
	for i := range many {
		many[i] = `"TN"`
	}
	cases := map[string]string{
		"missing list": `{}`,
		"empty list":   `{"trackingNumbers":[]}`,
		"too many":     `{"trackingNumbers":[` + strings.Join(many, ",") + `]}`,
		"empty item":   `{"trackingNumbers":["TN1",""]}`,
		"blank item":   `{"trackingNumbers":["TN1","  "]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			d := &stubDispatcher{limit: -1}
			c, _ := newContext(http.MethodPost, "/v1/tracking/refresh", body)
			err := NewRefreshHandler(d, zerolog.Nop()).Refresh(c)
			if httpCode(t, err) != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
			if len(d.reqs) != 0 {
				t.Error("nothing must be enqueued")
			}
		})
	}
}

func TestRefreshHandler_QueueUnavailable(t *testing.T) {
	d := &stubDispatcher{err: context.DeadlineExceeded}
	c, _ := newContext(http.MethodPost, "/v1/tracking/refresh", `{"trackingNumbers":["TN1"]}`)
	err := NewRefreshHandler(d, zerolog.Nop()).Refresh(c)
	if httpCode(t, err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
}

func TestRefreshHandler_PartialBatchReportsAccepted(t *testing.T) {
	d := &stubDispatcher{limit: 2, err: context.DeadlineExceeded}
	c, rec := newContext(http.MethodPost, "/v1/tracking/refresh", `{"trackingNumbers":["TN1","TN2","TN3"]}`)

	if err := NewRefreshHandler(d, zerolog.Nop()).Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["count"] != float64(2) || body["rejected"] != float64(1) || body["jobId"] == "" {
		t.Errorf("unexpected body %v", body)
	}
	if len(d.reqs) != 2 {
		t.Errorf("expected 2 enqueued requests, got %d", len(d.reqs))
	}
}
