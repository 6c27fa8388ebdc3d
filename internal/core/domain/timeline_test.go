package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeCheckpoints_IDsAndWarnings(t *testing.T) {
	cps := []Checkpoint{
		{CheckpointDate: "2024-01-01", TrackingDetail: "Departed"},
		{CheckpointDate: "2024-01-02", TrackingDetail: "Customs Inspection", DeliverySubstatus: "Held"},
	}

	events := NormalizeCheckpoints(cps, OriginLegPrefix)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "O-1" || events[1].ID != "O-2" {
		t.Errorf("unexpected ids: %q, %q", events[0].ID, events[1].ID)
	}
	if events[0].IsWarning {
		t.Error("expected first event not to be a warning")
	}
	if !events[1].IsWarning {
		t.Error("expected second event to be a warning")
	}
	if events[1].SubLocation != "Held" {
		t.Errorf("expected subLocation %q, got %q", "Held", events[1].SubLocation)
	}
	for _, ev := range events {
		if !ev.IsCompleted {
			t.Errorf("event %s must be completed", ev.ID)
		}
	}
}

func TestNormalizeCheckpoints_FieldFallbacks(t *testing.T) {
	cases := []struct {
		name         string
		cp           Checkpoint
		wantLocation string
		wantStatus   string
	}{
		{"explicit location wins", Checkpoint{Location: "HKG Hub", City: "Hong Kong", TrackingDetail: "Arrived"}, "HKG Hub", "Arrived"},
		{"city and state joined", Checkpoint{City: "Sydney", State: "NSW", RawStatus: "InTransit"}, "Sydney, NSW", "InTransit"},
		{"city only", Checkpoint{City: "Perth", DeliveryStatus: "transit"}, "Perth", "transit"},
		{"state only", Checkpoint{State: "VIC"}, "VIC", "Update"},
		{"substatus as last status", Checkpoint{DeliverySubstatus: "transit001"}, "", "transit001"},
		{"delivery status before substatus", Checkpoint{DeliveryStatus: "transit", DeliverySubstatus: "transit001"}, "", "transit"},
		{"nothing at all", Checkpoint{}, "", "Update"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := NormalizeCheckpoints([]Checkpoint{tc.cp}, DestinationLegPrefix)
			if events[0].Location != tc.wantLocation {
				t.Errorf("location: want %q, got %q", tc.wantLocation, events[0].Location)
			}
			if events[0].Status != tc.wantStatus {
				t.Errorf("status: want %q, got %q", tc.wantStatus, events[0].Status)
			}
			if events[0].ID != "D-1" {
				t.Errorf("id: want D-1, got %q", events[0].ID)
			}
		})
	}
}

func TestNormalizeCheckpoints_HoldKeywords(t *testing.T) {
	for _, detail := range []string{"Held at depot", "INSPECTION", "Examination required", "Customs", "Quarantine check", "Flight delayed"} {
		events := NormalizeCheckpoints([]Checkpoint{{TrackingDetail: Text(detail)}}, "O")
		if !events[0].IsWarning {
			t.Errorf("%q: expected warning", detail)
		}
	}

	events := NormalizeCheckpoints([]Checkpoint{{TrackingDetail: "Delivered to recipient"}}, "O")
	if events[0].IsWarning {
		t.Error("plain delivery event must not be a warning")
	}
}

func TestNormalizeCheckpoints_Empty(t *testing.T) {
	events := NormalizeCheckpoints(nil, "O")
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", events)
	}
}

func TestNormalizeLeg_NonListTrackinfo(t *testing.T) {
	var rec ProviderRecord
	body := `{"origin_info":{"trackinfo":{"checkpoint_date":"2024-01-01"}},"destination_info":"n/a"}`
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := NormalizeLeg(rec.OriginInfo, "O"); len(got) != 0 {
		t.Errorf("object trackinfo: expected no events, got %d", len(got))
	}
	if got := NormalizeLeg(rec.DestinationInfo, "D"); len(got) != 0 {
		t.Errorf("string leg: expected no events, got %d", len(got))
	}
	if rec.HasCheckpoints() {
		t.Error("expected HasCheckpoints=false")
	}
}

func TestNormalizeLeg_TolerantFields(t *testing.T) {
	var leg Leg
	body := `{"trackinfo":[{"checkpoint_date":"2024-03-01 10:00:00","tracking_detail":42,"city":null},"garbage"]}`
	if err := json.Unmarshal([]byte(body), &leg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	events := NormalizeLeg(leg, "D")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Status != "42" {
		t.Errorf("numeric detail: want %q, got %q", "42", events[0].Status)
	}
	if events[1].ID != "D-2" || events[1].Status != "Update" {
		t.Errorf("non-object checkpoint: got %+v", events[1])
	}
}

func eventsAt(prefix string, times ...string) []TimelineEvent {
	out := make([]TimelineEvent, len(times))
	for i, ts := range times {
		out[i] = TimelineEvent{ID: prefix + "-" + string(rune('1'+i)), Time: ts}
	}
	return out
}

func TestMergeTimelines_Chronological(t *testing.T) {
	merged := MergeTimelines(eventsAt("O", "2024-01-02", "2024-01-01"), eventsAt("D", "2024-01-03"))

	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(merged))
	}
	for i, ts := range want {
		if merged[i].Time != ts {
			t.Errorf("position %d: want %s, got %s", i, ts, merged[i].Time)
		}
	}
}

func TestMergeTimelines_MixedLayouts(t *testing.T) {
	merged := MergeTimelines(
		eventsAt("O", "2024-01-02T08:00:00+08:00", "2024-01-01 23:00:00"),
		eventsAt("D", "2024-01-02T01:00:00Z"),
	)

	// 08:00+08:00 is 00:00Z, so it precedes 01:00Z.
	want := []string{"O-2", "O-1", "D-1"}
	for i, id := range want {
		if merged[i].ID != id {
			t.Errorf("position %d: want %s, got %s", i, id, merged[i].ID)
		}
	}
}

func TestMergeTimelines_LooseProviderFormats(t *testing.T) {
	merged := MergeTimelines(
		eventsAt("O", "2024/01/03 10:00:00", "2024-01-01T10:00"),
		eventsAt("D", "2024-01-02T10:00:00+0800", "2024-01-02 10:00:00+08:00"),
	)

	want := []string{"O-2", "D-1", "D-2", "O-1"}
	for i, id := range want {
		if merged[i].ID != id {
			t.Errorf("position %d: want %s, got %s", i, id, merged[i].ID)
		}
	}
}

func TestMergeTimelines_UnparseableKeepsOrder(t *testing.T) {
	merged := MergeTimelines(eventsAt("O", "2024-01-05"), eventsAt("D", ""))

	if len(merged) != 2 {
		t.Fatalf("expected 2 events, got %d", len(merged))
	}
	if merged[0].ID != "O-1" || merged[1].ID != "D-1" {
		t.Errorf("expected input order O-1, D-1; got %s, %s", merged[0].ID, merged[1].ID)
	}

	merged = MergeTimelines(eventsAt("O", "not a date"), eventsAt("D", "2024-01-01"))
	if merged[0].ID != "O-1" || merged[1].ID != "D-1" {
		t.Errorf("expected input order O-1, D-1; got %s, %s", merged[0].ID, merged[1].ID)
	}
}

func TestMergeTimelines_Empty(t *testing.T) {
	merged := MergeTimelines(nil, nil)
	if merged == nil || len(merged) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", merged)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01 10:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01 10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00+08:00", time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00+0800", time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)},
		{"2024-01-01 10:00:00+08:00", time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.123Z", time.Date(2024, 1, 1, 10, 0, 0, 123000000, time.UTC)},
		{"2024/01/01 10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"May 8, 2009 5:57:51 PM", time.Date(2009, 5, 8, 17, 57, 51, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.in)
		if !ok {
			t.Errorf("%q: expected to parse", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: want %v, got %v", tt.in, tt.want, got.UTC())
		}
	}
	for _, s := range []string{"", "   ", "yesterday"} {
		if _, ok := ParseTimestamp(s); ok {
			t.Errorf("%q: expected parse failure", s)
		}
	}
}

func TestWarningCount(t *testing.T) {
	events := []TimelineEvent{{IsWarning: true}, {}, {IsWarning: true}}
	if got := WarningCount(events); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}
