package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Leg prefixes used in timeline event IDs.
const (
	OriginLegPrefix      = "O"
	DestinationLegPrefix = "D"
)

// holdKeywords flag a checkpoint as a warning when found in its status text.
var holdKeywords = []string{"held", "inspection", "examination", "customs", "quarantine", "delay"}

// timestampLayouts cover the shapes the provider usually sends. Anything
// else goes through dateparse.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// TimelineEvent is a provider checkpoint in the unified, leg-agnostic shape.
type TimelineEvent struct {
	ID          string `json:"id"`
	Location    string `json:"location"`
	SubLocation string `json:"subLocation,omitempty"`
	Status      string `json:"status"`
	Time        string `json:"time"`
	Details     string `json:"details,omitempty"`
	Tag         string `json:"tag,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
	IsWarning   bool   `json:"isWarning"`
}

// NormalizeCheckpoints converts one leg's checkpoints into timeline events.
// IDs are "<prefix>-<n>" with n counting from 1; output order equals input order.
func NormalizeCheckpoints(checkpoints []Checkpoint, prefix string) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(checkpoints))
	for i, cp := range checkpoints {
		status := firstNonEmpty(cp.TrackingDetail, cp.RawStatus, cp.DeliveryStatus, cp.DeliverySubstatus)
		if status == "" {
			status = "Update"
		}
		sub := string(cp.DeliverySubstatus)

		events = append(events, TimelineEvent{
			ID:          fmt.Sprintf("%s-%d", prefix, i+1),
			Location:    checkpointLocation(cp),
			SubLocation: sub,
			Status:      status,
			Time:        string(cp.CheckpointDate),
			IsCompleted: true,
			IsWarning:   isHoldText(status + " " + sub),
		})
	}
	return events
}

// NormalizeLeg is NormalizeCheckpoints over a provider leg.
func NormalizeLeg(leg Leg, prefix string) []TimelineEvent {
	return NormalizeCheckpoints(leg.Checkpoints(), prefix)
}

func checkpointLocation(cp Checkpoint) string {
	if cp.Location != "" {
		return string(cp.Location)
	}
	parts := make([]string, 0, 2)
	for _, p := range []Text{cp.City, cp.State} {
		if p != "" {
			parts = append(parts, string(p))
		}
	}
	return strings.Join(parts, ", ")
}

func isHoldText(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range holdKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MergeTimelines concatenates both legs and orders the result by event time.
// Two events compare equal when either time fails to parse, so the stable
// sort leaves such pairs where it found them.
func MergeTimelines(origin, destination []TimelineEvent) []TimelineEvent {
	type keyed struct {
		event TimelineEvent
		at    time.Time
		ok    bool
	}

	items := make([]keyed, 0, len(origin)+len(destination))
	for _, legEvents := range [][]TimelineEvent{origin, destination} {
		for _, ev := range legEvents {
			at, ok := ParseTimestamp(ev.Time)
			items = append(items, keyed{event: ev, at: at, ok: ok})
		}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if !a.ok || !b.ok {
			return 0
		}
		return a.at.Compare(b.at)
	})

	merged := make([]TimelineEvent, len(items))
	for i, it := range items {
		merged[i] = it.event
	}
	return merged
}

// ParseTimestamp parses a provider date/time. Values without a zone are
// read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// WarningCount returns how many events are flagged as warnings.
func WarningCount(events []TimelineEvent) int {
	n := 0
	for _, ev := range events {
		if ev.IsWarning {
			n++
		}
	}
	return n
}
