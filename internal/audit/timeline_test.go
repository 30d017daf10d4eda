package audit

import (
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

func TestProjectTimeline_singleEntryAtZero(t *testing.T) {
	entries := []domain.Annotation{entryAt(time.Now(), "solo")}
	points := ProjectTimeline(entries)
	if len(points) != 1 {
		t.Fatalf("len = %d, want 1", len(points))
	}
	if points[0].Percent != 0 {
		t.Errorf("Percent = %v, want 0", points[0].Percent)
	}
}

func TestProjectTimeline_evenSpacing(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := make([]domain.Annotation, 5)
	for i := range entries {
		entries[i] = entryAt(base.Add(time.Duration(i)*time.Hour), "e")
	}

	points := ProjectTimeline(entries)
	want := []float64{0, 25, 50, 75, 100}
	for i, point := range points {
		if point.Percent != want[i] {
			t.Errorf("points[%d].Percent = %v, want %v", i, point.Percent, want[i])
		}
	}
}

func TestProjectTimeline_monotonic(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := make([]domain.Annotation, 7)
	for i := range entries {
		entries[i] = entryAt(base.Add(time.Duration(i)*time.Minute), "e")
	}

	points := ProjectTimeline(entries)
	for i := 1; i < len(points); i++ {
		if points[i].Percent <= points[i-1].Percent {
			t.Fatalf("points not strictly increasing at %d: %v <= %v", i, points[i].Percent, points[i-1].Percent)
		}
	}
	if points[len(points)-1].Percent != 100 {
		t.Errorf("last Percent = %v, want 100", points[len(points)-1].Percent)
	}
}

func TestProjectTimeline_empty(t *testing.T) {
	if points := ProjectTimeline(nil); len(points) != 0 {
		t.Errorf("ProjectTimeline(nil) = %v, want empty", points)
	}
}
