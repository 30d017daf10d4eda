package audit

import (
	"math"

	"github.com/spec-kit/ops-console/internal/domain"
)

// TimelinePoint positions one entry on the horizontal timeline.
type TimelinePoint struct {
	Entry   domain.Annotation
	Percent float64
}

// ProjectTimeline maps entries (already in chronological order) onto evenly
// spaced horizontal positions in [0,100]. A single entry sits at 0. The
// projection is pure layout and carries no business meaning.
func ProjectTimeline(entries []domain.Annotation) []TimelinePoint {
	points := make([]TimelinePoint, 0, len(entries))
	for i, entry := range entries {
		var percent float64
		if len(entries) > 1 {
			percent = float64(i) / float64(len(entries)-1) * 100
		}
		if math.IsNaN(percent) || math.IsInf(percent, 0) {
			percent = 0
		}
		if percent < 0 {
			percent = 0
		} else if percent > 100 {
			percent = 100
		}
		points = append(points, TimelinePoint{Entry: entry, Percent: percent})
	}
	return points
}
