package report

import (
	"context"
	"time"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// TrendPoint is one day of the expense trend series.
type TrendPoint struct {
	Day   time.Time
	Total float64
}

// CategoryTotal is one bar of the per-category breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// ScatterPoint is one transaction in the anomaly highlight view.
type ScatterPoint struct {
	Date   time.Time
	Amount float64
}

// Chart is a rendered visualization ready for storage or embedding.
type Chart struct {
	Kind string
	PNG  []byte
}

// ChartRenderer produces the visual artifacts referenced by a report. The
// builder depends only on this capability, not on a rendering library; any
// implementation is substitutable.
type ChartRenderer interface {
	Trend(points []TrendPoint) ([]byte, error)
	Breakdown(totals []CategoryTotal) ([]byte, error)
	Anomalies(normal, anomalous []ScatterPoint) ([]byte, error)
}

// DocumentExporter encodes a finished report, plus its rendered charts,
// into a fixed-layout document.
type DocumentExporter interface {
	Export(rep domain.Report, charts []Chart) ([]byte, error)
}

// ArtifactStore persists rendered outputs to a shared location keyed by
// report id, so concurrent report generations never collide.
type ArtifactStore interface {
	Put(ctx context.Context, reportID, name string, data []byte) (domain.ArtifactRef, error)
}
