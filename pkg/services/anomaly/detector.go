package anomaly

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// Settings configure the isolation-based scorer. The seed is an explicit
// value rather than an implicit default so repeated runs over the same
// table produce identical labels.
type Settings struct {
	// Contamination is the expected fraction of outlier transactions.
	Contamination float64
	// MinRows is the smallest table the model is fitted on; below it,
	// scoring degrades to all-non-anomalous instead of failing.
	MinRows    int
	Trees      int
	SampleSize int
	Seed       int64
}

func DefaultSettings() Settings {
	return Settings{
		Contamination: 0.1,
		MinRows:       10,
		Trees:         128,
		SampleSize:    256,
		Seed:          42,
	}
}

// Notice records a soft degradation of anomaly scoring.
type Notice struct {
	Reason string
}

type Detector struct {
	settings Settings
}

func NewDetector(settings Settings) *Detector {
	def := DefaultSettings()
	if settings.Contamination <= 0 || settings.Contamination >= 1 {
		settings.Contamination = def.Contamination
	}
	if settings.MinRows <= 0 {
		settings.MinRows = def.MinRows
	}
	if settings.Trees <= 0 {
		settings.Trees = def.Trees
	}
	if settings.SampleSize <= 1 {
		settings.SampleSize = def.SampleSize
	}
	return &Detector{settings: settings}
}

func (d *Detector) Settings() Settings { return d.settings }

// Score fits the forest over the full table and scores every transaction
// against it. This is a batch operation: the model is refitted on every
// call, so a changed table never sees stale scores. Tables smaller than
// MinRows are not scored at all; every label comes back non-anomalous
// together with a notice, not an error. Transactions are never mutated,
// only labeled.
func (d *Detector) Score(txs []domain.Transaction) ([]domain.AnomalyLabel, *Notice) {
	labels := make([]domain.AnomalyLabel, len(txs))
	if len(txs) < d.settings.MinRows {
		return labels, &Notice{
			Reason: fmt.Sprintf("anomaly scoring skipped: %d rows, need at least %d", len(txs), d.settings.MinRows),
		}
	}

	features := featureMatrix(txs)
	rng := rand.New(rand.NewSource(d.settings.Seed))
	f := buildForest(features, d.settings.Trees, d.settings.SampleSize, rng)
	for i, row := range features {
		labels[i].Score = f.score(row)
	}

	// Label the top contamination quantile as anomalous; ties break by row
	// position so the cut is stable.
	k := int(math.Ceil(d.settings.Contamination * float64(len(txs))))
	order := make([]int, len(txs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return labels[order[i]].Score > labels[order[j]].Score
	})
	for _, i := range order[:k] {
		labels[i].Anomalous = true
	}
	return labels, nil
}

// featureMatrix builds the per-transaction feature vector: amount,
// day-of-week and month.
func featureMatrix(txs []domain.Transaction) [][]float64 {
	m := make([][]float64, len(txs))
	for i, tx := range txs {
		m[i] = []float64{
			tx.Amount.InexactFloat64(),
			float64(tx.Date.Weekday()),
			float64(tx.Date.Month()),
		}
	}
	return m
}
