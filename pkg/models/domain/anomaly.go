package domain

// AnomalyLabel marks one transaction as anomalous or not. Score is a
// relative measure where higher means more anomalous; it supports ranking
// (top-N most anomalous) without promising a probability.
type AnomalyLabel struct {
	Anomalous bool
	Score     float64
}
