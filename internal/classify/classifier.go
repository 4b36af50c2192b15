// Package classify suggests a ledger category for a transaction
// description. The mapping resolver treats the classifier as a black box;
// only Prediction crosses the boundary.
package classify

import (
	"context"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// Prediction is a classifier verdict: a category label and a confidence
// score in [0,1].
type Prediction struct {
	Category   string
	Confidence float64
}

// Classifier predicts a category from free text and learns from user
// corrections. Implementations are injected; there is no process-wide
// instance.
type Classifier interface {
	Predict(ctx context.Context, description string, direction model.Direction) (Prediction, error)
	Learn(ctx context.Context, description string, direction model.Direction, category string) error
}
