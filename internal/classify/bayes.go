package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// fallbackCategory is returned when the model has seen no training data.
const fallbackCategory = "uncategorized"

// typoMaxDistance bounds the vocabulary fallback for unseen tokens.
const typoMaxDistance = 1

// Bayes is a naive Bayes text classifier over whitespace tokens with
// Laplace smoothing. The model state is a plain value with an explicit
// load/train/save lifecycle.
type Bayes struct {
	mu    sync.RWMutex
	state bayesState
}

type bayesState struct {
	TotalDocs  int                       `json:"total_docs"`
	Categories map[string]*categoryStats `json:"categories"`
}

type categoryStats struct {
	DocCount   int            `json:"doc_count"`
	TokenTotal int            `json:"token_total"`
	Tokens     map[string]int `json:"tokens"`
}

// NewBayes creates an untrained classifier.
func NewBayes() *Bayes {
	return &Bayes{state: bayesState{Categories: make(map[string]*categoryStats)}}
}

// LoadBayes reads a saved model from path. A missing file yields a fresh,
// untrained classifier.
func LoadBayes(path string) (*Bayes, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBayes(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading classifier model: %w", err)
	}

	b := NewBayes()
	if err := json.Unmarshal(data, &b.state); err != nil {
		return nil, fmt.Errorf("parsing classifier model: %w", err)
	}
	if b.state.Categories == nil {
		b.state.Categories = make(map[string]*categoryStats)
	}
	return b, nil
}

// Save writes the model state to path, creating parent directories.
func (b *Bayes) Save(path string) error {
	b.mu.RLock()
	data, err := json.MarshalIndent(b.state, "", "  ")
	b.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshaling classifier model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing classifier model: %w", err)
	}
	return nil
}

// Trained reports whether the model has seen any training documents.
func (b *Bayes) Trained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.TotalDocs > 0
}

// Categories returns the labels the model knows.
func (b *Bayes) Categories() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.state.Categories))
	for c := range b.state.Categories {
		out = append(out, c)
	}
	return out
}

// Predict scores every known category against the tokenized input and
// returns the best with its normalized posterior. An untrained model
// predicts the uncategorized fallback with zero confidence.
func (b *Bayes) Predict(_ context.Context, description string, direction model.Direction) (Prediction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.state.TotalDocs == 0 {
		return Prediction{Category: fallbackCategory, Confidence: 0}, nil
	}

	tokens := b.resolveTokens(tokenize(description + " " + string(direction)))
	vocab := b.vocabularySize()

	best := ""
	bestScore := math.Inf(-1)
	scores := make(map[string]float64, len(b.state.Categories))
	for cat, stats := range b.state.Categories {
		score := math.Log(float64(stats.DocCount) / float64(b.state.TotalDocs))
		for _, t := range tokens {
			count := stats.Tokens[t]
			score += math.Log(float64(count+1) / float64(stats.TokenTotal+vocab))
		}
		scores[cat] = score
		if score > bestScore {
			best, bestScore = cat, score
		}
	}

	return Prediction{Category: best, Confidence: posterior(scores, best)}, nil
}

// Learn updates the model with one labeled example, e.g. a user correction.
func (b *Bayes) Learn(_ context.Context, description string, direction model.Direction, category string) error {
	if category == "" {
		return errors.New("category is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stats, ok := b.state.Categories[category]
	if !ok {
		stats = &categoryStats{Tokens: make(map[string]int)}
		b.state.Categories[category] = stats
	}

	for _, t := range tokenize(description + " " + string(direction)) {
		stats.Tokens[t]++
		stats.TokenTotal++
	}
	stats.DocCount++
	b.state.TotalDocs++
	return nil
}

// Sample is one labeled training example.
type Sample struct {
	Text      string
	Direction model.Direction
	Category  string
}

// Train feeds a batch of samples into the model.
func (b *Bayes) Train(ctx context.Context, samples []Sample) error {
	for _, s := range samples {
		if err := b.Learn(ctx, s.Text, s.Direction, s.Category); err != nil {
			return fmt.Errorf("learning %q: %w", s.Text, err)
		}
	}
	return nil
}

// resolveTokens maps unseen tokens onto the nearest known vocabulary token
// within a small edit distance, so minor typos still score. Short tokens
// are left alone; almost everything is within distance 1 of them.
func (b *Bayes) resolveTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= 4 && !b.known(t) {
			if nearest, ok := b.nearestToken(t); ok {
				t = nearest
			}
		}
		out = append(out, t)
	}
	return out
}

func (b *Bayes) known(token string) bool {
	for _, stats := range b.state.Categories {
		if _, ok := stats.Tokens[token]; ok {
			return true
		}
	}
	return false
}

func (b *Bayes) nearestToken(token string) (string, bool) {
	best := ""
	bestDist := typoMaxDistance + 1
	for _, stats := range b.state.Categories {
		for t := range stats.Tokens {
			if d := levenshtein.ComputeDistance(token, t); d < bestDist {
				best, bestDist = t, d
			}
		}
	}
	return best, best != ""
}

func (b *Bayes) vocabularySize() int {
	seen := make(map[string]struct{})
	for _, stats := range b.state.Categories {
		for t := range stats.Tokens {
			seen[t] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// posterior converts log scores into the winner's normalized probability.
func posterior(scores map[string]float64, best string) float64 {
	max := scores[best]
	var total float64
	for _, s := range scores {
		total += math.Exp(s - max)
	}
	if total == 0 {
		return 0
	}
	p := 1 / total // exp(max-max) == 1
	return math.Min(p, 0.99)
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
