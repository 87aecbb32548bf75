// Package filter selects documents from a candidate corpus by
// structural and size thresholds.
package filter

import (
	"context"
	"fmt"

	"github.com/cognicore/docset/pkg/docset/assemble"
	"github.com/cognicore/docset/pkg/docset/corpus"
	"github.com/cognicore/docset/pkg/docset/docred"
)

// DefaultIDPrefix is prepended to the candidate's source position to
// form the selected document's id.
const DefaultIDPrefix = "docred_"

// Thresholds are the structural minimums a candidate must meet.
// MinChars is strict: the joined character count must exceed it.
type Thresholds struct {
	MinSentences int
	MinClusters  int
	MinRelations int
	MinChars     int
}

// DefaultThresholds returns the standard long-document thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSentences: 10,
		MinClusters:  5,
		MinRelations: 3,
		MinChars:     2000,
	}
}

// Metrics are the per-candidate structural measurements the
// thresholds are checked against.
type Metrics struct {
	Sentences    int
	Clusters     int
	Relations    int
	Characters   int
	ApproxTokens int
}

// Measure computes the metrics for a candidate record.
func Measure(rec corpus.Record) Metrics {
	var flat []string
	for _, para := range rec.Sents {
		flat = append(flat, para...)
	}
	chars := len(assemble.JoinSentences(flat))
	return Metrics{
		Sentences:    len(flat),
		Clusters:     len(rec.VertexSet),
		Relations:    len(rec.Labels),
		Characters:   chars,
		ApproxTokens: chars / assemble.CharsPerToken,
	}
}

// Meets reports whether the metrics satisfy all thresholds.
func (t Thresholds) Meets(m Metrics) bool {
	return m.Sentences >= t.MinSentences &&
		m.Clusters >= t.MinClusters &&
		m.Relations >= t.MinRelations &&
		m.Characters > t.MinChars
}

// Filter selects qualifying candidates from a source in order.
type Filter struct {
	thresholds Thresholds
	idPrefix   string
}

// New creates a filter with the given thresholds and the default id
// prefix.
func New(t Thresholds) *Filter {
	return &Filter{thresholds: t, idPrefix: DefaultIDPrefix}
}

// NewWithIDPrefix creates a filter with a custom id prefix.
func NewWithIDPrefix(t Thresholds, prefix string) *Filter {
	return &Filter{thresholds: t, idPrefix: prefix}
}

// Selection pairs a selected document with its metrics for reporting.
type Selection struct {
	Document docred.Document
	Metrics  Metrics
	Position int
}

// Select iterates the source in order and collects up to k qualifying
// documents. Each selected document gets a deterministic id derived
// from the candidate's 0-based position in the source sequence; its
// remaining fields are copied verbatim, with no validation beyond the
// threshold checks. Iteration stops as soon as k documents are
// collected, leaving the rest of the source unconsumed. An exhausted
// source yields fewer than k documents without error. Source errors
// abort the run.
func (f *Filter) Select(ctx context.Context, src corpus.Source, k int) ([]Selection, error) {
	var selected []Selection
	for pos := 0; len(selected) < k; pos++ {
		rec, ok, err := src.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("corpus candidate %d: %w", pos, err)
		}
		if !ok {
			break
		}

		m := Measure(rec)
		if !f.thresholds.Meets(m) {
			continue
		}

		selected = append(selected, Selection{
			Document: docred.Document{
				ID:        fmt.Sprintf("%s%d", f.idPrefix, pos),
				Title:     rec.Title,
				Sents:     rec.Sents,
				VertexSet: rec.VertexSet,
				Labels:    rec.Labels,
			},
			Metrics:  m,
			Position: pos,
		})
	}
	return selected, nil
}

// Documents extracts the documents from a selection, in order.
func Documents(selected []Selection) []docred.Document {
	docs := make([]docred.Document, len(selected))
	for i, s := range selected {
		docs[i] = s.Document
	}
	return docs
}
