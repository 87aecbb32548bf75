// Package corpus provides candidate-document sources for the fixture
// filter: an HTTP client for the hosted DocRED dataset and a
// sqlite-backed local snapshot for offline runs.
package corpus

import (
	"context"

	"github.com/cognicore/docset/pkg/docset/docred"
)

// Record is a candidate document as the corpus exposes it: everything
// a Document has except an id.
type Record struct {
	Title     string             `json:"title"`
	Sents     [][]string         `json:"sents"`
	VertexSet [][]docred.Mention `json:"vertexSet"`
	Labels    []docred.Label     `json:"labels"`
}

// Source is a read-only, ordered, lazily produced sequence of
// candidate records. Next returns ok=false once the sequence is
// exhausted. Sources are iterated once; they never seek or re-read.
type Source interface {
	Next(ctx context.Context) (Record, bool, error)
}

// SliceSource iterates an in-memory record slice. Used by tests and
// for small hand-built corpora.
type SliceSource struct {
	records []Record
	pos     int
}

// NewSliceSource creates a source over the given records.
func NewSliceSource(records []Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record in order.
func (s *SliceSource) Next(ctx context.Context) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}
	if s.pos >= len(s.records) {
		return Record{}, false, nil
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, true, nil
}
