// Package docred defines the document-level relation-extraction
// annotation format used by the fixture files: sentences grouped into
// paragraphs, entity mention clusters, and relation labels between
// clusters.
package docred

import (
	"fmt"
	"strings"

	"github.com/cognicore/docset/pkg/docset/internalerr"
)

// Entity types from the DocRED inventory.
const (
	TypePER  = "PER"
	TypeLOC  = "LOC"
	TypeORG  = "ORG"
	TypeTIME = "TIME"
	TypeNUM  = "NUM"
	TypeMISC = "MISC"
)

// Mention is a single occurrence of an entity in one sentence.
// Pos is a half-open [start, end) token-offset span within that sentence.
type Mention struct {
	Name   string `json:"name"`
	SentID int    `json:"sent_id"`
	Type   string `json:"type"`
	Pos    [2]int `json:"pos"`
}

// Label is a relation triple between two entity clusters.
// H and T index into the document's vertex set; R is a relation code
// such as "P19" (place of birth).
type Label struct {
	H int    `json:"h"`
	T int    `json:"t"`
	R string `json:"r"`
}

// Document is one annotated document. Sents holds paragraphs of
// sentence strings; flattening the paragraphs in order yields the
// 0-based global sentence index space that mention SentIDs refer to.
type Document struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Sents     [][]string  `json:"sents"`
	VertexSet [][]Mention `json:"vertexSet"`
	Labels    []Label     `json:"labels"`
}

// FlatSentences returns all sentences in global index order.
func (d *Document) FlatSentences() []string {
	var flat []string
	for _, para := range d.Sents {
		flat = append(flat, para...)
	}
	return flat
}

// SentenceCount returns the flattened sentence count.
func (d *Document) SentenceCount() int {
	n := 0
	for _, para := range d.Sents {
		n += len(para)
	}
	return n
}

// JoinedText returns all sentences joined with single spaces. This is
// the basis for character counts and token estimates.
func (d *Document) JoinedText() string {
	return strings.Join(d.FlatSentences(), " ")
}

// Validate checks the document's structural invariants, failing fast
// on the first violation with the offending index in the message.
// Uniqueness of the id within a collection is checked at append time,
// not here.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: empty id", internalerr.ErrInvalidDocument)
	}

	sentCount := d.SentenceCount()

	for ci, cluster := range d.VertexSet {
		if len(cluster) == 0 {
			return fmt.Errorf("%w: vertexSet[%d] has no mentions", internalerr.ErrInvalidDocument, ci)
		}
		for mi, m := range cluster {
			if m.SentID < 0 || m.SentID >= sentCount {
				return fmt.Errorf("%w: vertexSet[%d][%d] sent_id %d out of range [0,%d)",
					internalerr.ErrInvalidDocument, ci, mi, m.SentID, sentCount)
			}
			if m.Pos[0] < 0 || m.Pos[1] < 0 || m.Pos[0] >= m.Pos[1] {
				return fmt.Errorf("%w: vertexSet[%d][%d] invalid pos [%d,%d)",
					internalerr.ErrInvalidDocument, ci, mi, m.Pos[0], m.Pos[1])
			}
		}
	}

	for li, l := range d.Labels {
		if l.H < 0 || l.H >= len(d.VertexSet) {
			return fmt.Errorf("%w: labels[%d] h=%d out of range [0,%d)",
				internalerr.ErrInvalidDocument, li, l.H, len(d.VertexSet))
		}
		if l.T < 0 || l.T >= len(d.VertexSet) {
			return fmt.Errorf("%w: labels[%d] t=%d out of range [0,%d)",
				internalerr.ErrInvalidDocument, li, l.T, len(d.VertexSet))
		}
		if l.H == l.T {
			return fmt.Errorf("%w: labels[%d] h and t both %d",
				internalerr.ErrInvalidDocument, li, l.H)
		}
	}

	return nil
}
