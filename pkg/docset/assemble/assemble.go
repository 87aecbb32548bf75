// Package assemble builds validated documents from segmented text and
// a hand-declared ground truth of entity clusters and relation labels.
package assemble

import (
	"crypto/rand"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/docset/pkg/docset/docred"
)

// Token-estimate heuristic: a fixed 4 characters per token, not a real
// tokenizer. A document is expected to trigger the downstream chunking
// mechanism once its estimate exceeds ChunkTriggerTokens.
const (
	CharsPerToken      = 4
	ChunkTriggerTokens = 2000
)

// GroundTruth is the manually declared annotation table for a
// synthetic document. It is a builder parameter so tests can
// substitute alternative tables.
type GroundTruth struct {
	VertexSet [][]docred.Mention
	Labels    []docred.Label
}

// Stats summarizes an assembled document for diagnostics and test
// reporting. It is not part of the persisted document schema.
type Stats struct {
	Sentences    int
	Characters   int
	ApproxTokens int
	Entities     int
	Relations    int
}

// TriggersChunking reports whether the token estimate exceeds the
// chunking trigger.
func (s Stats) TriggersChunking() bool {
	return s.ApproxTokens > ChunkTriggerTokens
}

// Builder assembles documents. It carries a monotonic entropy source
// for generating ids when the caller supplies none.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a document builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Build combines a paragraph sequence with a ground-truth table into a
// validated document. An empty id gets a generated ULID. Inputs are
// deep-copied, never mutated. Validation is fail-fast; on failure no
// document is produced.
func (b *Builder) Build(id, title string, paragraphs [][]string, truth GroundTruth) (docred.Document, Stats, error) {
	if id == "" {
		id = ulid.MustNew(ulid.Now(), b.entropy).String()
	}

	doc := docred.Document{
		ID:        id,
		Title:     title,
		Sents:     copyParagraphs(paragraphs),
		VertexSet: copyVertexSet(truth.VertexSet),
		Labels:    append([]docred.Label(nil), truth.Labels...),
	}

	if err := doc.Validate(); err != nil {
		return docred.Document{}, Stats{}, err
	}

	return doc, Summarize(&doc), nil
}

// Summarize computes the diagnostic stats for a document.
func Summarize(doc *docred.Document) Stats {
	chars := len(doc.JoinedText())
	return Stats{
		Sentences:    doc.SentenceCount(),
		Characters:   chars,
		ApproxTokens: chars / CharsPerToken,
		Entities:     len(doc.VertexSet),
		Relations:    len(doc.Labels),
	}
}

// EstimateTokens applies the character heuristic to arbitrary text.
func EstimateTokens(text string) int {
	return len(text) / CharsPerToken
}

// JoinSentences joins flat sentences with single spaces, the
// character-count basis shared with EstimateTokens.
func JoinSentences(sentences []string) string {
	return strings.Join(sentences, " ")
}

func copyParagraphs(paras [][]string) [][]string {
	if paras == nil {
		return nil
	}
	out := make([][]string, len(paras))
	for i, p := range paras {
		out[i] = append([]string(nil), p...)
	}
	return out
}

func copyVertexSet(vs [][]docred.Mention) [][]docred.Mention {
	if vs == nil {
		return nil
	}
	out := make([][]docred.Mention, len(vs))
	for i, cluster := range vs {
		out[i] = append([]docred.Mention(nil), cluster...)
	}
	return out
}
