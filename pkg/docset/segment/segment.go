// Package segment splits raw text into sentences and groups them into
// fixed-size paragraphs. The split is a single-character-delimiter
// heuristic, not a language-aware sentence splitter: abbreviations and
// other sentence-final punctuation are deliberately ignored.
package segment

import "strings"

// DefaultParagraphSize is the number of sentences per paragraph.
const DefaultParagraphSize = 4

// DefaultTerminator is the sentence-terminator character.
const DefaultTerminator = '.'

// Segmenter splits text on a terminator character and windows the
// resulting sentences into paragraphs.
type Segmenter struct {
	terminator    rune
	paragraphSize int
}

// New creates a segmenter with the default terminator and paragraph size.
func New() *Segmenter {
	return NewWithOptions(DefaultTerminator, DefaultParagraphSize)
}

// NewWithOptions creates a segmenter with a custom terminator and
// paragraph size. A size below 1 falls back to the default.
func NewWithOptions(terminator rune, paragraphSize int) *Segmenter {
	if paragraphSize < 1 {
		paragraphSize = DefaultParagraphSize
	}
	return &Segmenter{terminator: terminator, paragraphSize: paragraphSize}
}

// Sentences splits text on the terminator, discards empty and
// whitespace-only fragments, and re-appends the terminator to each
// retained fragment. Empty input yields nil.
func (s *Segmenter) Sentences(text string) []string {
	var sentences []string
	for _, frag := range strings.Split(text, string(s.terminator)) {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		sentences = append(sentences, frag+string(s.terminator))
	}
	return sentences
}

// Paragraphs segments text and groups the sentences into windows of
// the paragraph size. N sentences yield ceil(N/size) paragraphs; the
// final paragraph may be shorter. Empty input yields nil.
func (s *Segmenter) Paragraphs(text string) [][]string {
	sentences := s.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var paras [][]string
	for i := 0; i < len(sentences); i += s.paragraphSize {
		end := i + s.paragraphSize
		if end > len(sentences) {
			end = len(sentences)
		}
		paras = append(paras, sentences[i:end:end])
	}
	return paras
}
