// Package fixture persists document collections as pretty-printed
// JSON arrays. The file is a single shared resource with no locking;
// the producers are invoked manually and never concurrently.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cognicore/docset/pkg/docset/docred"
	"github.com/cognicore/docset/pkg/docset/internalerr"
)

// Load reads the collection at path. A missing file is a normal empty
// start and returns (nil, nil). Unreadable or unparseable content also
// yields an empty collection, but the underlying error is returned so
// callers can report the possible data loss before overwriting.
func Load(path string) ([]docred.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []docred.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Append returns existing with docs appended. Existing entries are
// preserved unchanged and unvalidated; new ids must not collide with
// existing ids or with each other.
func Append(existing, docs []docred.Document) ([]docred.Document, error) {
	seen := make(map[string]struct{}, len(existing)+len(docs))
	for _, d := range existing {
		seen[d.ID] = struct{}{}
	}

	for _, d := range docs {
		if _, ok := seen[d.ID]; ok {
			return nil, fmt.Errorf("%w: document id %q already in collection", internalerr.ErrDuplicate, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return append(append([]docred.Document(nil), existing...), docs...), nil
}

// Save rewrites the full collection at path: two-space indent, UTF-8,
// non-ASCII characters kept literal. Not atomic; a crash mid-write can
// corrupt the file, accepted for a test-fixture utility.
func Save(path string, docs []docred.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if docs == nil {
		docs = []docred.Document{}
	}
	if err := enc.Encode(docs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AppendAndSave loads the collection at path (fail-open on parse
// errors), appends docs, writes the result back, and returns the
// persisted collection. The load error, if any, is returned alongside
// a successful write so callers can warn about a replaced unparseable
// file.
func AppendAndSave(path string, docs []docred.Document) ([]docred.Document, error) {
	existing, loadErr := Load(path)

	combined, err := Append(existing, docs)
	if err != nil {
		return nil, err
	}
	if err := Save(path, combined); err != nil {
		return nil, err
	}
	return combined, loadErr
}
