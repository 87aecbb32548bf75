package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/docset/pkg/docset/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFilterConfig(t *testing.T) {
	path := writeFile(t, "filter.yaml", `
min_sentences: 20
min_clusters: 8
min_relations: 5
min_chars: 3000
count: 5
`)

	fc, err := LoadFilterConfig(path)
	if err != nil {
		t.Fatalf("Load should succeed, got %v", err)
	}

	th := fc.Thresholds()
	if th.MinSentences != 20 || th.MinClusters != 8 || th.MinRelations != 5 || th.MinChars != 3000 {
		t.Errorf("Thresholds not applied: %+v", th)
	}
	if fc.TargetCount() != 5 {
		t.Errorf("Expected count 5, got %d", fc.TargetCount())
	}
}

func TestFilterConfigDefaults(t *testing.T) {
	path := writeFile(t, "filter.yaml", "min_sentences: 12\n")

	fc, err := LoadFilterConfig(path)
	if err != nil {
		t.Fatalf("Load should succeed, got %v", err)
	}

	th := fc.Thresholds()
	if th.MinSentences != 12 {
		t.Errorf("Explicit field should override, got %d", th.MinSentences)
	}
	if th.MinClusters != 5 || th.MinRelations != 3 || th.MinChars != 2000 {
		t.Errorf("Unset fields should default: %+v", th)
	}
	if fc.TargetCount() != 3 {
		t.Errorf("Unset count should default to 3, got %d", fc.TargetCount())
	}
}

func TestLoadFilterConfigMissingFile(t *testing.T) {
	if _, err := LoadFilterConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Missing config file should be an error")
	}
}

func TestLoadGroundTruth(t *testing.T) {
	path := writeFile(t, "truth.yaml", `
entities:
  - - name: Marie Curie
      sent_id: 0
      type: PER
      pos: [0, 2]
  - - name: Warsaw
      sent_id: 0
      type: LOC
      pos: [10, 11]
relations:
  - {h: 0, t: 1, r: P19}
`)

	truth, err := LoadGroundTruth(path)
	if err != nil {
		t.Fatalf("Load should succeed, got %v", err)
	}

	if len(truth.VertexSet) != 2 {
		t.Fatalf("Expected 2 entity clusters, got %d", len(truth.VertexSet))
	}
	m := truth.VertexSet[0][0]
	if m.Name != "Marie Curie" || m.SentID != 0 || m.Type != "PER" || m.Pos != [2]int{0, 2} {
		t.Errorf("Mention not loaded correctly: %+v", m)
	}
	if len(truth.Labels) != 1 {
		t.Fatalf("Expected 1 relation, got %d", len(truth.Labels))
	}
	if truth.Labels[0].H != 0 || truth.Labels[0].T != 1 || truth.Labels[0].R != "P19" {
		t.Errorf("Relation not loaded correctly: %+v", truth.Labels[0])
	}
}

func TestLoadGroundTruthBadPos(t *testing.T) {
	path := writeFile(t, "truth.yaml", `
entities:
  - - name: Broken
      sent_id: 0
      type: PER
      pos: [1]
`)

	_, err := LoadGroundTruth(path)
	if err == nil {
		t.Fatal("Mention with a non-pair pos should fail")
	}
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadGroundTruthBadYAML(t *testing.T) {
	path := writeFile(t, "truth.yaml", "entities: [not: valid: yaml\n")

	if _, err := LoadGroundTruth(path); err == nil {
		t.Error("Malformed YAML should be an error")
	}
}
