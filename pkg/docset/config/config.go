// Package config loads fixture-producer configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/docset/pkg/docset/assemble"
	"github.com/cognicore/docset/pkg/docset/docred"
	"github.com/cognicore/docset/pkg/docset/filter"
	"github.com/cognicore/docset/pkg/docset/internalerr"
)

// FilterConfig represents the corpus-filter configuration. Zero fields
// fall back to the defaults.
type FilterConfig struct {
	MinSentences int `yaml:"min_sentences"`
	MinClusters  int `yaml:"min_clusters"`
	MinRelations int `yaml:"min_relations"`
	MinChars     int `yaml:"min_chars"`
	Count        int `yaml:"count"`
}

// LoadFilterConfig loads filter settings from a YAML file.
func LoadFilterConfig(path string) (*FilterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FilterConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	return &fc, nil
}

// Thresholds returns the configured thresholds, defaulting each unset
// field.
func (fc *FilterConfig) Thresholds() filter.Thresholds {
	t := filter.DefaultThresholds()
	if fc.MinSentences > 0 {
		t.MinSentences = fc.MinSentences
	}
	if fc.MinClusters > 0 {
		t.MinClusters = fc.MinClusters
	}
	if fc.MinRelations > 0 {
		t.MinRelations = fc.MinRelations
	}
	if fc.MinChars > 0 {
		t.MinChars = fc.MinChars
	}
	return t
}

// TargetCount returns the configured document count, defaulting to 3.
func (fc *FilterConfig) TargetCount() int {
	if fc.Count > 0 {
		return fc.Count
	}
	return 3
}

// mentionYAML mirrors docred.Mention with a pos pair.
type mentionYAML struct {
	Name   string `yaml:"name"`
	SentID int    `yaml:"sent_id"`
	Type   string `yaml:"type"`
	Pos    []int  `yaml:"pos"`
}

// labelYAML mirrors docred.Label.
type labelYAML struct {
	H int    `yaml:"h"`
	T int    `yaml:"t"`
	R string `yaml:"r"`
}

// groundTruthYAML is the on-disk shape of a ground-truth table.
type groundTruthYAML struct {
	Entities  [][]mentionYAML `yaml:"entities"`
	Relations []labelYAML     `yaml:"relations"`
}

// LoadGroundTruth loads a hand-declared entity/relation table from a
// YAML file. Each mention's pos must be a [start, end) pair.
func LoadGroundTruth(path string) (assemble.GroundTruth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assemble.GroundTruth{}, err
	}

	var gt groundTruthYAML
	if err := yaml.Unmarshal(data, &gt); err != nil {
		return assemble.GroundTruth{}, err
	}

	truth := assemble.GroundTruth{}
	for ci, cluster := range gt.Entities {
		mentions := make([]docred.Mention, 0, len(cluster))
		for mi, m := range cluster {
			if len(m.Pos) != 2 {
				return assemble.GroundTruth{}, fmt.Errorf("%w: entities[%d][%d] pos must be a [start, end) pair",
					internalerr.ErrInvalidConfig, ci, mi)
			}
			mentions = append(mentions, docred.Mention{
				Name:   m.Name,
				SentID: m.SentID,
				Type:   m.Type,
				Pos:    [2]int{m.Pos[0], m.Pos[1]},
			})
		}
		truth.VertexSet = append(truth.VertexSet, mentions)
	}
	for _, l := range gt.Relations {
		truth.Labels = append(truth.Labels, docred.Label{H: l.H, T: l.T, R: l.R})
	}

	return truth, nil
}
