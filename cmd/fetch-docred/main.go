// fetch-docred samples annotated documents from the DocRED validation
// split for long-document extraction tests. Candidates are streamed
// from the Hugging Face datasets-server (or a previously written local
// snapshot), filtered by structural thresholds, and the selected
// documents are saved to a fixture file.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cognicore/docset/pkg/docset/assemble"
	"github.com/cognicore/docset/pkg/docset/config"
	"github.com/cognicore/docset/pkg/docset/corpus"
	"github.com/cognicore/docset/pkg/docset/filter"
	"github.com/cognicore/docset/pkg/docset/fixture"
)

func main() {
	var (
		fixturePath  = flag.String("fixtures", "tests/fixtures/docred_long_docs.json", "Output fixture file")
		count        = flag.Int("count", 3, "Number of documents to select")
		configPath   = flag.String("config", "", "Filter configuration YAML (optional)")
		snapshotPath = flag.String("snapshot", "", "Local sqlite snapshot of consumed candidates (optional)")
		offline      = flag.Bool("offline", false, "Read candidates from the snapshot instead of the network")
		baseURL      = flag.String("base-url", corpus.DefaultBaseURL, "datasets-server base URL")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	ctx := context.Background()

	thresholds := filter.DefaultThresholds()
	k := *count
	if *configPath != "" {
		fc, err := config.LoadFilterConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("load filter config")
		}
		thresholds = fc.Thresholds()
		if fc.Count > 0 {
			k = fc.TargetCount()
		}
	}

	var snap *corpus.Snapshot
	if *snapshotPath != "" {
		var err error
		snap, err = corpus.OpenSnapshot(ctx, *snapshotPath)
		if err != nil {
			log.Fatal().Err(err).Str("snapshot", *snapshotPath).Msg("open snapshot")
		}
		defer snap.Close()
	}

	var src corpus.Source
	switch {
	case *offline:
		if snap == nil {
			log.Fatal().Msg("-offline requires -snapshot")
		}
		stored, err := snap.Len(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("inspect snapshot")
		}
		log.Info().Int("candidates", stored).Msg("reading candidates from snapshot")
		src, err = snap.Scan(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("scan snapshot")
		}
	default:
		log.Info().Str("base_url", *baseURL).Msg("Downloading DocRED dataset rows...")
		client := corpus.NewRowsClient()
		client.BaseURL = *baseURL
		src = client
		if snap != nil {
			src = corpus.Tee(src, snap)
		}
	}

	selected, err := filter.New(thresholds).Select(ctx, src, k)
	if err != nil {
		log.Fatal().Err(err).Msg("filter corpus")
	}

	for i, sel := range selected {
		log.Info().
			Int("document", i+1).
			Str("id", sel.Document.ID).
			Str("title", sel.Document.Title).
			Int("sentences", sel.Metrics.Sentences).
			Int("characters", sel.Metrics.Characters).
			Int("entities", sel.Metrics.Clusters).
			Int("relations", sel.Metrics.Relations).
			Msg("selected")
	}
	if len(selected) < k {
		log.Warn().Int("selected", len(selected)).Int("requested", k).
			Msg("corpus exhausted before target count")
	}

	if err := fixture.Save(*fixturePath, filter.Documents(selected)); err != nil {
		log.Fatal().Err(err).Str("path", *fixturePath).Msg("save fixtures")
	}
	log.Info().Int("documents", len(selected)).Str("path", *fixturePath).Msg("saved fixtures")

	// Summary: token estimates and chunking-trigger verdicts.
	for _, sel := range selected {
		verdict := "NO"
		if sel.Metrics.ApproxTokens > assemble.ChunkTriggerTokens {
			verdict = "YES"
		}
		log.Info().
			Str("title", sel.Document.Title).
			Int("approx_tokens", sel.Metrics.ApproxTokens).
			Int("characters", sel.Metrics.Characters).
			Str("will_trigger_chunking", verdict).
			Msg("summary")
	}
}
