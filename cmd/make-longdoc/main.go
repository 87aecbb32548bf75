// make-longdoc appends a synthetic long document to a fixture file.
// The default document is a Wikipedia-style article long enough to
// exceed the downstream chunking trigger (~2000 estimated tokens),
// with a hand-declared entity/relation ground truth.
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/cognicore/docset/pkg/docset/assemble"
	"github.com/cognicore/docset/pkg/docset/config"
	"github.com/cognicore/docset/pkg/docset/docred"
	"github.com/cognicore/docset/pkg/docset/fixture"
	"github.com/cognicore/docset/pkg/docset/segment"
)

func main() {
	var (
		fixturePath = flag.String("fixtures", "tests/fixtures/docred_sample.json", "Fixture file to append to")
		docID       = flag.String("id", "long_doc_marie_curie", "Document id")
		docTitle    = flag.String("title", "Marie Curie (Long Article)", "Document title")
		inputPath   = flag.String("input", "", "Raw text file (default: embedded article)")
		stripTags   = flag.Bool("strip-html", false, "Strip HTML markup from the input text")
		truthPath   = flag.String("truth", "", "Ground-truth YAML file (default: embedded table)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	text := defaultArticle
	if *inputPath != "" {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			log.Fatal().Err(err).Str("input", *inputPath).Msg("read input text")
		}
		text = string(data)
	}
	if *stripTags {
		text = stripHTML(text)
	}

	truth := defaultTruth()
	if *truthPath != "" {
		var err error
		truth, err = config.LoadGroundTruth(*truthPath)
		if err != nil {
			log.Fatal().Err(err).Str("truth", *truthPath).Msg("load ground truth")
		}
	}

	paragraphs := segment.New().Paragraphs(text)

	doc, stats, err := assemble.New().Build(*docID, *docTitle, paragraphs, truth)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble document")
	}

	log.Info().Msg("Created long test document:")
	log.Info().Str("title", doc.Title).
		Int("sentences", stats.Sentences).
		Int("characters", stats.Characters).
		Int("approx_tokens", stats.ApproxTokens).
		Int("entities", stats.Entities).
		Int("relations", stats.Relations).
		Msg("document stats")
	if stats.TriggersChunking() {
		log.Info().Msg("Will trigger chunking (>2000 tokens): YES")
	} else {
		log.Warn().Msg("Will trigger chunking (>2000 tokens): NO")
	}

	combined, err := fixture.AppendAndSave(*fixturePath, []docred.Document{doc})
	if err != nil {
		if combined == nil {
			log.Fatal().Err(err).Str("path", *fixturePath).Msg("append to fixture file")
		}
		// Write succeeded; the previous contents did not parse and were
		// replaced.
		log.Warn().Err(err).Str("path", *fixturePath).Msg("existing fixture file was unparseable, started empty")
	}

	log.Info().Str("path", *fixturePath).
		Int("total_documents", len(combined)).
		Msg("appended long document")
}

// stripHTML extracts the text content of markup, falling back to the
// raw string when it does not parse.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// defaultTruth is the hand-declared annotation table for the embedded
// article. Mention spans are token offsets within their sentence.
func defaultTruth() assemble.GroundTruth {
	return assemble.GroundTruth{
		VertexSet: [][]docred.Mention{
			{{Name: "Marie Curie", SentID: 0, Type: docred.TypePER, Pos: [2]int{0, 2}}},
			{{Name: "Warsaw", SentID: 0, Type: docred.TypeLOC, Pos: [2]int{10, 11}}},
			{{Name: "Poland", SentID: 0, Type: docred.TypeLOC, Pos: [2]int{12, 13}}},
			{{Name: "University of Paris", SentID: 2, Type: docred.TypeORG, Pos: [2]int{8, 11}}},
			{{Name: "Pierre Curie", SentID: 3, Type: docred.TypePER, Pos: [2]int{5, 7}}},
			{{Name: "France", SentID: 4, Type: docred.TypeLOC, Pos: [2]int{12, 13}}},
			{{Name: "Radium Institute", SentID: 10, Type: docred.TypeORG, Pos: [2]int{8, 10}}},
			{{Name: "Paris", SentID: 10, Type: docred.TypeLOC, Pos: [2]int{11, 12}}},
		},
		Labels: []docred.Label{
			{H: 0, T: 1, R: "P19"}, // place of birth
			{H: 0, T: 2, R: "P27"}, // country of citizenship
			{H: 0, T: 3, R: "P69"}, // educated at
			{H: 1, T: 2, R: "P17"}, // country
			{H: 4, T: 0, R: "P26"}, // spouse
			{H: 0, T: 5, R: "P20"}, // place of death
			{H: 7, T: 5, R: "P17"}, // country
		},
	}
}

const defaultArticle = `
Marie Curie was born Maria Sklodowska on November 7, 1867, in Warsaw, Poland, which was then part of the Russian Empire.
She was the youngest of five children born to Wladyslaw Sklodowski and Bronislawa Sklodowska. Her father was a mathematics
and physics teacher at a gymnasium, while her mother was a teacher, pianist, and singer who ran a prestigious boarding school
for girls in Warsaw. The family faced significant financial difficulties after her father lost his teaching position for pro-Polish
sentiments and her mother died of tuberculosis when Maria was ten years old.

During her childhood, Maria showed exceptional intelligence and a remarkable memory that impressed her teachers and family.
She completed her secondary education at a girls' gymnasium in Warsaw at the age of 15 with top honors, earning a gold medal.
However, as a woman living in occupied Poland under Russian rule, she was not permitted to attend the male-only University
of Warsaw or any other traditional institution of higher education. Determined to pursue her education, she took classes from
a clandestine institution known as the Flying University, which held classes in changing locations to avoid Russian authorities.
This underground organization admitted women students and promoted Polish culture and scientific education.

From 1885 to 1889, Maria worked as a governess

During her childhood, Maria showed exceptional intelligence and a remarkable
memory. She completed high school at the age of 15 with top honors. However,
as a woman in occupied Poland, she was not permitted to attend the male-only
University of Warsaw. She took classes from a clandestine university  that
admitted women students called the Flying University.

In 1891, at the age of 24, Maria left Poland to study physics and mathematics
at the University of Paris, also known as the Sorbonne. She enrolled in the
Faculty of Science and worked extremely hard to overcome the language barrier
and gaps in her scientific education. She lived in poverty during this time,
often surviving on bread and tea while studying in the library until it closed.

In 1893, Maria earned her degree in physics with top marks. She then earned
a second degree in mathematics in 1894. While working in a laboratory, she met
Pierre Curie, a French physicist who was teaching at the School of Physics and
Chemistry. They married in 1895 in a simple civil ceremony.

Marie Curie became fascinated by Henri Becquerel's discovery of mysterious rays
from uranium in 1896. She decided to investigate these rays as the subject of
her doctoral thesis. Using an electrometer invented by Pierre and his brother,
she discovered that the rays were properties of the element uranium itself,
not dependent on its form or compounds.

In 1898, Marie and Pierre Curie discovered two new radioactive elements. The first
was polonium, which Marie named after her homeland Poland. The second was radium,
which they finally isolated in pure form in 1902 after processing tons of pitchblende
ore. The work was extremely dangerous and physically exhausting.

In 1903, Marie Curie became the first woman to earn a doctorate in France. That
same year, she shared the Nobel Prize in Physics with Pierre Curie and Henri
Becquerel for their work on radioactivity. She was the first woman to win a Nobel
Prize and the first person to win Nobel Prizes in two different sciences.

Tragedy struck in 1906 when Pierre Curie was killed in a street accident in Paris.
Despite her grief, Marie took over his teaching position at the Sorbonne, becoming
the first woman to teach there. She continued her research
 with determination.

In 1911, Marie Curie won her second Nobel Prize, this time in Chemistry, for
her discovery and isolation of pure radium and polonium. She was the first person
ever to win two Nobel Prizes. She used the prize money to fund her research at
the Radium Institute in Paris, which she helped establish in 1914.

During World War I, Marie Curie developed mobile radiography units to provide
X-ray services to field hospitals. She personally drove these units, known as
"petites Curies," to the front lines. She also trained other women to operate
the equipment. Over one million soldiers were examined using her X-ray units.

After the war, Marie Curie became the director of the Curie Laboratory at the
Radium Institute. She traveled to the United States in 1921 to raise funds for
radium research. President Warren Harding presented her with one gram of radium,
purchased by American women through a nationwide campaign.

Throughout her career, Marie Curie published numerous scientific papers and books.
She trained many students who became prominent scientists themselves. She was
appointed Director of the Curie Laboratory in Paris and held this position until
her death. She promoted international scientific cooperation and served on many
scientific committees.

Marie Curie's long exposure to radioactive materials without proper protection
took its toll on her health. She developed cataracts and suffered from various
illnesses related to radiation exposure. On July 4, 1934, she died of aplastic
anemia at a sanatorium in Passy, France.

Marie Curie's legacy extends far beyond her scientific discoveries. She paved
the way for women in science and showed that determination and intellect have
no gender. Her daughter Irene Joliot-Curie also won the Nobel Prize in Chemistry
in 1935. In 1995, Marie Curie became the first woman to be entombed on her own
merits in the Pantheon in Paris.

Today, the Curie family holds the record for Nobel Prize wins, with five prizes
among family members. Marie Curie's notebooks are still radioactive and are kept
in lead-lined boxes. The unit of radioactivity, the curie, is named in her honor.
Her life story continues to inspire scientists, especially women in STEM fields,
around the world.
`
