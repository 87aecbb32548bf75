package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/docset/pkg/docset/docred"
)

func testRecord(title string) Record {
	return Record{
		Title: title,
		Sents: [][]string{{"One.", "Two."}},
		VertexSet: [][]docred.Mention{
			{{Name: "One", SentID: 0, Type: docred.TypeMISC, Pos: [2]int{0, 1}}},
		},
		Labels: []docred.Label{{H: 0, T: 1, R: "P17"}},
	}
}

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := OpenSnapshot(context.Background(), filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("OpenSnapshot should succeed, got %v", err)
	}
	t.Cleanup(func() { snap.Close() })
	return snap
}

func TestSnapshotPutScanRoundTrip(t *testing.T) {
	snap := openTestSnapshot(t)
	ctx := context.Background()

	// Insert out of order; Scan must return position order.
	if err := snap.Put(ctx, 2, testRecord("third")); err != nil {
		t.Fatal(err)
	}
	if err := snap.Put(ctx, 0, testRecord("first")); err != nil {
		t.Fatal(err)
	}
	if err := snap.Put(ctx, 1, testRecord("second")); err != nil {
		t.Fatal(err)
	}

	src, err := snap.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan should succeed, got %v", err)
	}

	var titles []string
	for {
		rec, ok, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next should succeed, got %v", err)
		}
		if !ok {
			break
		}
		titles = append(titles, rec.Title)
	}

	if len(titles) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(titles))
	}
	if titles[0] != "first" || titles[1] != "second" || titles[2] != "third" {
		t.Errorf("Scan should return position order, got %v", titles)
	}
}

func TestSnapshotRoundTripPreservesAnnotations(t *testing.T) {
	snap := openTestSnapshot(t)
	ctx := context.Background()

	if err := snap.Put(ctx, 0, testRecord("doc")); err != nil {
		t.Fatal(err)
	}

	src, err := snap.Scan(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok, err := src.Next(ctx)
	if err != nil || !ok {
		t.Fatalf("Expected a record, got ok=%v err=%v", ok, err)
	}

	if len(rec.VertexSet) != 1 || rec.VertexSet[0][0].Name != "One" {
		t.Errorf("Vertex set not preserved: %+v", rec.VertexSet)
	}
	if rec.VertexSet[0][0].Pos != [2]int{0, 1} {
		t.Errorf("Mention span not preserved: %v", rec.VertexSet[0][0].Pos)
	}
	if len(rec.Labels) != 1 || rec.Labels[0].R != "P17" {
		t.Errorf("Labels not preserved: %+v", rec.Labels)
	}
}

func TestSnapshotPutReplaces(t *testing.T) {
	snap := openTestSnapshot(t)
	ctx := context.Background()

	if err := snap.Put(ctx, 0, testRecord("old")); err != nil {
		t.Fatal(err)
	}
	if err := snap.Put(ctx, 0, testRecord("new")); err != nil {
		t.Fatal(err)
	}

	n, err := snap.Len(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Replacing a position should not grow the snapshot, got %d", n)
	}

	src, err := snap.Scan(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rec, _, err := src.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "new" {
		t.Errorf("Put should replace, got %q", rec.Title)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	snap := openTestSnapshot(t)
	ctx := context.Background()

	n, err := snap.Len(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("New snapshot should be empty, got %d", n)
	}

	src, err := snap.Scan(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := src.Next(ctx); ok || err != nil {
		t.Errorf("Empty snapshot scan should be exhausted immediately, got ok=%v err=%v", ok, err)
	}
}

func TestTeeWritesConsumedCandidates(t *testing.T) {
	snap := openTestSnapshot(t)
	ctx := context.Background()

	src := Tee(NewSliceSource([]Record{testRecord("a"), testRecord("b")}), snap)

	// Consume only the first candidate.
	rec, ok, err := src.Next(ctx)
	if err != nil || !ok || rec.Title != "a" {
		t.Fatalf("Expected first record, got %+v ok=%v err=%v", rec, ok, err)
	}

	n, err := snap.Len(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Tee should snapshot only consumed candidates, got %d", n)
	}

	// Drain and check positions line up.
	if _, ok, _ := src.Next(ctx); !ok {
		t.Fatal("Expected second record")
	}
	if _, ok, _ := src.Next(ctx); ok {
		t.Fatal("Source should be exhausted")
	}

	stored, err := snap.Scan(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for {
		rec, ok, err := stored.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		titles = append(titles, rec.Title)
	}
	if len(titles) != 2 || titles[0] != "a" || titles[1] != "b" {
		t.Errorf("Snapshot should hold consumed candidates in order, got %v", titles)
	}
}
