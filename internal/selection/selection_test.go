package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

type stubGen struct {
	out    string
	err    error
	called bool
}

func (s *stubGen) Complete(_ context.Context, _ llm.Request) (string, error) {
	s.called = true
	return s.out, s.err
}

func entries(paths ...string) []models.FileEntry {
	files := make([]models.FileEntry, 0, len(paths))
	for _, p := range paths {
		name := p
		for i := len(p) - 1; i >= 0; i-- {
			if p[i] == '/' {
				name = p[i+1:]
				break
			}
		}
		files = append(files, models.FileEntry{Path: p, Name: name, Size: 100})
	}
	return files
}

func paths(files []models.FileEntry) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestRankByHeuristicOrder(t *testing.T) {
	files := entries(
		"notes.txt",
		"test/util_test.go",
		"README.md",
		"cmd/main.go",
		"webapp.py",
		"src/parser.go",
		"package.json",
		"config.yaml",
		"LICENSE",
	)

	got := paths(RankByHeuristic(files))
	want := []string{
		"README.md",
		"cmd/main.go",
		"webapp.py",
		"src/parser.go",
		"package.json",
		"config.yaml",
		"LICENSE",
		"notes.txt",
		"test/util_test.go",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRankByHeuristicDeterministic(t *testing.T) {
	files := entries("a.txt", "b.txt", "README.md", "src/x.go", "test/y_test.go")
	first := paths(RankByHeuristic(files))
	second := paths(RankByHeuristic(files))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rankings differ: %v vs %v", first, second)
	}
}

func TestRankByHeuristicStableTies(t *testing.T) {
	files := entries("alpha.foo", "beta.foo", "gamma.foo")
	got := paths(RankByHeuristic(files))
	want := []string{"alpha.foo", "beta.foo", "gamma.foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ties reordered: got %v", got)
	}
}

func TestRankByHeuristicCapsAtTwelve(t *testing.T) {
	var all []string
	for i := 0; i < 20; i++ {
		all = append(all, fmt.Sprintf("f%02d.txt", i))
	}
	got := RankByHeuristic(entries(all...))
	if len(got) != 12 {
		t.Fatalf("expected 12 files, got %d", len(got))
	}
	if !reflect.DeepEqual(paths(got), all[:12]) {
		t.Errorf("got %v", paths(got))
	}
}

func TestSelectSmallRepoSkipsModel(t *testing.T) {
	gen := &stubGen{err: fmt.Errorf("should not be called")}
	s := New(gen)
	files := entries("README.md", "src/index.js", "test/index.test.js")

	got := s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files)
	if gen.called {
		t.Error("model was consulted for a small repository")
	}
	if len(got) != 3 {
		t.Fatalf("expected all 3 files, got %d", len(got))
	}
}

func TestSelectKeepsModelOrderAndDropsUnknowns(t *testing.T) {
	files := entries(
		"a.go", "b.go", "c.go", "d.go", "e.go", "f.go",
		"g.go", "h.go", "i.go", "j.go", "k.go", "l.go",
	)
	gen := &stubGen{out: "```json\n[\"b.go\", \"a.go\", \"b.go\", \"missing.md\"]\n```"}
	s := New(gen)

	got := paths(s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files))
	want := []string{"b.go", "a.go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelectCapsAtFifteen(t *testing.T) {
	var all []string
	for i := 0; i < 30; i++ {
		all = append(all, fmt.Sprintf("p%02d.go", i))
	}
	files := entries(all...)
	answer, _ := json.Marshal(all[:20])
	gen := &stubGen{out: string(answer)}
	s := New(gen)

	got := s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files)
	if len(got) != 15 {
		t.Fatalf("expected 15 files, got %d", len(got))
	}
}

func TestSelectFallsBackOnGarbage(t *testing.T) {
	var all []string
	for i := 0; i < 20; i++ {
		all = append(all, fmt.Sprintf("f%02d.txt", i))
	}
	files := entries(all...)
	gen := &stubGen{out: "I cannot help with that."}
	s := New(gen)

	got := s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files)
	if !reflect.DeepEqual(paths(got), all[:12]) {
		t.Errorf("expected heuristic top 12, got %v", paths(got))
	}
}

func TestSelectFallsBackOnEmptyIntersection(t *testing.T) {
	var all []string
	for i := 0; i < 12; i++ {
		all = append(all, fmt.Sprintf("f%02d.txt", i))
	}
	files := entries(all...)
	gen := &stubGen{out: `["x.go", "y.go"]`}
	s := New(gen)

	got := s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files)
	if len(got) != 12 {
		t.Fatalf("expected heuristic result, got %d files", len(got))
	}
}

func TestSelectFallsBackOnModelError(t *testing.T) {
	var all []string
	for i := 0; i < 15; i++ {
		all = append(all, fmt.Sprintf("f%02d.txt", i))
	}
	files := entries(all...)
	gen := &stubGen{err: fmt.Errorf("model unavailable")}
	s := New(gen)

	got := s.Select(context.Background(), &models.RepoMetadata{FullName: "acme/widgets"}, files)
	if len(got) != 12 {
		t.Fatalf("expected heuristic result, got %d files", len(got))
	}
}
