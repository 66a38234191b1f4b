package feed

// Notes:
// - Save failure is exercised by pointing the homepage at a removed directory;
//   permission-based failures are skipped since tests may run as root.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-md2blog/internal/pipeline"
)

const testHomepage = `<!DOCTYPE html>
<html>
<head><title>Blog</title><link rel="stylesheet" href="assets/styles.css"></head>
<body>
<h1>Blog</h1>
<div class="content"><div class="article-preview" id="b"><h3>B</h3></div><div class="article-preview" id="a"><h3>A</h3></div></div>
</body>
</html>`

func writeHomepage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func loadHomepage(t *testing.T, content string) *Homepage {
	t.Helper()
	h, err := Load(writeHomepage(t, content), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return h
}

func card(t *testing.T, md string) *goquery.Selection {
	t.Helper()
	root, err := pipeline.NewGoldmarkRenderer().Render(context.Background(), []byte(md))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	a, err := pipeline.NewArticle(root)
	if err != nil {
		t.Fatalf("NewArticle() error = %v", err)
	}
	return pipeline.ComposePreview(a, 4)
}

// ---------------------------------------------------------------------------
// TestLoad - Parsing and template contract
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid homepage", func(t *testing.T) {
		t.Parallel()
		h := loadHomepage(t, testHomepage)
		if got := h.Slugs(); !reflect.DeepEqual(got, []string{"b", "a"}) {
			t.Errorf("Slugs() = %v, want [b a]", got)
		}
		if !h.Has("a") || h.Has("c") {
			t.Error("Has() mismatch")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), FileName), nil)
		if !errors.Is(err, ErrHomepageLoad) || !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want ErrHomepageLoad wrapping os.ErrNotExist", err)
		}
	})

	t.Run("template contract", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeHomepage(t, "<html><body><p>no heading</p></body></html>"), nil)
		if !errors.Is(err, ErrTemplateContract) {
			t.Errorf("error = %v, want ErrTemplateContract", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestHomepage_Upsert - Insert and update semantics
// ---------------------------------------------------------------------------

func TestHomepage_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("insert goes first", func(t *testing.T) {
		t.Parallel()
		h := loadHomepage(t, testHomepage)

		res, err := h.Upsert(card(t, "### C\n\nnew\n"), false)
		if err != nil || res != Inserted {
			t.Fatalf("Upsert() = %v, %v; want Inserted", res, err)
		}
		if got := h.Slugs(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
			t.Errorf("Slugs() = %v, want [c b a]", got)
		}
	})

	t.Run("update replaces in place", func(t *testing.T) {
		t.Parallel()
		h := loadHomepage(t, testHomepage)

		res, err := h.Upsert(card(t, "### A\n\nrevised\n"), true)
		if err != nil || res != Replaced {
			t.Fatalf("Upsert() = %v, %v; want Replaced", res, err)
		}
		if got := h.Slugs(); !reflect.DeepEqual(got, []string{"b", "a"}) {
			t.Errorf("Slugs() = %v, want [b a]", got)
		}
		out, _ := h.Render()
		if strings.Count(out, `id="a"`) != 1 {
			t.Errorf("expected exactly one preview with id a:\n%s", out)
		}
		if !strings.Contains(out, "<p>revised</p>") || !strings.Contains(out, `href="posts/a.html"`) {
			t.Errorf("preview not re-populated:\n%s", out)
		}
		if strings.Contains(out, `<div class="article-preview" id="a"><div`) {
			t.Error("card was nested inside the existing preview")
		}
	})

	t.Run("update without match inserts first", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		h, err := Load(writeHomepage(t, testHomepage), slog.New(slog.NewTextHandler(&logs, nil)))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		res, err := h.Upsert(card(t, "### D\n"), true)
		if err != nil || res != InsertedMissing {
			t.Fatalf("Upsert() = %v, %v; want InsertedMissing", res, err)
		}
		if got := h.Slugs(); got[0] != "d" {
			t.Errorf("Slugs() = %v, want d first", got)
		}
		if !strings.Contains(logs.String(), "slug=d") {
			t.Errorf("edge case not logged: %q", logs.String())
		}
	})

	t.Run("card without id", func(t *testing.T) {
		t.Parallel()
		h := loadHomepage(t, testHomepage)
		doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<div></div>"))
		if _, err := h.Upsert(doc.Find("div"), false); !errors.Is(err, ErrInvalidCard) {
			t.Errorf("error = %v, want ErrInvalidCard", err)
		}
	})
}

func TestUpsertResult_String(t *testing.T) {
	t.Parallel()

	for r, want := range map[UpsertResult]string{
		Inserted:        "inserted",
		Replaced:        "replaced",
		InsertedMissing: "inserted (nothing to replace)",
	} {
		if r.String() != want {
			t.Errorf("%d.String() = %q, want %q", r, r.String(), want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHomepage_Remove - Detaching previews
// ---------------------------------------------------------------------------

func TestHomepage_Remove(t *testing.T) {
	t.Parallel()

	h := loadHomepage(t, testHomepage)

	if !h.Remove("b") {
		t.Fatal("Remove(b) = false, want true")
	}
	if h.Remove("b") {
		t.Error("second Remove(b) = true, want false")
	}
	if got := h.Slugs(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Slugs() = %v, want [a]", got)
	}
}

// ---------------------------------------------------------------------------
// TestHomepage_Save - Persistence
// ---------------------------------------------------------------------------

func TestHomepage_Save(t *testing.T) {
	t.Parallel()

	path := writeHomepage(t, testHomepage)
	h, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := h.Upsert(card(t, "### C\n"), false); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Slugs(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("Slugs() after reload = %v", got)
	}
}

func TestHomepage_SaveFailure(t *testing.T) {
	t.Parallel()

	path := writeHomepage(t, testHomepage)
	h, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := os.RemoveAll(filepath.Dir(path)); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := h.Save(); !errors.Is(err, ErrHomepagePersist) {
		t.Errorf("error = %v, want ErrHomepagePersist", err)
	}
}

func TestHomepage_TemplateIsACopy(t *testing.T) {
	t.Parallel()

	h := loadHomepage(t, testHomepage)
	tmpl := h.Template()
	tmpl.Find("div").First().Empty()

	if got := h.Slugs(); len(got) != 2 {
		t.Errorf("mutating Template() changed the feed: %v", got)
	}
}
