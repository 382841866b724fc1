package editor

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/SimonW97/roosterjs/dbopen"
	"github.com/SimonW97/roosterjs/dom"
	"github.com/SimonW97/roosterjs/editor/internal/snapshot"
	"github.com/SimonW97/roosterjs/idgen"
	_ "modernc.org/sqlite"
)

// testEditor creates an Editor backed by an in-memory SQLite database.
func testEditor(t *testing.T) *Editor {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(snapshot.Schema))
	cfg := &Config{}
	cfg.defaults()
	return &Editor{
		core:   NewCore(),
		store:  &snapshot.Store{DB: db, NewID: idgen.Prefixed("snap_", idgen.Default)},
		policy: contentPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				mdtable.NewTablePlugin(),
			),
		),
		logger: slog.Default(),
		config: cfg,
	}
}

func TestSetContent_RoundTrip(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent("<p>hello <b>world</b></p>")

	got := ed.Content()
	if got != "<p>hello <b>world</b></p>" {
		t.Fatalf("Content = %q", got)
	}
	if txt := ed.Text(); txt != "hello world" {
		t.Fatalf("Text = %q, want hello world", txt)
	}
}

func TestSetContent_SanitizesScript(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent(`<p style="color: red">safe</p><script>alert(1)</script>`)

	got := ed.Content()
	if strings.Contains(got, "script") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "color: red") {
		t.Fatalf("style attribute stripped: %q", got)
	}
}

func TestSetContent_ReplacesAndInvalidatesSelection(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent("<p>one</p>")
	text := firstText(t, ed.core.ContentDiv)
	ed.core.DOMEvent.SelectionRange = dom.CollapsedAt(text, 1)

	ed.SetContent("<p>two</p>")

	if got := ed.Content(); got != "<p>two</p>" {
		t.Fatalf("Content = %q", got)
	}
	if ed.core.DOMEvent.SelectionRange != nil {
		t.Fatal("cached selection must be invalidated by SetContent")
	}
}

func TestInsertContent_Appends(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent("<p>one</p>")
	ed.InsertContent("<p>two</p>")

	got := ed.Content()
	if got != "<p>one</p><p>two</p>" {
		t.Fatalf("Content = %q", got)
	}
}

func TestInsertContent_NormalizedInDarkMode(t *testing.T) {
	ed := testEditor(t)
	ed.core.Lifecycle.IsDarkMode = true
	ed.core.Lifecycle.GetDarkColor = func(light string) string { return "dark(" + light + ")" }

	ed.InsertContent(`<p style="color: red">x</p>`)

	got := ed.Content()
	if !strings.Contains(got, "dark(red)") {
		t.Fatalf("inserted content not dark-normalised: %q", got)
	}
	if !strings.Contains(got, `data-ogsc="red"`) {
		t.Fatalf("original not stashed: %q", got)
	}
}

func TestSetDarkMode_RoundTrip(t *testing.T) {
	ed := testEditor(t)
	ed.core.Lifecycle.GetDarkColor = func(light string) string { return "dark(" + light + ")" }
	ed.SetContent(`<p style="color: red">x</p>`)
	light := ed.Content()

	ed.SetDarkMode(true)
	dark := ed.Content()
	if !strings.Contains(dark, "dark(red)") {
		t.Fatalf("dark content = %q", dark)
	}
	if !ed.IsDarkMode() {
		t.Fatal("mode flag not set")
	}

	ed.SetDarkMode(false)
	if got := ed.Content(); got != light {
		t.Fatalf("restore mismatch:\n got %q\nwant %q", got, light)
	}
	if ed.IsDarkMode() {
		t.Fatal("mode flag not cleared")
	}
}

func TestSetDarkMode_SameModeIsNoop(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent(`<p style="color: red">x</p>`)
	before := ed.Content()

	ed.SetDarkMode(false)
	if got := ed.Content(); got != before {
		t.Fatalf("no-op changed content: %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	ed := testEditor(t)
	ed.SetContent("<h1>Title</h1><p>body with <b>bold</b></p>")

	md, err := ed.Markdown()
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(md, "# Title") {
		t.Fatalf("markdown = %q, want heading", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Fatalf("markdown = %q, want bold", md)
	}
}

func TestSnapshot_SaveAndRestore(t *testing.T) {
	ed := testEditor(t)
	ctx := context.Background()
	ed.SetContent("<p>version one</p>")

	snap, err := ed.SaveSnapshot(ctx)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	ed.SetContent("<p>version two</p>")
	if err := ed.RestoreSnapshot(ctx, snap.ID); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if got := ed.Content(); got != "<p>version one</p>" {
		t.Fatalf("restored content = %q", got)
	}
}

func TestSnapshot_RestoreUnknownID(t *testing.T) {
	ed := testEditor(t)
	err := ed.RestoreSnapshot(context.Background(), "snap_missing")
	if err != ErrSnapshotNotFound {
		t.Fatalf("err = %v, want ErrSnapshotNotFound", err)
	}
}

func TestSnapshot_PruneToConfiguredMax(t *testing.T) {
	ed := testEditor(t)
	ed.config.MaxSnapshots = 2
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		ed.SetContent("<p>v</p>")
		if _, err := ed.SaveSnapshot(ctx); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}

	snaps, err := ed.ListSnapshots(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("kept %d snapshots, want 2", len(snaps))
	}
}

func TestSnapshot_RestoresDarkFlag(t *testing.T) {
	ed := testEditor(t)
	ed.core.Lifecycle.GetDarkColor = func(light string) string { return "dark(" + light + ")" }
	ctx := context.Background()

	ed.SetContent(`<p style="color: red">x</p>`)
	ed.SetDarkMode(true)

	snap, err := ed.SaveSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}

	ed.SetDarkMode(false)
	if err := ed.RestoreSnapshot(ctx, snap.ID); err != nil {
		t.Fatal(err)
	}
	if !ed.IsDarkMode() {
		t.Fatal("restored snapshot must carry its dark flag")
	}
	if !strings.Contains(ed.Content(), "dark(red)") {
		t.Fatalf("restored content lost its dark representation: %q", ed.Content())
	}
}
