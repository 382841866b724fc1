// Package editor implements the headless rich-text editing engine: a DOM
// content container with selection resolution, dark/light color
// transformation, shadow editing, sanitized content operations, markdown
// export, and snapshot persistence.
//
// Usage:
//
//	ed, err := editor.New(cfg, logger)
//	defer ed.Close()
//	ed.SetContent("<p>hello</p>")
//	ed.RegisterMCP(mcpServer)
//	ed.RegisterHTTP(router)
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/SimonW97/roosterjs/css"
	"github.com/SimonW97/roosterjs/dom"
	"github.com/SimonW97/roosterjs/editor/internal/snapshot"
)

// ErrSnapshotNotFound is returned by RestoreSnapshot for an unknown ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Editor is the main engine orchestrator. It owns a Core, the snapshot
// store, and the sanitize/export pipelines. All public methods are safe for
// concurrent use.
type Editor struct {
	mu     sync.Mutex
	core   *Core
	store  *snapshot.Store
	policy *bluemonday.Policy
	conv   *converter.Converter
	logger *slog.Logger
	config *Config
}

// New creates an Editor. Opens the snapshot database and initialises the
// sanitizer and markdown converter.
func New(cfg *Config, logger *slog.Logger) (*Editor, error) {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	store, err := snapshot.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	core := NewCore()
	core.Lifecycle.IsDarkMode = cfg.InitialDarkMode

	ed := &Editor{
		core:   core,
		store:  store,
		policy: contentPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				mdtable.NewTablePlugin(),
			),
		),
		logger: logger,
		config: cfg,
	}
	return ed, nil
}

// contentPolicy builds the sanitizer: user-generated-content baseline plus
// the presentation attributes the color transform operates on.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style", "color", "bgcolor").Globally()
	p.AllowDataAttributes()
	p.AllowElements("style")
	return p
}

// Close shuts down the editor and closes the snapshot database.
func (e *Editor) Close() error {
	return e.store.Close()
}

// Core returns the underlying core for direct access (testing, embedding).
func (e *Editor) Core() *Core {
	return e.core
}

// SetContent replaces the whole content with markup. The markup is
// sanitized, parsed, and normalised into the current mode; the cached
// selection is invalidated.
func (e *Editor) SetContent(markup string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frag := dom.ParseFragment(e.sanitize(markup))

	// The incoming rules must be in place before the dark transform so
	// resolved-color lookups see them.
	e.core.Stylesheet = css.StylesheetOf(frag)

	e.core.TransformColor(frag, false, func() {
		for e.core.ContentDiv.FirstChild != nil {
			e.core.ContentDiv.RemoveChild(e.core.ContentDiv.FirstChild)
		}
		moveChildren(frag, e.core.ContentDiv)
	}, LightToDark)

	e.core.DOMEvent.SelectionRange = nil
	e.core.DOMEvent.TableSelectionRange = nil

	e.logger.Debug("editor: content set", "bytes", len(markup), "dark", e.core.Lifecycle.IsDarkMode)
}

// InsertContent appends markup at the end of the content. Like SetContent
// the markup is sanitized and normalised into the current mode, but the
// existing content and the cached selection are left alone.
func (e *Editor) InsertContent(markup string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frag := dom.ParseFragment(e.sanitize(markup))

	e.core.TransformColor(frag, false, func() {
		moveChildren(frag, e.core.ContentDiv)
	}, LightToDark)

	e.logger.Debug("editor: content inserted", "bytes", len(markup))
}

func (e *Editor) sanitize(markup string) string {
	if e.config.DisableSanitize {
		return markup
	}
	return e.policy.Sanitize(markup)
}

// Content serialises the current content to HTML, in whatever light or dark
// representation the editor currently holds.
func (e *Editor) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dom.RenderChildren(e.core.ContentDiv)
}

// Text extracts the visible text of the content.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dom.Text(e.core.ContentDiv)
}

// Markdown exports the content as markdown.
func (e *Editor) Markdown() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conv.ConvertString(dom.RenderChildren(e.core.ContentDiv))
}

// IsDarkMode reports the current mode.
func (e *Editor) IsDarkMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.core.Lifecycle.IsDarkMode
}

// SetDarkMode switches the content representation. Turning dark mode on
// rewrites colors under the flag; turning it off restores the originals
// while the flag is still set, then clears it. Setting the current mode
// again is a no-op.
func (e *Editor) SetDarkMode(dark bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dark == e.core.Lifecycle.IsDarkMode {
		return
	}

	if dark {
		e.core.Lifecycle.IsDarkMode = true
		e.core.TransformColor(e.core.ContentDiv, false, nil, LightToDark)
	} else {
		e.core.TransformColor(e.core.ContentDiv, false, nil, DarkToLight)
		e.core.Lifecycle.IsDarkMode = false
	}

	e.logger.Info("editor: dark mode switched", "dark", dark)
}

// Selection resolves the current selection descriptor.
func (e *Editor) Selection() *Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.core.Selection()
}

// StartShadowEdit enters shadow editing on the core.
func (e *Editor) StartShadowEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.core.StartShadowEdit()
}

// StopShadowEdit leaves shadow editing.
func (e *Editor) StopShadowEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.core.StopShadowEdit()
}

// SaveSnapshot captures the current content, selection path, and mode,
// persists them, and prunes the store to the configured maximum. Returns
// the stored snapshot.
func (e *Editor) SaveSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	e.mu.Lock()
	snap := &snapshot.Snapshot{
		HTML:       dom.RenderChildren(e.core.ContentDiv),
		IsDarkMode: e.core.Lifecycle.IsDarkMode,
	}
	if r := e.core.DOMEvent.SelectionRange; r != nil {
		if sp, ok := dom.PathFromRange(e.core.ContentDiv, r); ok {
			if data, err := json.Marshal(sp); err == nil {
				snap.SelectionJSON = string(data)
			}
		}
	}
	e.mu.Unlock()

	if err := e.store.Insert(ctx, snap); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	if _, err := e.store.Prune(ctx, e.config.MaxSnapshots); err != nil {
		return nil, fmt.Errorf("prune snapshots: %w", err)
	}

	e.logger.Info("editor: snapshot saved", "id", snap.ID, "bytes", len(snap.HTML))
	return snap, nil
}

// ListSnapshots returns stored snapshots, newest first.
func (e *Editor) ListSnapshots(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	return e.store.List(ctx, limit)
}

// RestoreSnapshot replaces the content with a stored snapshot. The stored
// HTML is already in the representation recorded by IsDarkMode, so it is
// reattached verbatim rather than re-transformed; the recorded selection
// path is resolved against the restored tree and cached.
func (e *Editor) RestoreSnapshot(ctx context.Context, id string) error {
	snap, err := e.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get snapshot: %w", err)
	}
	if snap == nil {
		return ErrSnapshotNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for e.core.ContentDiv.FirstChild != nil {
		e.core.ContentDiv.RemoveChild(e.core.ContentDiv.FirstChild)
	}
	moveChildren(dom.ParseFragment(snap.HTML), e.core.ContentDiv)

	e.core.Lifecycle.IsDarkMode = snap.IsDarkMode
	e.core.Stylesheet = css.StylesheetOf(e.core.ContentDiv)

	e.core.DOMEvent.SelectionRange = nil
	e.core.DOMEvent.TableSelectionRange = nil
	if snap.SelectionJSON != "" {
		var sp dom.SelectionPath
		if err := json.Unmarshal([]byte(snap.SelectionJSON), &sp); err == nil {
			e.core.DOMEvent.SelectionRange = sp.ToRange(e.core.ContentDiv)
		}
	}

	e.logger.Info("editor: snapshot restored", "id", snap.ID)
	return nil
}

// moveChildren reparents every child of from onto to, preserving order.
func moveChildren(from, to *html.Node) {
	for from.FirstChild != nil {
		child := from.FirstChild
		from.RemoveChild(child)
		to.AppendChild(child)
	}
}
