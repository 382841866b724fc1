package editor

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the editor tools on an MCP server.
func (e *Editor) RegisterMCP(srv *mcp.Server) {
	e.registerGetContentTool(srv)
	e.registerSetContentTool(srv)
	e.registerInsertContentTool(srv)
	e.registerSetDarkModeTool(srv)
	e.registerGetSelectionTool(srv)
	e.registerExportMarkdownTool(srv)
	e.registerSaveSnapshotTool(srv)
	e.registerListSnapshotsTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// registerTool wires a decode/endpoint pair onto the server. The endpoint
// result is serialised to JSON in a single text content block; endpoint
// errors come back as tool errors, not protocol errors.
func registerTool(srv *mcp.Server, tool *mcp.Tool,
	endpoint func(ctx context.Context, req any) (any, error),
	decode func(req *mcp.CallToolRequest) (any, error),
) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decoded, err := decode(req)
		if err != nil {
			return toolError(err), nil
		}
		out, err := endpoint(ctx, decoded)
		if err != nil {
			return toolError(err), nil
		}
		data, err := json.Marshal(out)
		if err != nil {
			return toolError(err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func decodeInto[T any](req *mcp.CallToolRequest) (any, error) {
	r := new(T)
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// --- get_content ---

func (e *Editor) registerGetContentTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_get_content",
		Description: "Get the current editor content as HTML, in its current light or dark representation.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		return contentPayload{HTML: e.Content()}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[struct{}])
}

// --- set_content ---

type setContentRequest struct {
	HTML string `json:"html"`
}

func (e *Editor) registerSetContentTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_set_content",
		Description: "Replace the editor content with new HTML. The markup is sanitized and normalised into the current color mode.",
		InputSchema: inputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "HTML markup to set"},
		}, []string{"html"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*setContentRequest)
		e.SetContent(r.HTML)
		return contentPayload{HTML: e.Content()}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[setContentRequest])
}

// --- insert_content ---

func (e *Editor) registerInsertContentTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_insert_content",
		Description: "Append HTML at the end of the editor content, leaving existing content untouched.",
		InputSchema: inputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "HTML markup to insert"},
		}, []string{"html"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*setContentRequest)
		e.InsertContent(r.HTML)
		return contentPayload{HTML: e.Content()}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[setContentRequest])
}

// --- set_dark_mode ---

type setDarkModeRequest struct {
	Dark bool `json:"dark"`
}

func (e *Editor) registerSetDarkModeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_set_dark_mode",
		Description: "Switch the content between light and dark representation. Dark mode rewrites colors and stashes the originals; light mode restores them.",
		InputSchema: inputSchema(map[string]any{
			"dark": map[string]any{"type": "boolean", "description": "true for dark mode, false for light"},
		}, []string{"dark"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*setDarkModeRequest)
		e.SetDarkMode(r.Dark)
		return darkModePayload{Dark: e.IsDarkMode()}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[setDarkModeRequest])
}

// --- get_selection ---

func (e *Editor) registerGetSelectionTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_get_selection",
		Description: "Resolve the current selection descriptor: type, range count, collapsed state, table association.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		sel := e.Selection()
		view := selectionView{
			Type:            "normal",
			RangeCount:      len(sel.Ranges),
			AreAllCollapsed: sel.AreAllCollapsed,
			HasTable:        sel.Table != nil,
			Coordinates:     sel.Coordinates,
		}
		if sel.Type == SelectionTable {
			view.Type = "table"
		}
		return view, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[struct{}])
}

// --- export_markdown ---

func (e *Editor) registerExportMarkdownTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_export_markdown",
		Description: "Export the editor content as markdown.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		md, err := e.Markdown()
		if err != nil {
			return nil, err
		}
		return map[string]string{"markdown": md}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[struct{}])
}

// --- save_snapshot ---

func (e *Editor) registerSaveSnapshotTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_save_snapshot",
		Description: "Persist the current content, selection path, and color mode as a snapshot.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		return e.SaveSnapshot(ctx)
	}

	registerTool(srv, tool, endpoint, decodeInto[struct{}])
}

// --- list_snapshots ---

type listSnapshotsRequest struct {
	Limit int `json:"limit,omitempty"`
}

func (e *Editor) registerListSnapshotsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "editor_list_snapshots",
		Description: "List stored snapshots, newest first.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Max results (default 20)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*listSnapshotsRequest)
		snaps, err := e.ListSnapshots(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"snapshots": snaps, "count": len(snaps)}, nil
	}

	registerTool(srv, tool, endpoint, decodeInto[listSnapshotsRequest])
}
