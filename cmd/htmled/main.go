// Command htmled is the headless rich-text editing engine.
//
// Usage:
//
//	htmled -config htmled.yaml                 # run with config file
//	htmled -db htmled.db -serve :8080          # HTTP API server
//	htmled -db htmled.db -mcp                  # MCP server on stdio
//	htmled -in page.html -markdown             # one-shot markdown export
//	htmled -in page.html -dark -out dark.html  # one-shot dark transform
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/SimonW97/roosterjs/editor"
)

func main() {
	configPath := flag.String("config", "", "path to htmled.yaml config file")
	dbPath := flag.String("db", "", "path to SQLite snapshot database")
	inPath := flag.String("in", "", "read content from an HTML file")
	outPath := flag.String("out", "", "write content to a file instead of stdout")
	dark := flag.Bool("dark", false, "transform content to dark mode")
	light := flag.Bool("light", false, "restore content to light mode")
	markdown := flag.Bool("markdown", false, "export content as markdown and exit")
	serveAddr := flag.String("serve", "", "run the HTTP API server on this address")
	mcpMode := flag.Bool("mcp", false, "run as an MCP server on stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := runOptions{
		configPath: *configPath,
		dbPath:     *dbPath,
		inPath:     *inPath,
		outPath:    *outPath,
		dark:       *dark,
		light:      *light,
		markdown:   *markdown,
		serveAddr:  *serveAddr,
		mcpMode:    *mcpMode,
	}
	if err := run(ctx, logger, opts); err != nil {
		logger.Error("htmled: fatal", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath string
	dbPath     string
	inPath     string
	outPath    string
	dark       bool
	light      bool
	markdown   bool
	serveAddr  string
	mcpMode    bool
}

func run(ctx context.Context, logger *slog.Logger, opts runOptions) error {
	cfg, err := resolveConfig(opts.configPath, opts.dbPath)
	if err != nil {
		return err
	}

	ed, err := editor.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer ed.Close()

	if opts.inPath != "" {
		data, err := os.ReadFile(opts.inPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		ed.SetContent(string(data))
	}

	// One-shot: mode transforms and exports.
	if opts.dark || opts.light || opts.markdown {
		if opts.dark {
			ed.SetDarkMode(true)
		}
		if opts.light {
			ed.SetDarkMode(false)
		}

		out := ed.Content()
		if opts.markdown {
			md, err := ed.Markdown()
			if err != nil {
				return fmt.Errorf("markdown export: %w", err)
			}
			out = md
		}

		if opts.outPath != "" {
			return os.WriteFile(opts.outPath, []byte(out), 0o644)
		}
		fmt.Println(out)
		return nil
	}

	// MCP server on stdio.
	if opts.mcpMode {
		srv := mcp.NewServer(&mcp.Implementation{Name: "htmled", Version: "0.1.0"}, nil)
		ed.RegisterMCP(srv)
		logger.Info("htmled: MCP server on stdio")
		return srv.Run(ctx, &mcp.StdioTransport{})
	}

	// HTTP API server.
	if opts.serveAddr != "" {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		ed.RegisterHTTP(r)

		httpSrv := &http.Server{Addr: opts.serveAddr, Handler: r}
		go func() {
			<-ctx.Done()
			httpSrv.Shutdown(context.Background())
		}()

		logger.Info("htmled: serving", "addr", opts.serveAddr, "db", cfg.DBPath)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}

	fmt.Fprintln(os.Stderr, "usage: htmled [-config <file>] [-db <path>] [-in <file>] [-dark|-light] [-markdown] [-serve <addr>] [-mcp]")
	return nil
}

func resolveConfig(configPath, dbPath string) (*editor.Config, error) {
	if configPath != "" {
		return editor.LoadConfigFile(configPath)
	}

	cfg := &editor.Config{}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}
