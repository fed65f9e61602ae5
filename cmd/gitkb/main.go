// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/gitkb"
	"github.com/poiesic/gitkb/batch"
	"github.com/poiesic/gitkb/config"
	"github.com/poiesic/gitkb/core"
	"github.com/poiesic/gitkb/knowledge"
	"github.com/poiesic/gitkb/search"
	"github.com/poiesic/gitkb/server"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "gitkb",
		Usage: "Answer plain-language questions about Git from a curated knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Dotenv file read beneath the process environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "knowledge",
				Aliases: []string{"k"},
				Usage:   "Path to YAML knowledge file (default: built-in Git knowledge)",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "Path to BadgerDB knowledge snapshot directory",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the assistant over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on (overrides config and PORT)",
					},
					&cli.StringFlag{
						Name:  "static-dir",
						Usage: "Directory of static files served at /",
					},
					&cli.DurationFlag{
						Name:  "shutdown-timeout",
						Usage: "How long to wait for in-flight requests on shutdown",
						Value: 10 * time.Second,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print how every entry scored before answering",
					},
				},
			},
			{
				Name:   "topics",
				Usage:  "List the available topics",
				Action: topicsCommand,
			},
			{
				Name:   "seed",
				Usage:  "Write the knowledge set into a BadgerDB snapshot",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write the knowledge set as YAML",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (default: stdout)",
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Answer one question per line from a file",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File with one question per line",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent workers (default: half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N questions",
						Value: 100,
					},
				},
			},
		},
	}
}

// setup loads configuration, applies global flag overrides, and installs the logger.
func setup(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c.App.ErrWriter, cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	lookup, err := config.EnvLookup(c.String("env-file"), c.IsSet("env-file"))
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	// Knowledge flags replace the configured source as a whole.
	if c.IsSet("knowledge") || c.IsSet("snapshot") {
		cfg.Knowledge.File = c.String("knowledge")
		cfg.Knowledge.Snapshot = c.String("snapshot")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

func openAssistant(cfg *config.Config) (*gitkb.Assistant, error) {
	opts := []gitkb.Option{
		gitkb.WithTopK(cfg.Retrieval.TopK),
		gitkb.WithResponseCache(cfg.Retrieval.CacheTTL),
		gitkb.WithLogger(slog.Default()),
	}
	if cfg.Knowledge.File != "" {
		opts = append(opts, gitkb.WithKnowledgeFile(cfg.Knowledge.File))
	}
	if cfg.Knowledge.Snapshot != "" {
		opts = append(opts, gitkb.WithSnapshot(cfg.Knowledge.Snapshot))
	}

	a, err := gitkb.NewAssistant(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}
	return a, nil
}

func serveCommand(c *cli.Context) error {
	cfg := configFrom(c)
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("static-dir") {
		cfg.Server.StaticDir = c.String("static-dir")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := openAssistant(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := server.New(cfg.Server, a, server.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	slog.Info("gitkb is running",
		"addr", srv.Addr(),
		"entries", a.Knowledge().Len(),
		"agent", "/api/agent",
		"topics", "/api/topics",
		"health", "/api/health",
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Duration("shutdown-timeout"))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

func askCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a question is required")
	}

	a, err := openAssistant(configFrom(c))
	if err != nil {
		return err
	}
	defer a.Close()

	out := c.App.Writer
	if c.Bool("explain") {
		r := a.Retriever()
		r.RankWithMonitor(query, r.TopK(), &explainMonitor{w: out})
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, a.GenerateResponse(query).Response())
	return nil
}

// explainMonitor prints the ranking of one query as it happens.
type explainMonitor struct {
	w io.Writer
}

var _ search.Monitor = (*explainMonitor)(nil)

func (m *explainMonitor) Start(query string, tokens []string) {
	fmt.Fprintf(m.w, "Query: %s\n", query)
	fmt.Fprintf(m.w, "Words: %s\n\n", strings.Join(tokens, " "))
}

func (m *explainMonitor) EntryScored(entry core.KnowledgeEntry, score float64) {
	fmt.Fprintf(m.w, "  %-20s %.4f\n", entry.Topic, score)
}

func (m *explainMonitor) AfterTruncate(kept []core.ScoredEntry) {
	fmt.Fprintf(m.w, "\nKept top %d\n", len(kept))
}

func (m *explainMonitor) Finish(results []core.ScoredEntry) {
	if len(results) == 0 {
		fmt.Fprintln(m.w, "No entry shares a word with the query")
		return
	}
	for i, r := range results {
		fmt.Fprintf(m.w, "%d: '%s' (%d)[%0.3f]\n", i+1, r.Entry.Topic, r.Entry.Id, r.Score)
	}
}

func topicsCommand(c *cli.Context) error {
	a, err := openAssistant(configFrom(c))
	if err != nil {
		return err
	}
	defer a.Close()

	for i, topic := range a.AvailableTopics() {
		fmt.Fprintf(c.App.Writer, "%2d. %s\n", i+1, topic)
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	cfg := configFrom(c)
	if cfg.Knowledge.Snapshot != "" && cfg.Knowledge.Snapshot == dbPath {
		return fmt.Errorf("cannot seed snapshot %s from itself", dbPath)
	}

	a, err := openAssistant(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	set := a.Knowledge()
	digest, err := gitkb.SaveSnapshot(c.Context, dbPath, set)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Seeded %d entries into %s (digest %s)\n", set.Len(), dbPath, digest.Hex())
	return nil
}

func exportCommand(c *cli.Context) error {
	a, err := openAssistant(configFrom(c))
	if err != nil {
		return err
	}
	defer a.Close()

	path := c.String("out")
	if path == "" {
		return knowledge.Encode(c.App.Writer, a.Knowledge())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := knowledge.Encode(f, a.Knowledge()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func batchCommand(c *cli.Context) error {
	queries, err := readQueries(c.String("file"))
	if err != nil {
		return err
	}

	a, err := openAssistant(configFrom(c))
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []batch.Option{batch.WithProgress(c.App.ErrWriter, c.Int("report-interval"))}
	if c.IsSet("workers") {
		opts = append(opts, batch.WithPoolSize(c.Int("workers")))
	}
	runner, err := a.NewBatchRunner(opts...)
	if err != nil {
		return fmt.Errorf("failed to create batch runner: %w", err)
	}
	defer runner.Release()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcomes, err := runner.Run(ctx, queries)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	out := c.App.Writer
	for _, o := range outcomes {
		fmt.Fprintf(out, "Q: %s\nA: %s\n\n", o.Query, o.Result.Response())
	}

	s := batch.Summarize(outcomes)
	fmt.Fprintf(c.App.ErrWriter, "Total: %d, answered from knowledge: %d, fallbacks: %d, failures: %d\n",
		s.Total, s.Answered, s.Fallbacks, s.Failures)
	return nil
}

// readQueries returns the non-blank lines of path, trimmed.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return queries, nil
}
