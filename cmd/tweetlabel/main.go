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
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/tweetlabel"
	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/dataset"
	"github.com/poiesic/tweetlabel/objectstore"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tweetlabel",
		Usage: "Label tweets as political and embed them for model training",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log output format (text, json)",
				Value: "text",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "label",
				Usage:  "Classify and embed a tweets file and write the labeled dataset",
				Action: labelCommand,
				Flags:  labelFlags(),
			},
			{
				Name:   "summarize",
				Usage:  "Report line count, political ratio and vector size of a labeled dataset",
				Action: summarizeCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Labeled dataset (path, - for stdin, or s3://bucket/key)",
						Required: true,
					},
				}, objectStoreFlags()...),
			},
		},
	}
}

func labelFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file; flags override its values",
		},
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Tweets file (path, - for stdin, or s3://bucket/key; .gz and .zst are decompressed)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Labeled dataset destination (path, - for stdout, or s3://bucket/key)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Base URL for both the classifier and the embedding service",
		},
		&cli.StringFlag{
			Name:  "classifier-host",
			Usage: "Classifier service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Chat model used for classification",
			Value: ai.DefaultClassifierModel,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: ai.DefaultEmbeddingModel,
		},
		&cli.IntFlag{
			Name:  "dimensions",
			Usage: "Embedding dimensionality",
			Value: ai.DefaultDimensions,
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI services",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Aliases: []string{"k"},
			Usage:   "Maximum outstanding classifier calls",
			Value:   10,
		},
		&cli.Float64Flag{
			Name:  "rate",
			Usage: "Maximum classifier calls per second (0 disables pacing)",
		},
		&cli.IntFlag{
			Name:  "burst",
			Usage: "Classifier calls allowed in a burst when --rate is set",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for cached classifier and embedding responses",
		},
		&cli.BoolFlag{
			Name:  "normalize",
			Usage: "Scale vectors to unit length",
		},
		&cli.IntFlag{
			Name:  "report-interval",
			Usage: "Report progress every N records",
			Value: tweetlabel.DefaultProgressInterval,
		},
	}
	return append(flags, objectStoreFlags()...)
}

func objectStoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3-compatible endpoint (host:port) for s3:// locations",
			EnvVars: []string{"S3_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			Usage:   "Object store access key",
			EnvVars: []string{"S3_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			Usage:   "Object store secret key",
			EnvVars: []string{"S3_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "Object store region",
		},
		&cli.BoolFlag{
			Name:  "s3-ssl",
			Usage: "Use TLS for the object store",
		},
	}
}

// buildConfig loads --config when given and applies explicitly set flags on top.
func buildConfig(c *cli.Context) (*tweetlabel.Config, error) {
	cfg := tweetlabel.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := tweetlabel.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("host") {
		cfg.AI.ClassifierHost = c.String("host")
		cfg.AI.EmbeddingHost = c.String("host")
	}
	if c.IsSet("classifier-host") {
		cfg.AI.ClassifierHost = c.String("classifier-host")
	}
	if c.IsSet("embedding-host") {
		cfg.AI.EmbeddingHost = c.String("embedding-host")
	}
	if c.IsSet("classifier-model") {
		cfg.AI.ClassifierModel = c.String("classifier-model")
	}
	if c.IsSet("embedding-model") {
		cfg.AI.EmbeddingModel = c.String("embedding-model")
	}
	if c.IsSet("dimensions") {
		cfg.AI.Dimensions = c.Int("dimensions")
	}
	cfg.AI.Token = c.String("api-key")

	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("rate") {
		cfg.RateLimit = c.Float64("rate")
	}
	if c.IsSet("burst") {
		cfg.Burst = c.Int("burst")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("normalize") {
		cfg.Normalize = c.Bool("normalize")
	}
	if c.IsSet("report-interval") {
		cfg.ProgressInterval = c.Int("report-interval")
	}
	applyObjectStoreFlags(c, &cfg.ObjectStore)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyObjectStoreFlags(c *cli.Context, cfg *objectstore.Config) {
	if c.IsSet("s3-endpoint") {
		cfg.Endpoint = c.String("s3-endpoint")
	}
	if c.IsSet("s3-access-key") {
		cfg.AccessKey = c.String("s3-access-key")
	}
	cfg.SecretKey = c.String("s3-secret-key")
	if c.IsSet("s3-region") {
		cfg.Region = c.String("s3-region")
	}
	if c.IsSet("s3-ssl") {
		cfg.UseSSL = c.Bool("s3-ssl")
	}
}

func labelCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	labeler, err := tweetlabel.NewLabeler(cfg, tweetlabel.WithProgress(c.App.ErrWriter))
	if err != nil {
		return fmt.Errorf("failed to initialize labeler: %w", err)
	}
	defer labeler.Close()

	fmt.Fprintf(c.App.ErrWriter, "Input: %s\n", c.String("input"))
	fmt.Fprintf(c.App.ErrWriter, "Output: %s\n", c.String("output"))
	fmt.Fprintf(c.App.ErrWriter, "Classifier: %s (%s)\n", cfg.AI.ClassifierModel, cfg.AI.ClassifierHost)
	fmt.Fprintf(c.App.ErrWriter, "Embedder: %s (%s, %d dimensions)\n", cfg.AI.EmbeddingModel, cfg.AI.EmbeddingHost, cfg.AI.Dimensions)
	fmt.Fprintln(c.App.ErrWriter)

	stats, err := labeler.Run(ctx, c.String("input"), c.String("output"))
	if err != nil {
		return fmt.Errorf("labeling failed: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Labeled %d of %d records (%d failed, %d political) in %s\n",
		stats.Embedded, stats.Loaded, stats.Failed, stats.Political, stats.Elapsed.Round(time.Millisecond))
	return nil
}

func summarizeCommand(c *cli.Context) error {
	var opts []dataset.Option
	var storeCfg objectstore.Config
	applyObjectStoreFlags(c, &storeCfg)
	if storeCfg.Enabled() {
		if err := storeCfg.Validate(); err != nil {
			return fmt.Errorf("invalid object store configuration: %w", err)
		}
		store, err := objectstore.NewStore(storeCfg)
		if err != nil {
			return fmt.Errorf("failed to create object store client: %w", err)
		}
		opts = append(opts, dataset.WithObjectStore(store))
	}

	summary, err := dataset.SummarizeFile(c.Context, c.String("input"), opts...)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Lines: %d\n", summary.Lines)
	fmt.Fprintf(c.App.Writer, "Political: %d (%.1f%%)\n", summary.Political, summary.PoliticalRatio()*100)
	fmt.Fprintf(c.App.Writer, "Dimensions: %d\n", summary.Dimensions)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(c.String("log-format")) {
	case "text":
		handler = slog.NewTextHandler(c.App.ErrWriter, opts)
	case "json":
		handler = slog.NewJSONHandler(c.App.ErrWriter, opts)
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.String("log-format"))
	}
	slog.SetDefault(slog.New(handler))

	return nil
}
