package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/tweetlabel"
	"github.com/poiesic/tweetlabel/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runBuildConfig parses args against the label flags and returns the
// resulting configuration.
func runBuildConfig(t *testing.T, args ...string) (*tweetlabel.Config, error) {
	t.Helper()
	var cfg *tweetlabel.Config
	app := &cli.App{
		Name:  "tweetlabel",
		Flags: labelFlags(),
		Action: func(c *cli.Context) error {
			var err error
			cfg, err = buildConfig(c)
			return err
		},
	}
	err := app.Run(append([]string{"tweetlabel", "--input", "in.jsonl", "--output", "out.jsonl"}, args...))
	return cfg, err
}

func TestBuildConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("S3_ENDPOINT", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("S3_SECRET_KEY", "")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := runBuildConfig(t)
		require.NoError(t, err)
		assert.Equal(t, ai.DefaultHost, cfg.AI.ClassifierHost)
		assert.Equal(t, ai.DefaultClassifierModel, cfg.AI.ClassifierModel)
		assert.Equal(t, ai.DefaultDimensions, cfg.AI.Dimensions)
		assert.Equal(t, "sk-test", cfg.AI.Token)
		assert.Equal(t, 10, cfg.Concurrency)
		assert.False(t, cfg.ObjectStore.Enabled())
	})

	t.Run("flags", func(t *testing.T) {
		cfg, err := runBuildConfig(t,
			"--host", "http://localhost:11434",
			"--embedding-host", "http://embed:8080/v1",
			"--classifier-model", "qwen2.5:7b",
			"--dimensions", "64",
			"-k", "4",
			"--rate", "3",
			"--burst", "2",
			"--cache-dir", "/tmp/cache",
			"--normalize",
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:11434/v1", cfg.AI.ClassifierHost)
		assert.Equal(t, "http://embed:8080/v1", cfg.AI.EmbeddingHost)
		assert.Equal(t, "qwen2.5:7b", cfg.AI.ClassifierModel)
		assert.Equal(t, 64, cfg.AI.Dimensions)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.InDelta(t, 3.0, cfg.RateLimit, 1e-9)
		assert.Equal(t, 2, cfg.Burst)
		assert.Equal(t, "/tmp/cache", cfg.CacheDir)
		assert.True(t, cfg.Normalize)
	})

	t.Run("flags override config file only when set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("concurrency: 7\nai:\n  dimensions: 512\n"), 0644))

		cfg, err := runBuildConfig(t, "--config", path, "--dimensions", "128")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Concurrency, "unset flag keeps the file value")
		assert.Equal(t, 128, cfg.AI.Dimensions)
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		_, err := runBuildConfig(t, "-k", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "concurrency")
	})

	t.Run("incomplete object store", func(t *testing.T) {
		_, err := runBuildConfig(t, "--s3-endpoint", "minio.local:9000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key")
	})
}

func TestLabelCommandFlags(t *testing.T) {
	app := newApp()
	app.ErrWriter = &bytes.Buffer{}

	t.Run("input is required", func(t *testing.T) {
		err := app.Run([]string{"tweetlabel", "label", "--output", "out.jsonl"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("output is required", func(t *testing.T) {
		err := app.Run([]string{"tweetlabel", "label", "--input", "in.jsonl"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output")
	})

	t.Run("invalid log level", func(t *testing.T) {
		err := app.Run([]string{"tweetlabel", "--log-level", "loud", "summarize", "--input", "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("invalid log format", func(t *testing.T) {
		err := app.Run([]string{"tweetlabel", "--log-format", "xml", "summarize", "--input", "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log format")
	})
}

func TestSummarizeCommand(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "")

	path := filepath.Join(t.TempDir(), "labeled.jsonl")
	lines := `["a",true,[0.1,0.2,0.3]]` + "\n" +
		`["b",false,[0.4,0.5,0.6]]` + "\n" +
		`["c",true,[0.7,0.8,0.9]]` + "\n" +
		`["d",true,[1,1,1]]` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	require.NoError(t, app.Run([]string{"tweetlabel", "summarize", "--input", path}))
	assert.Contains(t, out.String(), "Lines: 4")
	assert.Contains(t, out.String(), "Political: 3 (75.0%)")
	assert.Contains(t, out.String(), "Dimensions: 3")
}

func TestSummarizeCommand_MissingFile(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "")

	app := newApp()
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"tweetlabel", "summarize", "--input", filepath.Join(t.TempDir(), "missing.jsonl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize failed")
}
