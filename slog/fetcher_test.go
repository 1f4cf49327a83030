package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/mock"
	grimslog "github.com/pf2fr/grimoire/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSourceFetcher_Update(t *testing.T) {
	t.Parallel()

	t.Run("logs fetched count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceFetcher{
			UpdateFn: func(ctx context.Context) (map[string]bool, error) {
				return map[string]bool{"pf2e": true, "pf2-fr": false}, nil
			},
		}

		fetcher := grimslog.NewLoggingSourceFetcher(inner, logger)
		results, err := fetcher.Update(context.Background())

		require.NoError(t, err)
		assert.True(t, results["pf2e"])
		output := buf.String()
		assert.Contains(t, output, "source update")
		assert.Contains(t, output, "sources=2")
		assert.Contains(t, output, "fetched=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on total failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceFetcher{
			UpdateFn: func(ctx context.Context) (map[string]bool, error) {
				return nil, grimoire.Errorf(grimoire.EUNAVAILABLE, "no source could be fetched")
			},
		}

		fetcher := grimslog.NewLoggingSourceFetcher(inner, logger)
		_, err := fetcher.Update(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no source could be fetched")
	})
}
