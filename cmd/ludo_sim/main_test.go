package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/LudoEngine/internal/config"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/LudoEngine/internal/testutil"
)

func fastSimulation(layout *core.Layout, seed uint64, maxTurns int) simulation {
	return simulation{
		layout:       layout,
		firstSide:    core.SideA,
		forfeitDelay: time.Millisecond,
		timerTick:    time.Millisecond,
		seed:         seed,
		maxTurns:     maxTurns,
	}
}

func TestRunBatch_StopsAtTurnLimit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := runBatch(ctx, fastSimulation(testutil.StandardLayout(), 1234, 30), 1, 1)
	require.NoError(t, err)
	require.NoError(t, ctx.Err(), "simulation did not finish in time")
	require.Len(t, results, 1)

	stats := results[0]
	assert.False(t, stats.Won)
	assert.Equal(t, 30, stats.Turns)
	rolls := stats.Sides[core.SideA].Rolls + stats.Sides[core.SideB].Rolls
	assert.GreaterOrEqual(t, rolls, 30)
}

func TestRunBatch_SmallBoardMatchesFinish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	results, err := runBatch(ctx, fastSimulation(testutil.SmallLayout(), 99, 5000), 6, 3)
	require.NoError(t, err)
	require.NoError(t, ctx.Err(), "simulation did not finish in time")
	require.Len(t, results, 6)

	for i, stats := range results {
		require.True(t, stats.Won, "match %d", i)
		assert.Equal(t, core.TokensPerSide, stats.Sides[stats.Winner].TokensFinished, "match %d", i)
	}
}

func TestRunBatch_RejectsBadCounts(t *testing.T) {
	layout := testutil.SmallLayout()
	tests := []struct {
		name     string
		matches  int
		parallel int
		maxTurns int
		wantErr  string
	}{
		{"no matches", 0, 1, 100, "matches must be positive"},
		{"no workers", 1, 0, 100, "parallel must be positive"},
		{"negative workers", 2, -3, 100, "parallel must be positive"},
		{"no turns", 1, 1, 0, "max turns must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			results, err := runBatch(ctx, fastSimulation(layout, 1, tt.maxTurns), tt.matches, tt.parallel)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, results)
		})
	}
}

func TestPrintBatch_Empty(t *testing.T) {
	var buf bytes.Buffer
	printBatch(&buf, nil)
	assert.Equal(t, "no matches played\n", buf.String())
	assert.NotContains(t, buf.String(), "NaN")
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	printBatch(&buf, []subscribers.MatchStats{
		{Turns: 10, Won: true, Winner: core.SideA},
		{Turns: 20, Won: true, Winner: core.SideA},
		{Turns: 30},
	})

	out := buf.String()
	assert.Contains(t, out, "3 matches, 20.0 turns on average")
	assert.Contains(t, out, "Side A won 2")
	assert.Contains(t, out, "Side B won 0")
	assert.Contains(t, out, "Unfinished 1")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	stats := subscribers.MatchStats{Turns: 12, Won: true, Winner: core.SideB}
	stats.Sides[core.SideB].Captures = 3
	printMatch(&buf, stats)

	assert.Contains(t, buf.String(), "Side B wins after 12 turns")
	assert.Contains(t, buf.String(), "captures")
}

func TestSetupLogging_File(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()

	path := filepath.Join(t.TempDir(), "sim.log")
	closeLog := setupLogging(config.LoggingConfig{
		Level:     "debug",
		Format:    "json",
		File:      path,
		MaxSizeMB: 1,
	})
	log.Info().Msg("written to file")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}
