package app

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/talentflow/internal/config"
)

func testConfig(t *testing.T, seedOnStart bool) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:         t.TempDir(),
		LogLevel:        "error",
		PageSize:        5,
		SeedOnStart:     seedOnStart,
		SeedJobs:        3,
		SeedCandidates:  5,
		SeedAssessments: 1,
		SeedRandomSeed:  1,
	}
}

func TestNewApp_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	a, err := newApp(ctx, testConfig(t, true), io.Discard)
	require.NoError(t, err)
	defer a.Close()

	stats, err := a.Records.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Jobs)
	assert.Equal(t, 5, stats.Candidates)
	assert.Equal(t, 1, stats.Assessments)

	rep, err := a.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, rep.Seeded)
}

func TestNewApp_NoSeed(t *testing.T) {
	ctx := context.Background()
	a, err := newApp(ctx, testConfig(t, false), io.Discard)
	require.NoError(t, err)
	defer a.Close()

	stats, err := a.Records.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Jobs)
}

func TestContext(t *testing.T) {
	assert.Nil(t, GetAppFromContext(context.Background()))

	a := &App{}
	ctx := SetAppInContext(context.Background(), a)
	assert.Same(t, a, GetAppFromContext(ctx))
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}
