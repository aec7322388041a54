package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/repository"
	"jobboard/internal/store"
	"jobboard/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := memory.New(10)
	r := Runner{Seeders: Defaults(now)}

	n, err := r.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = r.Run(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, n, "second run creates nothing")

	active, err := repository.NewDocumentJobRepository(s).ListActive(ctx, now)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	seeker, err := repository.NewDocumentProfileRepository(s).GetSeeker(ctx, "demo-seeker-1")
	require.NoError(t, err)
	assert.True(t, seeker.Skills.Contains("docker"))
}

type brokenSeeder struct{}

func (brokenSeeder) Name() string { return "broken" }

func (brokenSeeder) Run(context.Context, store.DocumentStore) (int, error) {
	return 0, errors.New("boom")
}

func TestRunner_StopsOnError(t *testing.T) {
	s := memory.New(10)
	n, err := Runner{Seeders: []Seeder{RecruitersSeeder{}, brokenSeeder{}, SeekersSeeder{}}}.Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed broken")
	assert.Equal(t, 2, n)

	_, err = Runner{}.Run(context.Background(), nil)
	assert.Error(t, err)
}
