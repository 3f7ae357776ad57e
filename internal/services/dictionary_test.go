package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"recruitops/pipeline-api/internal/models"
)

func TestResolveValue_KnownName(t *testing.T) {
	env := newTestEnv()

	value, err := env.resolver.ResolveValue(context.Background(), models.CategoryCandidateStatus, models.CandidateStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.CandidateStatusRejected, value)
}

func TestResolveValue_UnknownNameFallsBackAndWarns(t *testing.T) {
	repo := newFakeDictionaryRepo()
	repo.addCategory(models.CategoryInterviewMethod, "onsite")

	core, logs := observer.New(zapcore.WarnLevel)
	resolver := NewDictionaryResolver(repo, zap.New(core))

	value, err := resolver.ResolveValue(context.Background(), models.CategoryInterviewMethod, "carrier-pigeon")
	require.NoError(t, err)
	assert.Equal(t, "carrier-pigeon", value, "unknown names resolve to themselves")
	assert.Equal(t, 1, logs.FilterMessage("dictionary value not configured, falling back to symbolic name").Len())
}

func TestResolveDefault_LowestDisplayOrder(t *testing.T) {
	env := newTestEnv()

	value, err := env.resolver.ResolveDefault(context.Background(), models.CategoryCandidateStatus)
	require.NoError(t, err)
	assert.Equal(t, models.CandidateStatusNew, value)
}

func TestResolveDefault_EmptyCategoryFails(t *testing.T) {
	repo := newFakeDictionaryRepo()
	resolver := NewDictionaryResolver(repo, zap.NewNop())

	_, err := resolver.ResolveDefault(context.Background(), "nonexistent_category")
	require.ErrorIs(t, err, models.ErrMissingDictionaryDefault)
}

func TestResolveAll_OrderedValues(t *testing.T) {
	env := newTestEnv()

	values, err := env.resolver.ResolveAll(context.Background(), models.CategoryInterviewConclusion)
	require.NoError(t, err)
	assert.Equal(t, []string{
		models.ConclusionUndecided,
		models.ConclusionPass,
		models.ConclusionReject,
	}, values)
}

func TestResolveValue_CachePopulatedOnce(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 5; i++ {
		_, err := env.resolver.ResolveValue(context.Background(), models.CategoryInterviewStatus, models.InterviewStatusScheduled)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, env.dictionary.queryCount(models.CategoryInterviewStatus))
}

func TestResolveValue_ConcurrentMissesSingleQuery(t *testing.T) {
	repo := newFakeDictionaryRepo()
	repo.addCategory(models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	repo.listDelay = 20 * time.Millisecond

	resolver := NewDictionaryResolver(repo, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := resolver.ResolveValue(context.Background(), models.CategoryInterviewStatus, models.InterviewStatusScheduled)
			assert.NoError(t, err)
			assert.Equal(t, models.InterviewStatusScheduled, value)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.queryCount(models.CategoryInterviewStatus),
		"concurrent misses for one category must collapse into a single store query")
}

func TestInvalidate_SingleCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusNew)
	require.NoError(t, err)
	_, err = env.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	require.NoError(t, err)

	env.resolver.Invalidate(models.CategoryCandidateStatus)

	_, err = env.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusNew)
	require.NoError(t, err)
	_, err = env.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	require.NoError(t, err)

	assert.Equal(t, 2, env.dictionary.queryCount(models.CategoryCandidateStatus))
	assert.Equal(t, 1, env.dictionary.queryCount(models.CategoryInterviewStatus))
}

func TestInvalidate_AllCategories(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusNew)
	require.NoError(t, err)
	_, err = env.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	require.NoError(t, err)

	env.resolver.Invalidate()

	_, err = env.resolver.ResolveValue(ctx, models.CategoryCandidateStatus, models.CandidateStatusNew)
	require.NoError(t, err)
	_, err = env.resolver.ResolveValue(ctx, models.CategoryInterviewStatus, models.InterviewStatusScheduled)
	require.NoError(t, err)

	assert.Equal(t, 2, env.dictionary.queryCount(models.CategoryCandidateStatus))
	assert.Equal(t, 2, env.dictionary.queryCount(models.CategoryInterviewStatus))
}

func TestInvalidate_PicksUpNewEntries(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	value, err := env.resolver.ResolveValue(ctx, models.CategoryInterviewMethod, "take-home")
	require.NoError(t, err)
	assert.Equal(t, "take-home", value, "fallback before the entry exists")

	env.dictionary.addCategory(models.CategoryInterviewMethod, "take-home")
	env.resolver.Invalidate(models.CategoryInterviewMethod)

	value, err = env.resolver.ResolveValue(ctx, models.CategoryInterviewMethod, "take-home")
	require.NoError(t, err)
	assert.Equal(t, "take-home", value)
}
