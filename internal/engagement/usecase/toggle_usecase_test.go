package usecase

import (
	"context"
	"sync"
	"testing"

	"vidtube-backend/internal/engagement/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edgeKey struct {
	subjectID string
	kind      domain.TargetKind
	targetID  string
}

// fakeEdgeRepository enforces the composite uniqueness constraint the way
// the database does, including the CONFLICT signal on duplicate creates.
type fakeEdgeRepository struct {
	mu    sync.Mutex
	edges map[edgeKey]*domain.Edge

	// hideFromFind makes Find report no edge while Create still sees the
	// constraint, simulating a lost create race.
	hideFromFind bool
}

func newFakeEdgeRepository() *fakeEdgeRepository {
	return &fakeEdgeRepository{edges: make(map[edgeKey]*domain.Edge)}
}

func (f *fakeEdgeRepository) Find(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (*domain.Edge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideFromFind {
		f.hideFromFind = false
		return nil, nil
	}
	edge, ok := f.edges[edgeKey{subjectID, kind, targetID}]
	if !ok {
		return nil, nil
	}
	clone := *edge
	return &clone, nil
}

func (f *fakeEdgeRepository) Create(ctx context.Context, edge *domain.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey{edge.SubjectID, edge.TargetKind, edge.TargetID}
	if _, exists := f.edges[key]; exists {
		return apperr.Conflict("edge already exists")
	}
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}
	clone := *edge
	f.edges[key] = &clone
	return nil
}

func (f *fakeEdgeRepository) Delete(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey{subjectID, kind, targetID}
	if _, exists := f.edges[key]; !exists {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeEdgeRepository) CountByTarget(ctx context.Context, kind domain.TargetKind, targetID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.edges {
		if k.kind == kind && k.targetID == targetID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEdgeRepository) CountBySubject(ctx context.Context, subjectID string, kind domain.TargetKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.edges {
		if k.kind == kind && k.subjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEdgeRepository) ListSubjects(ctx context.Context, kind domain.TargetKind, targetID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.edges {
		if k.kind == kind && k.targetID == targetID {
			out = append(out, k.subjectID)
		}
	}
	return out, nil
}

func (f *fakeEdgeRepository) ListTargets(ctx context.Context, subjectID string, kind domain.TargetKind) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.edges {
		if k.kind == kind && k.subjectID == subjectID {
			out = append(out, k.targetID)
		}
	}
	return out, nil
}

func (f *fakeEdgeRepository) CountByTargets(ctx context.Context, kind domain.TargetKind, targetIDs []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		wanted[id] = true
	}
	var n int64
	for k := range f.edges {
		if k.kind == kind && wanted[k.targetID] {
			n++
		}
	}
	return n, nil
}

func (f *fakeEdgeRepository) DeleteByTarget(ctx context.Context, kind domain.TargetKind, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.edges {
		if k.kind == kind && k.targetID == targetID {
			delete(f.edges, k)
		}
	}
	return nil
}

func TestToggleAlternates(t *testing.T) {
	repo := newFakeEdgeRepository()
	uc := NewToggleUsecase(repo)
	ctx := context.Background()

	res, err := uc.Toggle(ctx, "user-1", domain.KindVideo, "video-1")
	require.NoError(t, err)
	assert.Equal(t, StateOn, res.State)
	require.NotNil(t, res.Edge)
	assert.Equal(t, "user-1", res.Edge.SubjectID)

	res, err = uc.Toggle(ctx, "user-1", domain.KindVideo, "video-1")
	require.NoError(t, err)
	assert.Equal(t, StateOff, res.State)

	res, err = uc.Toggle(ctx, "user-1", domain.KindVideo, "video-1")
	require.NoError(t, err)
	assert.Equal(t, StateOn, res.State)

	count, err := uc.Count(ctx, domain.KindVideo, "video-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "repeated toggling never yields more than one edge")
}

func TestToggleValidation(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	_, err := uc.Toggle(ctx, "user-1", domain.KindVideo, "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = uc.Toggle(ctx, "user-1", domain.TargetKind("playlist"), "target-1")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	// Rejected toggles never write.
	count, err := uc.Count(ctx, domain.KindVideo, "target-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleLostCreateRace(t *testing.T) {
	repo := newFakeEdgeRepository()
	uc := NewToggleUsecase(repo)
	ctx := context.Background()

	// Edge already exists, but Find misses it once: the create conflicts
	// and the toggle must settle on the current state instead of erroring.
	_, err := uc.Toggle(ctx, "user-1", domain.KindChannel, "channel-1")
	require.NoError(t, err)
	repo.hideFromFind = true

	res, err := uc.Toggle(ctx, "user-1", domain.KindChannel, "channel-1")
	require.NoError(t, err)
	assert.Equal(t, StateOn, res.State)
	require.NotNil(t, res.Edge)

	count, err := uc.Count(ctx, domain.KindChannel, "channel-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggleKindsAreIndependent(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	_, err := uc.Toggle(ctx, "user-1", domain.KindVideo, "id-1")
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, "user-1", domain.KindComment, "id-1")
	require.NoError(t, err)

	videoCount, err := uc.Count(ctx, domain.KindVideo, "id-1")
	require.NoError(t, err)
	commentCount, err := uc.Count(ctx, domain.KindComment, "id-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), videoCount)
	assert.Equal(t, int64(1), commentCount)
}

func TestSubscriptionFacts(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	for _, user := range []string{"user-1", "user-2", "user-3"} {
		_, err := uc.Toggle(ctx, user, domain.KindChannel, "channel-1")
		require.NoError(t, err)
	}
	_, err := uc.Toggle(ctx, "user-1", domain.KindChannel, "channel-2")
	require.NoError(t, err)

	subs, err := uc.SubscriberCount(ctx, "channel-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), subs)

	channels, err := uc.SubscribedChannelCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), channels)

	ok, err := uc.IsSubscribed(ctx, "user-2", "channel-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsSubscribed(ctx, "user-2", "channel-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountForTargets(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	for _, user := range []string{"a", "b"} {
		_, err := uc.Toggle(ctx, user, domain.KindVideo, "video-1")
		require.NoError(t, err)
	}
	_, err := uc.Toggle(ctx, "a", domain.KindVideo, "video-2")
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, "a", domain.KindVideo, "video-3")
	require.NoError(t, err)

	total, err := uc.CountForTargets(ctx, domain.KindVideo, []string{"video-1", "video-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestClearTarget(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	for _, user := range []string{"a", "b", "c"} {
		_, err := uc.Toggle(ctx, user, domain.KindTweet, "tweet-1")
		require.NoError(t, err)
	}

	require.NoError(t, uc.ClearTarget(ctx, domain.KindTweet, "tweet-1"))

	count, err := uc.Count(ctx, domain.KindTweet, "tweet-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestConcurrentToggles(t *testing.T) {
	uc := NewToggleUsecase(newFakeEdgeRepository())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := uc.Toggle(ctx, "user-1", domain.KindVideo, "video-1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Whatever the interleaving, the edge count stays 0 or 1.
	count, err := uc.Count(ctx, domain.KindVideo, "video-1")
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))
}
