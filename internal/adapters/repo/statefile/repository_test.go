package statefile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/topicd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "forum_state.json"))
	require.NoError(t, err)

	rotatedAt := time.Date(2026, 3, 1, 9, 30, 15, 123456789, time.UTC)
	states := domain.RotationStates{
		-1003643461316: {
			GeneralTopicID:      42,
			LastProcessedMarker: 611,
			GeneralCreatedAt:    rotatedAt,
			LastRotatedAt:       rotatedAt,
			WelcomeMessageID:    43,
			Rotations: []domain.RotationRecord{
				{TopicID: 17, Subject: "What's the budget for Q3?", NewGeneralID: 42, RotatedAt: rotatedAt},
			},
		},
		-1001111111111: {GeneralTopicID: 1},
	}

	require.NoError(t, repo.Save(context.Background(), states))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, states, got)
}

func TestRepositoryRoundTripEmptyMapping(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "forum_state.json"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.RotationStates{}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepositoryLoadMissingFileReturnsEmptyMapping(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "nested", "forum_state.json"))
	require.NoError(t, err)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepositoryLoadCorruptFileFailsSoft(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `{"-1003643461316": {"general_topic_id": 4`},
		{name: "not an object", content: `[1, 2, 3]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "forum_state.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			repo, err := NewRepository(path)
			require.NoError(t, err)

			got, err := repo.Load(context.Background())
			require.ErrorIs(t, err, domain.ErrStateCorrupt)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestRepositoryLoadSalvagesDamagedRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forum_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "-1001": {
    "general_topic_id": 77,
    "last_processed_marker": 900,
    "welcome_message_id": 78,
    "rotations": [{"topic_id": 40, "subject": "Budget", "new_general_id": 77, "rotated_at": "2026-03-01T09:30:00Z"}]
  },
  "-1002": {"general_topic_id": "oops", "last_processed_marker": 12, "rotations": [{"topic_id": 9, "subject": "Kept", "new_general_id": 10, "rotated_at": "2026-03-01T09:30:00Z"}, "bad"]},
  "-1003": 5
}`), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	got, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrStateCorrupt)
	assert.Contains(t, err.Error(), "chat -1002")
	assert.Contains(t, err.Error(), "chat -1003")
	assert.NotContains(t, err.Error(), "chat -1001")

	rotatedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, domain.RotationState{
		GeneralTopicID:      77,
		LastProcessedMarker: 900,
		WelcomeMessageID:    78,
		Rotations:           []domain.RotationRecord{{TopicID: 40, Subject: "Budget", NewGeneralID: 77, RotatedAt: rotatedAt}},
	}, got[-1001])
	assert.Equal(t, domain.RotationState{
		GeneralTopicID:      domain.DefaultGeneralTopicID,
		LastProcessedMarker: 12,
		Rotations:           []domain.RotationRecord{{TopicID: 9, Subject: "Kept", NewGeneralID: 10, RotatedAt: rotatedAt}},
	}, got[-1002])
	assert.Equal(t, domain.NewRotationState(), got[-1003])
}

func TestRepositorySaveAfterDamagedLoadKeepsHealthyChats(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forum_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "-1001": {"general_topic_id": 77, "last_processed_marker": 900, "rotations": [{"topic_id": 40, "subject": "Budget", "new_general_id": 77, "rotated_at": "2026-03-01T09:30:00Z"}]},
  "-1002": {"general_topic_id": "oops"}
}`), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	states, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrStateCorrupt)

	states[-1002] = domain.RotationState{GeneralTopicID: 5, LastProcessedMarker: 3}
	require.NoError(t, repo.Save(context.Background(), states))

	reloaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TopicID(77), reloaded[-1001].GeneralTopicID)
	assert.Equal(t, domain.MessageID(900), reloaded[-1001].LastProcessedMarker)
	assert.True(t, reloaded[-1001].WasRotated(40))
	assert.Equal(t, domain.RotationState{GeneralTopicID: 5, LastProcessedMarker: 3}, reloaded[-1002])
}

func TestRepositoryReadsLegacyStateWithoutMarker(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forum_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "-1003643461316": {
    "general_topic_id": 12
  }
}`), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RotationState{GeneralTopicID: 12}, got[-1003643461316])
}

func TestRepositorySavePreservesUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forum_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "-1003643461316": {"general_topic_id": 12, "last_processed_marker": null, "label": "conversations"},
  "schema_note": "edited by hand"
}`), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	states, err := repo.Load(context.Background())
	require.NoError(t, err)

	state := states[-1003643461316]
	state.LastProcessedMarker = 99
	states[-1003643461316] = state
	require.NoError(t, repo.Save(context.Background(), states))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var document map[string]any
	require.NoError(t, json.Unmarshal(data, &document))
	assert.Equal(t, "edited by hand", document["schema_note"])

	record, ok := document["-1003643461316"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "conversations", record["label"])
	assert.EqualValues(t, 12, record["general_topic_id"])
	assert.EqualValues(t, 99, record["last_processed_marker"])
}

func TestRepositoryWritesNullMarkerWhenUnset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forum_state.json")
	repo, err := NewRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.RotationStates{
		-1003643461316: {GeneralTopicID: 2},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"-1003643461316": {"general_topic_id": 2, "last_processed_marker": null}}`, string(data))
}

func TestRepositorySaveIsAtomicAndPrivate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	path := filepath.Join(dir, "forum_state.json")
	repo, err := NewRepository(path)
	require.NoError(t, err)

	for marker := domain.MessageID(1); marker <= 3; marker++ {
		require.NoError(t, repo.Save(context.Background(), domain.RotationStates{
			-1003643461316: {GeneralTopicID: 2, LastProcessedMarker: marker},
		}))
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(stateFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "forum_state.json", entries[0].Name())
}

func TestRepositoryRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "forum_state.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, domain.RotationStates{}), context.Canceled)
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
