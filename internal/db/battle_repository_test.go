package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func sessionConfig(seed uint64) battle.SessionConfig {
	return battle.SessionConfig{
		Player: testutil.Sheet("hero", model.ElementFire, 50),
		Enemy:  testutil.Sheet("ogre", model.ElementWind, 45),
		Skills: battle.Skills(testutil.Skills()),
		Seed:   seed,
	}
}

// playOutcome играет сессию до конца: игрок чередует fireball/strike, враг бьёт.
func playOutcome(t *testing.T, seed uint64) battle.Outcome {
	t.Helper()
	s, err := battle.NewSession(sessionConfig(seed))
	require.NoError(t, err)
	for i := 0; i < 100 && !s.State().Terminal(); i++ {
		in := battle.Intent{PlayerSkill: testutil.SkillStrike, EnemySkill: testutil.SkillPoison}
		if i%3 == 0 {
			in.PlayerSkill = testutil.SkillFireball
		}
		_, err := s.RunCycle(context.Background(), in)
		require.NoError(t, err)
	}
	return s.Outcome()
}

func TestBattleRepository_SaveLoad(t *testing.T) {
	repo := NewBattleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()
	out := playOutcome(t, 77)

	require.NoError(t, repo.SaveOutcome(ctx, out))

	got, err := repo.LoadOutcome(ctx, out.SessionID)
	require.NoError(t, err)

	assert.Equal(t, out.SessionID, got.SessionID)
	assert.Equal(t, out.Seed, got.Seed)
	assert.Equal(t, out.State, got.State)
	assert.Equal(t, out.Cycles, got.Cycles)
	assert.Equal(t, out.Draws, got.Draws)
	assert.Equal(t, out.Player, got.Player)
	assert.Equal(t, out.Enemy, got.Enemy)
	assert.Equal(t, out.Intents, got.Intents)
	assert.Equal(t, out.Log, got.Log)
	assert.Equal(t, out.Digest, got.Digest)

	assert.NoError(t, battle.Verify(ctx, sessionConfig(0), got), "stored outcome replays")
}

func TestBattleRepository_SaveTwiceFails(t *testing.T) {
	repo := NewBattleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()
	out := playOutcome(t, 3)

	require.NoError(t, repo.SaveOutcome(ctx, out))
	assert.Error(t, repo.SaveOutcome(ctx, out))

	got, err := repo.LoadOutcome(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.Log, len(out.Log), "failed save left the first one intact")
}

func TestBattleRepository_LoadMissing(t *testing.T) {
	repo := NewBattleRepository(testutil.SetupTestDB(t))

	_, err := repo.LoadOutcome(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrOutcomeNotFound)
}

func TestBattleRepository_ListBySeed(t *testing.T) {
	repo := NewBattleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	a, b := playOutcome(t, 9), playOutcome(t, 9)
	other := playOutcome(t, 10)
	for _, out := range []battle.Outcome{a, b, other} {
		require.NoError(t, repo.SaveOutcome(ctx, out))
	}

	got, err := repo.ListBySeed(ctx, 9)
	require.NoError(t, err)

	require.Len(t, got, 2)
	ids := []uuid.UUID{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{a.SessionID, b.SessionID}, ids)
	assert.Equal(t, got[0].Digest, got[1].Digest, "same seed and intents give the same log")
	assert.Equal(t, "hero", got[0].PlayerID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestBattleRepository_HighSeed(t *testing.T) {
	repo := NewBattleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()
	out := playOutcome(t, 1<<63+5)

	require.NoError(t, repo.SaveOutcome(ctx, out))

	got, err := repo.ListBySeed(ctx, 1<<63+5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1<<63+5), got[0].Seed)
}
