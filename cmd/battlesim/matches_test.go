package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/arena"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/game/battle"
)

func shippedCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	c, err := data.LoadCatalog(filepath.Join("..", "..", "config", "catalog.yaml"))
	require.NoError(t, err)
	return c
}

func TestBuildMatches(t *testing.T) {
	c := shippedCatalog(t)
	sim := config.SimulationConfig{Sessions: 2, BaseSeed: 100, TerrainHazard: 3}

	ms, err := buildMatches(sim, c)
	require.NoError(t, err)

	players := len(c.Combatants()) - len(c.Enemies())
	require.Len(t, ms, players*len(c.Enemies())*2)
	for i, m := range ms {
		assert.Equal(t, uint64(100+i), m.Config.Seed)
		assert.Equal(t, 3, m.Config.TerrainHazard)
		assert.NotNil(t, m.Config.Scaling)
	}
}

func TestBuildMatches_Selection(t *testing.T) {
	c := shippedCatalog(t)
	sim := config.SimulationConfig{Sessions: 1, BaseSeed: 1, Players: []string{"rin"}, Enemies: []string{"shade"}}

	ms, err := buildMatches(sim, c)
	require.NoError(t, err)

	require.Len(t, ms, 1)
	assert.Equal(t, "rin", ms[0].Config.Player.ID)
	assert.Equal(t, "shade", ms[0].Config.Enemy.ID)

	_, err = buildMatches(config.SimulationConfig{Sessions: 1, Players: []string{"nobody"}}, c)
	assert.ErrorIs(t, err, data.ErrUnknownSheet)
}

func TestBuildMatches_RandomSeeds(t *testing.T) {
	c := shippedCatalog(t)

	ms, err := buildMatches(config.SimulationConfig{Sessions: 3}, c)
	require.NoError(t, err)

	seen := make(map[uint64]bool)
	for _, m := range ms {
		seen[m.Config.Seed] = true
	}
	assert.Greater(t, len(seen), 1)
}

// Прогон всего каталога: каждая сессия доигрывается и проходит Verify.
func TestShippedCatalog_PlaysAndVerifies(t *testing.T) {
	c := shippedCatalog(t)
	ms, err := buildMatches(config.SimulationConfig{Sessions: 3, BaseSeed: 7}, c)
	require.NoError(t, err)

	outs, err := (&arena.Runner{Workers: 4, MaxCycles: 150}).Run(context.Background(), ms)
	require.NoError(t, err)

	for i, out := range outs {
		require.True(t, out.State.Terminal())
		require.NoError(t, battle.Verify(context.Background(), ms[i].Config, out))
		line := summaryLine(out)
		assert.True(t, strings.Contains(line, out.State.String()), line)
	}
}
