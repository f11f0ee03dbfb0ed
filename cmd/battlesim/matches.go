package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/battlecore/internal/arena"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/game/rng"
)

// buildMatches pairs every player with every enemy, sim.Sessions times.
// Seeds run up from sim.BaseSeed; a zero base seed draws a random seed per
// session.
func buildMatches(sim config.SimulationConfig, catalog *data.Catalog) ([]arena.Match, error) {
	enemies := sim.Enemies
	if len(enemies) == 0 {
		enemies = catalog.Enemies()
	}
	players := sim.Players
	if len(players) == 0 {
		for _, id := range catalog.Combatants() {
			if !slices.Contains(catalog.Enemies(), id) {
				players = append(players, id)
			}
		}
	}
	if len(players) == 0 || len(enemies) == 0 {
		return nil, errors.New("need at least one player and one enemy combatant")
	}

	var matches []arena.Match
	seed := sim.BaseSeed
	for _, pid := range players {
		player, err := catalog.Sheet(pid)
		if err != nil {
			return nil, fmt.Errorf("player: %w", err)
		}
		for _, eid := range enemies {
			enemy, scaling, err := catalog.Enemy(eid)
			if err != nil {
				return nil, fmt.Errorf("enemy: %w", err)
			}
			rotation := arena.Rotation{
				Player: skillList(player.Skills, catalog),
				Enemy:  skillList(enemy.Skills, catalog),
				Skills: catalog,
			}
			for range sim.Sessions {
				s := seed
				if sim.BaseSeed == 0 {
					if s, err = rng.NewSeed(); err != nil {
						return nil, err
					}
				} else {
					seed++
				}
				matches = append(matches, arena.Match{
					Config: battle.SessionConfig{
						Player:        player,
						Enemy:         enemy,
						Scaling:       scaling,
						Skills:        catalog,
						Seed:          s,
						TerrainHazard: sim.TerrainHazard,
					},
					Intents: rotation,
				})
			}
		}
	}
	return matches, nil
}

// skillList is the rotation of a sheet: its own skills, or the whole catalog
// for a sheet that lists none.
func skillList(sheet []string, catalog *data.Catalog) []string {
	if len(sheet) > 0 {
		return sheet
	}
	return catalog.Skills()
}
