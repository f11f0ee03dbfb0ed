package battle

// Phase is one step of the turn scheduler.
type Phase string

// Player turn.
const (
	PhaseTurnStart  Phase = "TURN_START"
	PhaseUpkeep     Phase = "UPKEEP"
	PhaseMainAction Phase = "MAIN_ACTION"
	PhaseDeathCheck Phase = "DEATH_CHECK"
	PhaseTurnEnd    Phase = "TURN_END"
)

// Enemy turn.
const (
	PhaseDotEnemy          Phase = "DOT_ENEMY"
	PhaseDotPlayer         Phase = "DOT_PLAYER"
	PhaseDeathCheckDot     Phase = "DEATH_CHECK_DOT"
	PhaseStunCheck         Phase = "STUN_CHECK"
	PhaseConfusionCheck    Phase = "CONFUSION_CHECK"
	PhaseEnemyAction       Phase = "ENEMY_ACTION"
	PhaseDeathCheckAttack  Phase = "DEATH_CHECK_ATTACK"
	PhaseCooldownReduction Phase = "COOLDOWN_REDUCTION"
	PhaseChakraRegen       Phase = "CHAKRA_REGEN"
	PhaseTerrainHazards    Phase = "TERRAIN_HAZARDS"
	PhaseFinalDeathCheck   Phase = "FINAL_DEATH_CHECK"
)

// PlayerPhases and EnemyPhases are the fixed order of one cycle.
var (
	PlayerPhases = []Phase{
		PhaseTurnStart,
		PhaseUpkeep,
		PhaseMainAction,
		PhaseDeathCheck,
		PhaseTurnEnd,
	}
	EnemyPhases = []Phase{
		PhaseDotEnemy,
		PhaseDotPlayer,
		PhaseDeathCheckDot,
		PhaseStunCheck,
		PhaseConfusionCheck,
		PhaseEnemyAction,
		PhaseDeathCheckAttack,
		PhaseCooldownReduction,
		PhaseChakraRegen,
		PhaseTerrainHazards,
		PhaseFinalDeathCheck,
	}
)

// CyclePhases returns every phase of one cycle in execution order.
func CyclePhases() []Phase {
	out := make([]Phase, 0, len(PlayerPhases)+len(EnemyPhases))
	out = append(out, PlayerPhases...)
	return append(out, EnemyPhases...)
}
