// Package battle drives a battle session: two combatants, one seeded random
// stream, and the fixed phase sequence of every turn cycle.
//
// A Session is single-threaded. Every phase completes before the next one
// starts and cancellation is only observed between phases.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/game/effect"
	"github.com/udisondev/battlecore/internal/game/rng"
	"github.com/udisondev/battlecore/internal/model"
)

var (
	ErrSessionOver  = errors.New("battle session is over")
	ErrUnknownSkill = errors.New("unknown skill")
)

// SkillBook resolves immutable skill definitions by id.
type SkillBook interface {
	Skill(id string) (*model.Skill, bool)
}

// Skills is a SkillBook backed by a map.
type Skills map[string]*model.Skill

func (s Skills) Skill(id string) (*model.Skill, bool) {
	sk, ok := s[id]
	return sk, ok
}

// EnemyScaling scales the enemy's primaries before its stats are resolved.
type EnemyScaling struct {
	Floor      int
	Difficulty int
}

// SessionConfig is everything needed to start (or replay) a session.
type SessionConfig struct {
	ID      uuid.UUID // generated when zero
	Player  model.CharacterSheet
	Enemy   model.CharacterSheet
	Scaling *EnemyScaling // nil: enemy unscaled
	Skills  SkillBook
	Seed    uint64

	// TerrainHazard is TRUE damage dealt to both sides every cycle.
	TerrainHazard int
}

// Intent is the skill each side uses in one cycle. An empty id idles.
type Intent struct {
	PlayerSkill string
	EnemySkill  string
}

// Session is one battle between a player and an enemy.
//
// Not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	seed    uint64
	stream  *rng.Stream
	src     rng.Source
	skills  SkillBook
	checked map[string]bool // skill ids validated against skills
	hazard  int

	player *Combatant
	enemy  *Combatant

	state   State
	cycle   int
	intents []Intent
	log     TurnLog

	enemyStunned  bool
	enemyConfused bool
}

type step struct {
	phase Phase
	run   func(*Session, Intent)
}

// cycleSteps is the phase sequence of one cycle. It matches CyclePhases.
var cycleSteps = []step{
	{PhaseTurnStart, (*Session).turnStart},
	{PhaseUpkeep, (*Session).upkeep},
	{PhaseMainAction, (*Session).mainAction},
	{PhaseDeathCheck, deathCheckAt(PhaseDeathCheck)},
	{PhaseTurnEnd, (*Session).turnEnd},

	{PhaseDotEnemy, (*Session).dotEnemy},
	{PhaseDotPlayer, (*Session).dotPlayer},
	{PhaseDeathCheckDot, deathCheckAt(PhaseDeathCheckDot)},
	{PhaseStunCheck, (*Session).stunCheck},
	{PhaseConfusionCheck, (*Session).confusionCheck},
	{PhaseEnemyAction, (*Session).enemyAction},
	{PhaseDeathCheckAttack, deathCheckAt(PhaseDeathCheckAttack)},
	{PhaseCooldownReduction, (*Session).cooldownReduction},
	{PhaseChakraRegen, (*Session).chakraRegen},
	{PhaseTerrainHazards, (*Session).terrainHazards},
	{PhaseFinalDeathCheck, deathCheckAt(PhaseFinalDeathCheck)},
}

// NewSession builds both combatants and seeds the session's random stream.
// Malformed sheets and malformed skills they list fail with
// *model.ConfigError; sheets listing skills the book does not know fail with
// ErrUnknownSkill.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Skills == nil {
		return nil, errors.New("battle: session config has no skill book")
	}

	player, err := NewCombatant(cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	var enemy *Combatant
	if cfg.Scaling != nil {
		enemy, err = NewEnemy(cfg.Enemy, cfg.Scaling.Floor, cfg.Scaling.Difficulty)
	} else {
		enemy, err = NewCombatant(cfg.Enemy)
	}
	if err != nil {
		return nil, fmt.Errorf("enemy: %w", err)
	}
	if player.id == enemy.id {
		return nil, &model.ConfigError{Entity: "session", Field: "enemy.id", Value: enemy.id, Reason: "must differ from the player id"}
	}

	checked := make(map[string]bool)
	for _, c := range []*Combatant{player, enemy} {
		for _, id := range c.skills {
			if err := checkSkill(cfg.Skills, id, checked); err != nil {
				return nil, fmt.Errorf("combatant %s: %w", c.id, err)
			}
		}
	}

	id := cfg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	stream := rng.New(cfg.Seed)

	s := &Session{
		id:      id,
		seed:    cfg.Seed,
		stream:  stream,
		src:     stream,
		skills:  cfg.Skills,
		checked: checked,
		hazard:  max(cfg.TerrainHazard, 0),
		player:  player,
		enemy:   enemy,
		state:   StateInProgress,
	}

	slog.Debug("battle session created",
		"session", id,
		"seed", cfg.Seed,
		"player", player.id,
		"player_hp", player.hp,
		"enemy", enemy.id,
		"enemy_hp", enemy.hp)

	return s, nil
}

func (s *Session) ID() uuid.UUID      { return s.id }
func (s *Session) Seed() uint64       { return s.seed }
func (s *Session) State() State       { return s.state }
func (s *Session) Cycle() int         { return s.cycle }
func (s *Session) Player() *Combatant { return s.player }
func (s *Session) Enemy() *Combatant  { return s.enemy }
func (s *Session) Log() []LogEntry    { return s.log.Entries() }
func (s *Session) Intents() []Intent  { return slices.Clone(s.intents) }
func (s *Session) Digest() [32]byte   { return s.log.Digest() }

// RunCycle runs one full cycle: the player's turn, then the enemy's.
//
// ctx is checked before every phase; once it is done the session becomes
// Aborted and no further phase runs. Returns ErrSessionOver when the
// session is already terminal, ErrUnknownSkill when the intent names a
// skill the acting side cannot use and *model.ConfigError when that skill is
// malformed; in all these cases nothing runs.
func (s *Session) RunCycle(ctx context.Context, in Intent) (State, error) {
	if s.state.Terminal() {
		return s.state, ErrSessionOver
	}
	if err := s.checkIntent(in); err != nil {
		return s.state, err
	}

	s.cycle++
	s.intents = append(s.intents, in)

	for _, st := range cycleSteps {
		if err := ctx.Err(); err != nil {
			s.abort(st.phase, err.Error())
			return s.state, fmt.Errorf("battle %s aborted before %s: %w", s.id, st.phase, err)
		}
		slog.Debug("phase", "session", s.id, "cycle", s.cycle, "phase", st.phase)
		st.run(s, in)
		if s.state.Terminal() {
			break
		}
	}
	return s.state, nil
}

// Abort ends the session between cycles, e.g. on disconnect or timeout.
// No-op when the session is already terminal.
func (s *Session) Abort(reason string) {
	if s.state.Terminal() {
		return
	}
	s.abort("", reason)
}

func (s *Session) abort(phase Phase, reason string) {
	s.record(phase, LogEntry{Event: EventAborted, Detail: reason})
	s.finish(StateAborted)
}

func (s *Session) finish(state State) {
	s.state = state
	slog.Info("battle finished",
		"session", s.id,
		"state", state,
		"cycles", s.cycle,
		"player_hp", s.player.hp,
		"enemy_hp", s.enemy.hp)
}

func (s *Session) checkIntent(in Intent) error {
	for _, side := range []struct {
		c  *Combatant
		id string
	}{{s.player, in.PlayerSkill}, {s.enemy, in.EnemySkill}} {
		if side.id == "" {
			continue
		}
		if !side.c.Knows(side.id) {
			return fmt.Errorf("%w %q for %s", ErrUnknownSkill, side.id, side.c.id)
		}
		if err := checkSkill(s.skills, side.id, s.checked); err != nil {
			return fmt.Errorf("%s: %w", side.c.id, err)
		}
	}
	return nil
}

// checkSkill looks id up in book and validates it once; checked remembers
// the ids that passed.
func checkSkill(book SkillBook, id string, checked map[string]bool) error {
	if checked[id] {
		return nil
	}
	sk, ok := book.Skill(id)
	if !ok || sk == nil {
		return fmt.Errorf("%w %q", ErrUnknownSkill, id)
	}
	if err := sk.Validate(); err != nil {
		return err
	}
	checked[id] = true
	return nil
}

func (s *Session) record(phase Phase, e LogEntry) {
	e.Cycle = s.cycle
	e.Phase = phase
	s.log.append(e)
}

// --- player turn ---

func (s *Session) turnStart(Intent) {
	s.player.gutsUsedThisTurn = false
	s.enemy.gutsUsedThisTurn = false
}

func (s *Session) upkeep(Intent) {
	p := s.player
	s.payUpkeep(PhaseUpkeep, p)
	if p.isFirstTurn {
		return
	}
	st := p.Stats()
	if n := p.Heal(st.HPRegen); n > 0 {
		s.record(PhaseUpkeep, LogEntry{ActorID: p.id, TargetID: p.id, Event: EventRegen, Amount: n})
	}
	if n := p.RestoreChakra(st.ChakraRegen); n > 0 {
		s.record(PhaseUpkeep, LogEntry{ActorID: p.id, TargetID: p.id, Event: EventChakra, Amount: n})
	}
}

func (s *Session) mainAction(in Intent) {
	p := s.player
	if effect.Stunned(p.effects) {
		s.record(PhaseMainAction, LogEntry{ActorID: p.id, SkillID: in.PlayerSkill, Event: EventStunned})
		return
	}
	confused := effect.Confused(p.effects, s.src)
	if confused {
		s.record(PhaseMainAction, LogEntry{ActorID: p.id, Event: EventConfused})
	}
	s.act(PhaseMainAction, p, s.enemy, in.PlayerSkill, confused)
}

func (s *Session) turnEnd(Intent) {
	s.expire(PhaseTurnEnd, s.player)
	s.player.isFirstTurn = false
}

// --- enemy turn ---

func (s *Session) dotEnemy(Intent)  { s.tickDots(PhaseDotEnemy, s.enemy) }
func (s *Session) dotPlayer(Intent) { s.tickDots(PhaseDotPlayer, s.player) }

func (s *Session) stunCheck(in Intent) {
	s.enemyConfused = false
	s.enemyStunned = effect.Stunned(s.enemy.effects)
	if s.enemyStunned {
		s.record(PhaseStunCheck, LogEntry{ActorID: s.enemy.id, SkillID: in.EnemySkill, Event: EventStunned})
	}
}

func (s *Session) confusionCheck(Intent) {
	if s.enemyStunned {
		return
	}
	s.enemyConfused = effect.Confused(s.enemy.effects, s.src)
	if s.enemyConfused {
		s.record(PhaseConfusionCheck, LogEntry{ActorID: s.enemy.id, Event: EventConfused})
	}
}

func (s *Session) enemyAction(in Intent) {
	if s.enemyStunned {
		return
	}
	s.act(PhaseEnemyAction, s.enemy, s.player, in.EnemySkill, s.enemyConfused)
}

func (s *Session) cooldownReduction(Intent) {
	s.player.reduceCooldowns()
	s.enemy.reduceCooldowns()
	s.expire(PhaseCooldownReduction, s.enemy)
}

func (s *Session) chakraRegen(Intent) {
	e := s.enemy
	s.payUpkeep(PhaseChakraRegen, e)
	if n := e.RestoreChakra(e.Stats().ChakraRegen); n > 0 {
		s.record(PhaseChakraRegen, LogEntry{ActorID: e.id, TargetID: e.id, Event: EventChakra, Amount: n})
	}
}

func (s *Session) terrainHazards(Intent) {
	if s.hazard == 0 {
		return
	}
	for _, c := range []*Combatant{s.player, s.enemy} {
		c.Damage(s.hazard)
		s.record(PhaseTerrainHazards, LogEntry{TargetID: c.id, Event: EventHazard, Amount: s.hazard})
	}
}

// --- shared steps ---

func deathCheckAt(phase Phase) func(*Session, Intent) {
	return func(s *Session, _ Intent) { s.deathCheck(phase) }
}

// deathCheck evaluates the player first, then the enemy. A combatant at 0 HP
// survives at 1 HP if it has not used guts this cycle and wins the guts roll;
// otherwise the session ends.
func (s *Session) deathCheck(phase Phase) {
	for _, c := range []*Combatant{s.player, s.enemy} {
		if c.Alive() {
			continue
		}
		if !c.gutsUsedThisTurn && rng.Roll(s.src, c.Stats().GutsChance) {
			c.hp = 1
			c.gutsUsedThisTurn = true
			s.record(phase, LogEntry{ActorID: c.id, Event: EventGuts})
			slog.Debug("guts", "session", s.id, "actor", c.id, "phase", phase)
			continue
		}
		s.record(phase, LogEntry{ActorID: c.id, Event: EventDeath})
		if c == s.player {
			s.finish(StateDefeat)
		} else {
			s.finish(StateVictory)
		}
		return
	}
}

func (s *Session) tickDots(phase Phase, owner *Combatant) {
	for _, hit := range owner.effects.TickDots(owner.Stats()) {
		owner.Damage(hit.Damage)
		s.record(phase, LogEntry{
			ActorID:  hit.Buff.SourceID,
			TargetID: owner.id,
			Event:    EventDot,
			Detail:   hit.Buff.Kind.String(),
			Amount:   hit.Damage,
		})
	}
}

func (s *Session) expire(phase Phase, owner *Combatant) {
	for _, b := range owner.effects.Tick() {
		s.record(phase, LogEntry{ActorID: b.SourceID, TargetID: owner.id, Event: EventExpired, Detail: b.Kind.String()})
	}
}

// payUpkeep charges every active toggle of c. A toggle that cannot be paid
// switches off; a paid toggle refreshes its effects.
func (s *Session) payUpkeep(phase Phase, c *Combatant) {
	for _, id := range c.activeToggles() {
		sk, _ := s.skills.Skill(id)
		if !c.SpendChakra(sk.UpkeepCost) {
			c.setToggle(id, false)
			s.record(phase, LogEntry{ActorID: c.id, SkillID: id, Event: EventToggleOff, Detail: "upkeep unpaid"})
			continue
		}
		s.record(phase, LogEntry{ActorID: c.id, SkillID: id, Event: EventUpkeep, Amount: sk.UpkeepCost})
		s.applyEffects(phase, c, s.opponent(c), sk)
	}
}

func (s *Session) opponent(c *Combatant) *Combatant {
	if c == s.player {
		return s.enemy
	}
	return s.player
}

// act executes skillID for actor. Skills on cooldown or without enough
// chakra are skipped; otherwise chakra is paid and the cooldown set before
// resolution.
func (s *Session) act(phase Phase, actor, target *Combatant, skillID string, confused bool) {
	if skillID == "" {
		s.record(phase, LogEntry{ActorID: actor.id, Event: EventIdle})
		return
	}
	sk, _ := s.skills.Skill(skillID)

	if err := combat.ValidateAction(sk, actor.chakra, actor.Cooldown(sk.ID), actor.Toggled(sk.ID)); err != nil {
		slog.Debug("skill skipped", "session", s.id, "actor", actor.id, "skill", sk.ID, "reason", err)
		s.record(phase, LogEntry{ActorID: actor.id, SkillID: sk.ID, Event: EventSkipped, Detail: err.Error()})
		return
	}

	if sk.Toggle {
		s.toggle(phase, actor, target, sk)
		return
	}

	actor.SpendChakra(sk.ChakraCost)
	actor.setCooldown(sk.ID, sk.Cooldown)

	switch {
	case confused:
		s.selfHit(phase, actor, sk)
	case sk.IsSupport():
		s.record(phase, LogEntry{ActorID: actor.id, TargetID: target.id, SkillID: sk.ID, Event: EventSupport})
		s.applyEffects(phase, actor, target, sk)
	default:
		s.strike(phase, actor, target, sk)
	}
}

func (s *Session) toggle(phase Phase, actor, target *Combatant, sk *model.Skill) {
	if actor.Toggled(sk.ID) {
		actor.setToggle(sk.ID, false)
		s.record(phase, LogEntry{ActorID: actor.id, SkillID: sk.ID, Event: EventToggleOff})
		return
	}
	actor.SpendChakra(sk.ChakraCost)
	actor.setCooldown(sk.ID, sk.Cooldown)
	actor.setToggle(sk.ID, true)
	s.record(phase, LogEntry{ActorID: actor.id, SkillID: sk.ID, Event: EventToggleOn, Amount: sk.ChakraCost})
	s.applyEffects(phase, actor, target, sk)
}

func (s *Session) strike(phase Phase, actor, target *Combatant, sk *model.Skill) {
	res := combat.Resolve(actor, target, sk, s.src)
	if res.Landed() {
		m := combat.Mitigate(res.FinalDamage, target.effects)
		target.effects.DrainShields(m.Absorbed)
		res = res.WithMitigation(m)
		target.Damage(res.FinalDamage)
		actor.Damage(res.Reflected)
	}
	s.record(phase, LogEntry{ActorID: actor.id, TargetID: target.id, SkillID: sk.ID, Event: EventAttack, Result: res})
	slog.Debug("attack",
		"session", s.id,
		"actor", actor.id,
		"skill", sk.ID,
		"hit", res.Hit,
		"evaded", res.Evaded,
		"crit", res.IsCrit,
		"damage", res.FinalDamage,
		"reflected", res.Reflected)

	if res.Landed() {
		s.applyEffects(phase, actor, target, sk)
	}
}

// selfHit resolves a confused action against the actor itself at half
// damage. The actor's own buffs mitigate it; nothing is reflected and no
// effects are applied. Support skills fizzle.
func (s *Session) selfHit(phase Phase, actor *Combatant, sk *model.Skill) {
	if sk.IsSupport() {
		s.record(phase, LogEntry{ActorID: actor.id, TargetID: actor.id, SkillID: sk.ID, Event: EventSelfHit, Detail: "fizzled"})
		return
	}
	res := combat.Resolve(actor, actor, sk, s.src).Halved()
	if res.Landed() {
		m := combat.Mitigate(res.FinalDamage, actor.effects)
		actor.effects.DrainShields(m.Absorbed)
		m.Reflected = 0
		res = res.WithMitigation(m)
		actor.Damage(res.FinalDamage)
	}
	s.record(phase, LogEntry{ActorID: actor.id, TargetID: actor.id, SkillID: sk.ID, Event: EventSelfHit, Result: res})
}

// applyEffects draws one roll per effect of sk. Hostile effects on the
// opponent are reduced by its status resistance.
func (s *Session) applyEffects(phase Phase, actor, target *Combatant, sk *model.Skill) {
	for _, spec := range sk.Effects {
		recv := target
		if spec.Receiver() == model.TargetSelf {
			recv = actor
		}
		var resistance model.Rate
		if recv != actor && !spec.Kind.Beneficial() {
			resistance = recv.Stats().StatusResistance
		}
		if effect.Resisted(spec.Chance, resistance, s.src) {
			s.record(phase, LogEntry{ActorID: actor.id, TargetID: recv.id, SkillID: sk.ID, Event: EventResisted, Detail: spec.Kind.String()})
			continue
		}
		b := recv.effects.Add(effect.FromSpec(spec, actor.id))
		s.record(phase, LogEntry{
			ActorID:  actor.id,
			TargetID: recv.id,
			SkillID:  sk.ID,
			Event:    EventEffect,
			Detail:   b.Kind.String(),
			Amount:   int(b.Value),
		})
	}
}
