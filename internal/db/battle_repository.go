package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlecore/internal/arena"
	"github.com/udisondev/battlecore/internal/game/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// ErrOutcomeNotFound is returned by LoadOutcome for an unknown session id.
var ErrOutcomeNotFound = errors.New("battle outcome not found")

// SessionSummary is one battle_sessions row without its turn log.
type SessionSummary struct {
	ID        uuid.UUID
	Seed      uint64
	State     battle.State
	Cycles    int
	PlayerID  string
	EnemyID   string
	Digest    [32]byte
	CreatedAt time.Time
}

// BattleRepository stores finished sessions and their turn logs.
// Safe for concurrent use (the pool is).
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// SaveOutcome inserts the session row and every log entry in one
// transaction. Saving the same session id twice fails.
func (r *BattleRepository) SaveOutcome(ctx context.Context, out battle.Outcome) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	playerIntents, enemyIntents := splitIntents(out.Intents)
	if _, err := tx.Exec(ctx,
		`INSERT INTO battle_sessions
		 (id, seed, state, cycles, draws,
		  player_id, player_hp, player_max_hp, player_chakra, player_max_chakra,
		  enemy_id, enemy_hp, enemy_max_hp, enemy_chakra, enemy_max_chakra,
		  player_intents, enemy_intents, digest)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		out.SessionID, int64(out.Seed), out.State.String(), out.Cycles, int64(out.Draws),
		out.Player.ID, out.Player.HP, out.Player.MaxHP, out.Player.Chakra, out.Player.MaxChakra,
		out.Enemy.ID, out.Enemy.HP, out.Enemy.MaxHP, out.Enemy.Chakra, out.Enemy.MaxChakra,
		playerIntents, enemyIntents, out.Digest[:],
	); err != nil {
		return fmt.Errorf("insert battle session %s: %w", out.SessionID, err)
	}

	if len(out.Log) > 0 {
		batch := &pgx.Batch{}
		for _, e := range out.Log {
			res := e.Result
			batch.Queue(
				`INSERT INTO battle_turn_log
				 (session_id, seq, cycle, phase, actor_id, target_id, skill_id, event, detail, amount,
				  hit, evaded, crit, final_damage, reflected, element_bp)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
				out.SessionID, e.Seq, e.Cycle, string(e.Phase), e.ActorID, e.TargetID, e.SkillID,
				string(e.Event), e.Detail, e.Amount,
				res.Hit, res.Evaded, res.IsCrit, res.FinalDamage, res.Reflected, int64(res.ElementMultiplier),
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range out.Log {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("insert turn log of %s: %w", out.SessionID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close turn log batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LoadOutcome reads a session and its turn log. Returns ErrOutcomeNotFound
// when no such session was saved.
func (r *BattleRepository) LoadOutcome(ctx context.Context, id uuid.UUID) (battle.Outcome, error) {
	var (
		out         battle.Outcome
		seed, draws int64
		state       string
		digest      []byte
		pIntents    []string
		eIntents    []string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, seed, state, cycles, draws,
		        player_id, player_hp, player_max_hp, player_chakra, player_max_chakra,
		        enemy_id, enemy_hp, enemy_max_hp, enemy_chakra, enemy_max_chakra,
		        player_intents, enemy_intents, digest
		 FROM battle_sessions WHERE id = $1`, id,
	).Scan(&out.SessionID, &seed, &state, &out.Cycles, &draws,
		&out.Player.ID, &out.Player.HP, &out.Player.MaxHP, &out.Player.Chakra, &out.Player.MaxChakra,
		&out.Enemy.ID, &out.Enemy.HP, &out.Enemy.MaxHP, &out.Enemy.Chakra, &out.Enemy.MaxChakra,
		&pIntents, &eIntents, &digest)
	if errors.Is(err, pgx.ErrNoRows) {
		return battle.Outcome{}, fmt.Errorf("session %s: %w", id, ErrOutcomeNotFound)
	}
	if err != nil {
		return battle.Outcome{}, fmt.Errorf("query battle session %s: %w", id, err)
	}

	out.Seed = uint64(seed)
	out.Draws = uint64(draws)
	if out.State, err = battle.ParseState(state); err != nil {
		return battle.Outcome{}, fmt.Errorf("session %s: %w", id, err)
	}
	if len(digest) != len(out.Digest) {
		return battle.Outcome{}, fmt.Errorf("session %s: digest is %d bytes", id, len(digest))
	}
	copy(out.Digest[:], digest)
	if out.Intents, err = joinIntents(pIntents, eIntents); err != nil {
		return battle.Outcome{}, fmt.Errorf("session %s: %w", id, err)
	}

	if out.Log, err = r.loadLog(ctx, id); err != nil {
		return battle.Outcome{}, err
	}
	return out, nil
}

func (r *BattleRepository) loadLog(ctx context.Context, id uuid.UUID) ([]battle.LogEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT seq, cycle, phase, actor_id, target_id, skill_id, event, detail, amount,
		        hit, evaded, crit, final_damage, reflected, element_bp
		 FROM battle_turn_log WHERE session_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query turn log of %s: %w", id, err)
	}
	defer rows.Close()

	var log []battle.LogEntry
	for rows.Next() {
		var (
			e            battle.LogEntry
			phase, event string
			elementBP    int64
		)
		if err := rows.Scan(&e.Seq, &e.Cycle, &phase, &e.ActorID, &e.TargetID, &e.SkillID, &event, &e.Detail, &e.Amount,
			&e.Result.Hit, &e.Result.Evaded, &e.Result.IsCrit, &e.Result.FinalDamage, &e.Result.Reflected, &elementBP); err != nil {
			return nil, fmt.Errorf("scan turn log of %s: %w", id, err)
		}
		e.Phase = battle.Phase(phase)
		e.Event = battle.Event(event)
		e.Result.ElementMultiplier = model.Rate(elementBP)
		log = append(log, e)
	}
	return log, rows.Err()
}

// ListBySeed returns the sessions played with seed, oldest first.
func (r *BattleRepository) ListBySeed(ctx context.Context, seed uint64) ([]SessionSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, seed, state, cycles, player_id, enemy_id, digest, created_at
		 FROM battle_sessions WHERE seed = $1 ORDER BY created_at, id`, int64(seed))
	if err != nil {
		return nil, fmt.Errorf("query sessions by seed %d: %w", seed, err)
	}
	defer rows.Close()

	var result []SessionSummary
	for rows.Next() {
		var (
			s      SessionSummary
			sd     int64
			state  string
			digest []byte
		)
		if err := rows.Scan(&s.ID, &sd, &state, &s.Cycles, &s.PlayerID, &s.EnemyID, &digest, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan battle session: %w", err)
		}
		s.Seed = uint64(sd)
		if s.State, err = battle.ParseState(state); err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		copy(s.Digest[:], digest)
		result = append(result, s)
	}
	return result, rows.Err()
}

func splitIntents(in []battle.Intent) (player, enemy []string) {
	player = make([]string, len(in))
	enemy = make([]string, len(in))
	for i, it := range in {
		player[i], enemy[i] = it.PlayerSkill, it.EnemySkill
	}
	return player, enemy
}

func joinIntents(player, enemy []string) ([]battle.Intent, error) {
	if len(player) != len(enemy) {
		return nil, fmt.Errorf("intent columns differ in length: %d player, %d enemy", len(player), len(enemy))
	}
	out := make([]battle.Intent, len(player))
	for i := range player {
		out[i] = battle.Intent{PlayerSkill: player[i], EnemySkill: enemy[i]}
	}
	return out, nil
}

var _ arena.ResultSink = (*BattleRepository)(nil)
