package model

import "fmt"

// ConfigError reports malformed content: an unknown enum key, a stat outside
// its valid range, a bad skill definition. It is fatal and only produced while
// loading content or constructing a session, never mid-battle.
type ConfigError struct {
	Entity string // "skill fireball", "combatant hero", "primary"
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("config: %s=%v: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("config: %s: %s=%v: %s", e.Entity, e.Field, e.Value, e.Reason)
}

// In returns a copy of the error attributed to entity.
func (e *ConfigError) In(entity string) *ConfigError {
	c := *e
	if c.Entity != "" {
		c.Entity = entity + ": " + c.Entity
	} else {
		c.Entity = entity
	}
	return &c
}

func unknownKey(field, key string) *ConfigError {
	return &ConfigError{Field: field, Value: key, Reason: "unknown key"}
}
