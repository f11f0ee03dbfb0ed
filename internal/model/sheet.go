package model

// CharacterSheet is what the character/equipment provider hands over at
// battle start.
type CharacterSheet struct {
	ID        string
	Name      string
	Element   Element
	Primary   Primary
	Equipment Equipment
	Skills    []string // skill ids the combatant may use
}

// Validate checks the sheet before a combatant is built from it.
func (s CharacterSheet) Validate() error {
	entity := "combatant " + s.ID
	if s.ID == "" {
		return &ConfigError{Entity: "combatant", Field: "id", Value: s.ID, Reason: "must not be empty"}
	}
	if s.Element >= elementCount {
		return &ConfigError{Entity: entity, Field: "element", Value: s.Element, Reason: "unknown element"}
	}
	if err := s.Primary.validate(); err != nil {
		return err.In(entity)
	}
	if err := s.Equipment.validate(); err != nil {
		return err.In(entity)
	}
	return nil
}
