package combat

import (
	"errors"
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// Reasons a skill cannot be executed this turn.
var (
	ErrOnCooldown      = errors.New("skill on cooldown")
	ErrNotEnoughChakra = errors.New("not enough chakra")
)

// ValidateAction checks whether skill can be executed by an actor with the
// given chakra and remaining cooldown. Returns nil if the action may proceed.
//
// Toggle skills that are already on can always be switched off.
func ValidateAction(skill *model.Skill, chakra, cooldown int, toggledOn bool) error {
	if skill.Toggle && toggledOn {
		return nil
	}
	if cooldown > 0 {
		return fmt.Errorf("%s: %w (%d cycles left)", skill.ID, ErrOnCooldown, cooldown)
	}
	if chakra < skill.ChakraCost {
		return fmt.Errorf("%s: %w (have %d, need %d)", skill.ID, ErrNotEnoughChakra, chakra, skill.ChakraCost)
	}
	return nil
}
