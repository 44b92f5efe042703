package model

import (
	"errors"
	"fmt"
	"time"
)

// MeleeRange is the weapon range used when a template does not set one.
const MeleeRange = 1.5

// ErrInvalidWeapon is returned by Weapon.Validate.
var ErrInvalidWeapon = errors.New("invalid weapon")

// Weapon holds attack parameters of an aggressive entity.
type Weapon struct {
	Damage float64
	Period time.Duration // min time between two shots
	Range  float64       // strike distance (strict: distance < Range)
}

// Validate checks weapon invariants.
func (w Weapon) Validate() error {
	if w.Damage < 0 {
		return fmt.Errorf("%w: negative damage %.2f", ErrInvalidWeapon, w.Damage)
	}
	if w.Period <= 0 {
		return fmt.Errorf("%w: non-positive period %s", ErrInvalidWeapon, w.Period)
	}
	if w.Range <= 0 {
		return fmt.Errorf("%w: non-positive range %.2f", ErrInvalidWeapon, w.Range)
	}
	return nil
}
