package model

import "log/slog"

// Health это реактивный запас HP боевой сущности.
// Alive while currentHP > 0. Death is one-way: once currentHP drops to zero
// or below, the death signal fires exactly once and further damage is ignored.
//
// currentHP is not floor-clamped: a killing blow may leave it negative.
type Health struct {
	maxHP     float64
	currentHP float64
	dead      bool

	changed Signal[float64]
	died    Signal[struct{}]
}

// NewHealth создаёт Health с currentHP = maxHP.
func NewHealth(maxHP float64) *Health {
	return &Health{
		maxHP:     maxHP,
		currentHP: maxHP,
	}
}

// CurrentHP возвращает текущее HP.
func (h *Health) CurrentHP() float64 {
	return h.currentHP
}

// MaxHP возвращает максимальное HP.
func (h *Health) MaxHP() float64 {
	return h.maxHP
}

// IsAlive reports whether currentHP > 0.
func (h *Health) IsAlive() bool {
	return h.currentHP > 0
}

// IsDead is the negation of IsAlive.
func (h *Health) IsDead() bool {
	return !h.IsAlive()
}

// HPPercentage возвращает процент текущего HP (0.0 - 1.0).
func (h *Health) HPPercentage() float64 {
	if h.maxHP <= 0 {
		return 0.0
	}
	return max(h.currentHP, 0) / h.maxHP
}

// ApplyDamage reduces HP by amount and reports whether this call killed.
//
// Negative amounts are rejected: damage never heals. Damage applied after
// death is a no-op, so teardown listeners run once.
//
// Change listeners always run before death listeners and observe the new
// value, including the one crossing zero.
func (h *Health) ApplyDamage(amount float64) bool {
	if amount < 0 {
		slog.Warn("negative damage rejected", "amount", amount)
		return false
	}
	if h.dead {
		return false
	}

	h.currentHP -= amount
	h.changed.Emit(h.currentHP)

	if h.currentHP > 0 {
		return false
	}

	h.dead = true
	h.died.Emit(struct{}{})
	return true
}

// OnChange subscribes to every HP mutation.
func (h *Health) OnChange(fn func(hp float64)) (cancel func()) {
	return h.changed.Subscribe(fn)
}

// OnDeath subscribes to the single death event.
// Subscribing to an already dead Health is a no-op.
func (h *Health) OnDeath(fn func()) (cancel func()) {
	if h.dead {
		return func() {}
	}
	return h.died.Subscribe(func(struct{}) { fn() })
}

// Reset drops all listeners (teardown).
func (h *Health) Reset() {
	h.changed.Reset()
	h.died.Reset()
}
