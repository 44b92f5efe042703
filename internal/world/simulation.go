package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/building"
	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
	"github.com/udisondev/skirmish/internal/proximity"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/unit"
)

var (
	// ErrUnknownEntity is returned for an object ID the simulation doesn't own.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrNotBuilding is returned when ordering an activity from a unit.
	ErrNotBuilding = errors.New("entity is not a building")
	// ErrInboxFull is returned by Submit when commands arrive faster than ticks.
	ErrInboxFull = errors.New("simulation inbox full")
)

const (
	// DefaultInboxSize - ёмкость очереди команд.
	DefaultInboxSize = 256
	// PickRadius is how far from the pointer an entity can be picked.
	PickRadius = 1.0
	// spawnSpacing separates entities spawned in a row or by production.
	spawnSpacing = 2.0
)

// Simulation owns every entity of one skirmish and advances them in a fixed
// order each tick:
//
//  1. commands submitted from other goroutines
//  2. movement (destination arrival, agent step)
//  3. proximity (exits before enters)
//  4. controllers (player attack, auto attack)
//  5. weapons; deaths retire entities synchronously
//  6. building activities
//  7. retired entities are removed
//
// Everything except Submit must be called from the simulation goroutine.
type Simulation struct {
	cfg    config.Simulation
	bounds movement.Bounds

	ids       *ObjectIDGenerator
	field     *proximity.Field
	manager   *ai.TickManager
	match     *Match
	selection *selection.Set

	entities map[uint32]Entity
	order    []uint32
	retiring []Entity

	recorder  Recorder
	views     ViewFactory
	effects   selection.Effects
	inboxSize int
	inbox     chan func(*Simulation)

	now       time.Duration
	tick      uint64
	contested bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRecorder sets where hit events go.
func WithRecorder(r Recorder) Option {
	return func(s *Simulation) { s.recorder = r }
}

// WithViews sets the view factory (default: unit.LogView).
func WithViews(f ViewFactory) Option {
	return func(s *Simulation) { s.views = f }
}

// WithEffects sets the selection feedback sink.
func WithEffects(e selection.Effects) Option {
	return func(s *Simulation) { s.effects = e }
}

// WithInboxSize sets command buffer capacity.
func WithInboxSize(n int) Option {
	return func(s *Simulation) { s.inboxSize = n }
}

// NewSimulation creates an empty simulation. Call Populate to place the
// configured spawns.
func NewSimulation(cfg config.Simulation, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	s := &Simulation{
		cfg: cfg,
		bounds: movement.Bounds{
			MinX: cfg.Bounds.MinX, MinY: cfg.Bounds.MinY,
			MaxX: cfg.Bounds.MaxX, MaxY: cfg.Bounds.MaxY,
		},
		ids:       NewObjectIDGenerator(),
		field:     proximity.NewField(cfg.CellSize),
		manager:   ai.NewTickManager(),
		match:     NewMatch(model.TeamID(cfg.LocalTeam), cfg.StartingFunds),
		entities:  make(map[uint32]Entity),
		views:     func(name string) unit.View { return unit.LogView{Name: name} },
		inboxSize: DefaultInboxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.inboxSize <= 0 {
		s.inboxSize = DefaultInboxSize
	}
	s.inbox = make(chan func(*Simulation), s.inboxSize)

	selOpts := []selection.Option{selection.WithPicker(s)}
	if s.effects != nil {
		selOpts = append(selOpts, selection.WithEffects(s.effects))
	}
	s.selection = selection.NewSet(s.match, s.field, selOpts...)

	return s, nil
}

// Populate spawns every configured spawn entry.
func (s *Simulation) Populate() error {
	for i, sp := range s.cfg.Spawns {
		count := max(sp.Count, 1)
		for n := range count {
			pos := model.NewLocation(sp.X, sp.Y+float64(n)*spawnSpacing, 0)
			var err error
			if sp.Building {
				_, err = s.SpawnBuilding(sp.Template, model.TeamID(sp.Team), pos)
			} else {
				_, err = s.Spawn(sp.Template, model.TeamID(sp.Team), pos)
			}
			if err != nil {
				return fmt.Errorf("spawn #%d: %w", i, err)
			}
		}
	}
	slog.Info("simulation populated", "entities", len(s.entities))
	return nil
}

// Spawn creates a unit from template at pos.
func (s *Simulation) Spawn(template string, team model.TeamID, pos model.Location) (*unit.Unit, error) {
	t, ok := s.cfg.Units[template]
	if !ok {
		return nil, fmt.Errorf("%w: unit %q", config.ErrUnknownTemplate, template)
	}

	id := s.ids.NextUnitID()
	obj := model.NewWorldObject(id, fmt.Sprintf("%s#%d", template, id&0x0FFFFFFF), pos, team)

	var opts []unit.UnitOption
	if t.Speed > 0 {
		opts = append(opts, unit.WithAgent(movement.NewAgent(obj, t.Speed, s.bounds)))
	}
	if t.Weapon != nil {
		w := weaponOf(*t.Weapon)
		sensing := t.Sensing
		if sensing <= 0 {
			sensing = w.Range
			if t.AutoAttack != nil {
				sensing = max(sensing, t.AutoAttack.AttackRange)
			}
		}
		opts = append(opts, unit.WithWeapon(w, sensing))
		if t.AutoAttack != nil {
			opts = append(opts, unit.WithAutoAttack(autoAttackOf(*t.AutoAttack)))
		}
		if t.PlayerAttack {
			opts = append(opts, unit.WithPlayerAttack())
		}
	}

	u, err := unit.NewUnit(obj, t.MaxHP, s.views(obj.Name()), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.add(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SpawnBuilding creates a building from template at pos.
func (s *Simulation) SpawnBuilding(template string, team model.TeamID, pos model.Location) (*unit.Building, error) {
	t, ok := s.cfg.Buildings[template]
	if !ok {
		return nil, fmt.Errorf("%w: building %q", config.ErrUnknownTemplate, template)
	}

	id := s.ids.NextBuildingID()
	obj := model.NewWorldObject(id, fmt.Sprintf("%s#%d", template, id&0x0FFFFFFF), pos, team)

	// b is set below; effects only run once the building ticks.
	var b *unit.Building
	activities := make([]building.Activity, 0, len(t.Activities))
	for _, a := range t.Activities {
		act := building.Activity{
			Title:       a.Title,
			Description: a.Description,
			Duration:    a.Duration,
			Cost:        a.Cost,
		}
		if a.Spawn != "" {
			spawn := a.Spawn
			act.Effect = func() { s.produce(b, spawn) }
		}
		activities = append(activities, act)
	}
	catalogue, err := building.NewCatalogue(activities...)
	if err != nil {
		return nil, fmt.Errorf("building %q: %w", template, err)
	}

	opts := []unit.BuildingOption{
		unit.WithCatalogue(catalogue),
		unit.WithTreasury(s.match),
	}
	if t.Turret != nil {
		opts = append(opts, unit.WithTurret(weaponOf(t.Turret.Weapon), autoAttackOf(t.Turret.AutoAttack)))
	}

	b, err = unit.NewBuilding(obj, t.MaxHP, s.views(obj.Name()), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Simulation) produce(b *unit.Building, template string) {
	if b == nil || b.Retired() {
		return
	}
	pos := b.Object().Location().Add(model.NewLocation(spawnSpacing, 0, 0))
	u, err := s.Spawn(template, b.Object().Team(), pos)
	if err != nil {
		slog.Error("production failed", "building", b.Object().Name(), "template", template, "error", err)
		return
	}
	slog.Info("unit produced", "building", b.Object().Name(), "unit", u.Object().Name())
}

func (s *Simulation) add(e Entity) error {
	id := e.Object().ObjectID()
	if err := s.field.AddBody(e.Body()); err != nil {
		return fmt.Errorf("adding %s: %w", e.Object().Name(), err)
	}
	if sensor := e.Sensor(); sensor != nil {
		s.field.AddSensor(sensor)
	}
	if agg := e.Aggressive(); agg != nil {
		agg.SetHitObserver(s.onHit)
	}
	for _, c := range e.Controllers() {
		s.manager.Register(id, c)
	}
	e.OnRetire(func() { s.retiring = append(s.retiring, e) })

	s.entities[id] = e
	s.order = append(s.order, id)
	s.match.Join(e)

	slog.Debug("entity spawned",
		"object", e.Object().Name(),
		"objectID", id,
		"team", e.Object().Team(),
		"at", e.Object().Location())
	return nil
}

func (s *Simulation) onHit(hit combat.HitResult) {
	ev := HitEvent{HitResult: hit, Tick: s.tick}
	if a, ok := s.entities[hit.AttackerID]; ok {
		ev.AttackerTeam = a.Object().Team()
	}
	if t, ok := s.entities[hit.TargetID]; ok {
		ev.TargetTeam = t.Object().Team()
	}
	if hit.Killed {
		s.match.RecordKill(ev.AttackerTeam)
	}
	if s.recorder != nil {
		s.recorder.RecordHit(ev)
	}
}

// Submit queues fn to run on the simulation goroutine at the start of the
// next tick. Safe for concurrent use.
func (s *Simulation) Submit(fn func(*Simulation)) error {
	select {
	case s.inbox <- fn:
		return nil
	default:
		return ErrInboxFull
	}
}

// Step advances the simulation by dt.
func (s *Simulation) Step(dt time.Duration) {
	s.drain()

	for _, e := range s.snapshot() {
		if u, ok := e.(*unit.Unit); ok {
			u.TickMovement(dt)
		}
	}

	s.field.Update()
	s.manager.TickAll(s.now)

	for _, e := range s.snapshot() {
		e.TickCombat(s.now)
	}
	for _, e := range s.snapshot() {
		if b, ok := e.(*unit.Building); ok {
			b.TickActivities(dt)
		}
	}

	s.reap()

	s.now += dt
	s.tick++
}

// Run steps the simulation every tick interval until ctx is done, the
// configured duration elapses or only one team is left standing.
func (s *Simulation) Run(ctx context.Context) error {
	interval := s.cfg.TickInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("simulation started",
		"interval", interval,
		"duration", s.cfg.Duration,
		"entities", len(s.entities))

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "tick", s.tick)
			return ctx.Err()

		case <-ticker.C:
			s.Step(interval)

			if team, ok := s.match.Winner(); !ok {
				s.contested = s.contested || len(s.entities) > 0
			} else if s.contested {
				slog.Info("match finished",
					"winner", team,
					"tick", s.tick,
					"kills", s.match.Kills(team))
				return nil
			}

			if s.cfg.Duration > 0 && s.now >= s.cfg.Duration {
				slog.Info("simulation finished", "tick", s.tick, "elapsed", s.now)
				return nil
			}
		}
	}
}

func (s *Simulation) drain() {
	for {
		select {
		case fn := <-s.inbox:
			fn(s)
		default:
			return
		}
	}
}

func (s *Simulation) snapshot() []Entity {
	out := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

// reap removes retired entities. Destroying one may retire others, so it
// loops until nothing is left.
func (s *Simulation) reap() {
	for len(s.retiring) > 0 {
		batch := s.retiring
		s.retiring = nil
		for _, e := range batch {
			s.remove(e)
		}
	}
}

func (s *Simulation) remove(e Entity) {
	id := e.Object().ObjectID()
	if _, ok := s.entities[id]; !ok {
		return
	}

	s.selection.Deselect(e)
	s.manager.Unregister(id)
	s.releaseAttackers(e)
	e.Destroy()

	if sensor := e.Sensor(); sensor != nil {
		s.field.RemoveSensor(sensor)
	}
	s.field.RemoveBody(id)
	s.match.Leave(e)

	delete(s.entities, id)
	s.order = slices.DeleteFunc(s.order, func(other uint32) bool { return other == id })

	slog.Info("entity removed", "object", e.Object().Name(), "objectID", id)
}

// releaseAttackers drops every session still bound to e. A despawned entity
// may be alive, so its death watch never fires.
func (s *Simulation) releaseAttackers(e Entity) {
	target := combat.Attackable(e)
	for _, id := range s.order {
		if agg := s.entities[id].Aggressive(); agg != nil && agg.Target() == target {
			agg.Release(target)
		}
	}
}

// Despawn retires an entity; it is removed at the end of the current tick
// (or the next one when called between ticks).
func (s *Simulation) Despawn(id uint32) error {
	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	e.Retire()
	return nil
}

// Order queues catalogue activity index at building id.
func (s *Simulation) Order(id uint32, index int) error {
	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	b, ok := e.(*unit.Building)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotBuilding, e.Object().Name())
	}
	return b.Order(index)
}

// ChangeTeam moves entity id to team, updating rosters and selection.
func (s *Simulation) ChangeTeam(id uint32, team model.TeamID) error {
	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	s.match.Leave(e)
	e.OnTeamChanged(team)
	s.match.Join(e)
	if e.Object().Team() != s.match.LocalTeam() {
		s.selection.Deselect(e)
	}
	return nil
}

// PickSelectable implements selection.Picker: the nearest live entity within
// PickRadius of screen (screen and world coordinates coincide headless).
func (s *Simulation) PickSelectable(screen model.Location) selection.Selectable {
	var (
		best     Entity
		bestDist = math.Inf(1)
	)
	for _, id := range s.order {
		e := s.entities[id]
		if e.Retired() {
			continue
		}
		d := e.Object().Location().Distance(screen)
		if d <= PickRadius && d < bestDist {
			best, bestDist = e, d
		}
	}
	if best == nil {
		return nil
	}
	return best
}

// PickGround implements selection.Picker.
func (s *Simulation) PickGround(screen model.Location) (model.Location, bool) {
	return screen, s.bounds.Contains(screen)
}

// Entity returns the entity with id.
func (s *Simulation) Entity(id uint32) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities returns live entities in spawn order.
func (s *Simulation) Entities() []Entity {
	return s.snapshot()
}

// Selection returns the local player's selection.
func (s *Simulation) Selection() *selection.Set { return s.selection }

// Match returns per-team state.
func (s *Simulation) Match() *Match { return s.match }

// Field returns the proximity field.
func (s *Simulation) Field() *proximity.Field { return s.field }

// Controllers returns the controller registry.
func (s *Simulation) Controllers() *ai.TickManager { return s.manager }

// Now returns simulation time.
func (s *Simulation) Now() time.Duration { return s.now }

// Tick returns number of completed steps.
func (s *Simulation) Tick() uint64 { return s.tick }

func weaponOf(w config.WeaponConfig) model.Weapon {
	return model.Weapon{Damage: w.Damage, Period: w.Period, Range: w.EffectiveRange()}
}

func autoAttackOf(a config.AutoAttackConfig) ai.AutoAttackConfig {
	return ai.AutoAttackConfig{AttackRange: a.AttackRange, ChaseRange: a.ChaseRange}
}
