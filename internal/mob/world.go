// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/oklog/ulid/v2"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

// maxDispatch bounds the events delivered by one Dispatch call. Events
// posted past the bound wait for the next call.
const maxDispatch = 10000

// DefaultRecordLimit is how many records a world keeps for Records.
const DefaultRecordLimit = 1024

// arriveDistance is how close a mover must get to count as arrived.
const arriveDistance = 1.0

type queuedEvent struct {
	target   *Mob
	ev       mobscript.EventID
	payload1 any
	payload2 any
}

// PathStop is a named point of the area's path graph.
type PathStop struct {
	Pos    cp.Vector
	Labels []string
}

// Liquid is a drainable body of liquid on the floor.
type Liquid struct {
	Name    string
	Pos     cp.Vector
	Radius  float64
	Drained bool
}

// World owns every mob of an area and delivers their events. It is not
// safe for concurrent use; one goroutine drives it.
type World struct {
	Types map[string]*Type

	mobs   []*Mob
	byID   map[ulid.ULID]*Mob
	queue  []queuedEvent
	interp *mobscript.Interpreter
	logger *slog.Logger
	feed   *Feed

	rand       *rand.Rand
	Time       float64
	DayMinutes float64
	Weather    string
	PathStops  []PathStop
	Liquids    []*Liquid
	// FloorZ returns the floor height at a point. Nil means a flat floor.
	FloorZ func(x, y float64) float64

	records     []Record
	recordLimit int
	nextSound   int
	sounds      map[int]string
}

// WorldOption configures a World during construction.
type WorldOption func(*World)

// WithInterpreter sets the interpreter used to run mob programs.
func WithInterpreter(in *mobscript.Interpreter) WorldOption {
	return func(w *World) {
		if in != nil {
			w.interp = in
		}
	}
}

// WithWorldLogger sets the world's logger.
func WithWorldLogger(l *slog.Logger) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSeed makes random instructions deterministic.
func WithSeed(seed int64) WorldOption {
	return func(w *World) {
		w.rand = rand.New(rand.NewSource(seed))
	}
}

// WithFeed publishes world records to f.
func WithFeed(f *Feed) WorldOption {
	return func(w *World) {
		w.feed = f
	}
}

// WithRecordLimit keeps at most n of the latest records for Records and
// RecordsOf. Zero keeps none, which suits callers that watch a Feed.
func WithRecordLimit(n int) WorldOption {
	return func(w *World) {
		if n >= 0 {
			w.recordLimit = n
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		Types:       make(map[string]*Type),
		byID:        make(map[ulid.ULID]*Mob),
		logger:      slog.Default(),
		rand:        rand.New(rand.NewSource(1)),
		DayMinutes:  7 * 60,
		sounds:      make(map[int]string),
		recordLimit: DefaultRecordLimit,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.interp == nil {
		w.interp = mobscript.NewInterpreter(mobscript.WithLogger(w.logger))
	}
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger { return w.logger }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rand }

// AddType makes t available to spawn instructions.
func (w *World) AddType(t *Type) {
	w.Types[t.Name] = t
}

// Spawn creates a mob of type t and enters its initial state.
func (w *World) Spawn(t *Type, pos cp.Vector, angle float64) *Mob {
	return w.SpawnWith(t, pos, angle, nil)
}

// SpawnWith is Spawn with a setup step that runs before the initial state
// is entered.
func (w *World) SpawnWith(t *Type, pos cp.Vector, angle float64, setup func(*Mob)) *Mob {
	m := newMob(w, t, pos, angle)
	if setup != nil {
		setup(m)
	}
	w.mobs = append(w.mobs, m)
	w.byID[m.ID] = m
	w.emit(Record{Kind: RecordSpawn, Mob: m, Text: t.Name})
	if t.InitialState != "" {
		m.SetState(t.InitialState)
	}
	return m
}

// Mob returns the live mob with the given id.
func (w *World) Mob(id ulid.ULID) (*Mob, bool) {
	m, ok := w.byID[id]
	return m, ok && m.Alive()
}

// Mobs returns the live mobs in spawn order.
func (w *World) Mobs() []*Mob {
	out := make([]*Mob, 0, len(w.mobs))
	for _, m := range w.mobs {
		if m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

// Nearby returns the live mobs other than m within dist of it, closest
// first.
func (w *World) Nearby(m *Mob, dist float64) []*Mob {
	var out []*Mob
	for _, o := range w.mobs {
		if o == m || !o.Alive() {
			continue
		}
		if m.DistanceTo(o) <= dist {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return m.DistanceTo(out[i]) < m.DistanceTo(out[j])
	})
	return out
}

// Closest returns the closest live mob to m matching keep, or nil.
func (w *World) Closest(m *Mob, keep func(*Mob) bool) *Mob {
	var best *Mob
	bestDist := math.Inf(1)
	for _, o := range w.mobs {
		if o == m || !o.Alive() || (keep != nil && !keep(o)) {
			continue
		}
		if d := m.DistanceTo(o); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// CountCategory counts live mobs whose type is in category. An empty
// category counts every mob.
func (w *World) CountCategory(category string) int {
	n := 0
	for _, m := range w.mobs {
		if m.Alive() && (category == "" || strings.EqualFold(m.Type.Category, category)) {
			n++
		}
	}
	return n
}

// Floor returns the floor height under (x, y).
func (w *World) Floor(x, y float64) float64 {
	if w.FloorZ == nil {
		return 0
	}
	return w.FloorZ(x, y)
}

// Post queues an event for target. Events are delivered by Dispatch so a
// program never runs re-entrantly.
func (w *World) Post(target *Mob, ev mobscript.EventID, payload1, payload2 any) {
	if !target.Alive() {
		return
	}
	w.queue = append(w.queue, queuedEvent{target: target, ev: ev, payload1: payload1, payload2: payload2})
}

// Pending returns the number of queued events.
func (w *World) Pending() int { return len(w.queue) }

// Dispatch delivers queued events, including ones posted while
// delivering, and returns how many were delivered.
func (w *World) Dispatch() int {
	n := 0
	for len(w.queue) > 0 && n < maxDispatch {
		e := w.queue[0]
		w.queue = w.queue[1:]
		e.target.HandleEvent(e.ev, e.payload1, e.payload2)
		n++
	}
	if len(w.queue) > 0 {
		w.logger.Warn("event queue not drained", "pending", len(w.queue))
	}
	return n
}

// Tick advances the simulation by dt seconds: timers, movement, on_tick,
// then every queued event. Deleted mobs are dropped afterwards.
func (w *World) Tick(dt float64) {
	w.Time += dt
	w.DayMinutes = math.Mod(w.DayMinutes+dt, 24*60)

	for _, m := range w.Mobs() {
		if m.Timer > 0 {
			m.Timer -= dt
			if m.Timer <= 0 {
				m.Timer = 0
				w.Post(m, OnTimer, nil, nil)
			}
		}
		w.move(m, dt)
		w.Post(m, OnTick, nil, nil)
	}
	w.Dispatch()
	w.sweep()
}

func (w *World) move(m *Mob, dt float64) {
	if m.Holder != nil {
		m.Pos = m.Holder.Pos
		return
	}
	if m.Target == nil && len(m.Path) > 0 {
		next := m.Path[0]
		m.Path = m.Path[1:]
		m.Target = &next
	}
	if m.Target == nil {
		return
	}
	if m.ChaseMob != nil && m.ChaseMob.Alive() {
		*m.Target = m.ChaseMob.Pos
	}

	delta := m.Target.Sub(m.Pos)
	dist := delta.Length()
	step := m.Speed * dt
	if dist <= arriveDistance || step >= dist {
		m.Pos = *m.Target
		m.Target = nil
		if len(m.Path) == 0 && m.ChaseMob == nil {
			w.Post(m, OnReachDestination, nil, nil)
		}
		return
	}
	m.Angle = delta.ToAngle()
	m.Pos = m.Pos.Add(delta.Normalize().Mult(step))
}

func (w *World) sweep() {
	live := w.mobs[:0]
	for _, m := range w.mobs {
		if m.Deleted {
			delete(w.byID, m.ID)
			continue
		}
		live = append(live, m)
	}
	w.mobs = live
}

// Touch reports that a touched b.
func (w *World) Touch(a, b *Mob) {
	w.Post(a, OnTouchObject, b, nil)
	w.Post(b, OnTouchedByMob, a, nil)
}

// Damage hurts target. A mob whose health runs out gets on_death after
// on_damage.
func (w *World) Damage(target *Mob, hit HitInfo) {
	if !target.Alive() || target.Dying {
		return
	}
	target.Health = math.Max(0, target.Health-hit.Damage)
	w.Post(target, OnDamage, hit, nil)
	if target.Health == 0 && target.MaxHealth > 0 {
		target.Dying = true
		w.Post(target, OnDeath, hit.Attacker, nil)
	}
}

// SendMessage delivers msg from sender to target as on_receive_message.
func (w *World) SendMessage(sender, target *Mob, msg string) {
	w.Post(target, OnReceiveMessage, sender, msg)
}

// PlaySound records a sound and returns its id.
func (w *World) PlaySound(m *Mob, name string) int {
	w.nextSound++
	w.sounds[w.nextSound] = name
	w.emit(Record{Kind: RecordSound, Mob: m, Text: name})
	return w.nextSound
}

// StopSound stops a playing sound. It reports whether the id was playing.
func (w *World) StopSound(id int) bool {
	if _, ok := w.sounds[id]; !ok {
		return false
	}
	delete(w.sounds, id)
	return true
}

// Playing returns the number of playing sounds.
func (w *World) Playing() int { return len(w.sounds) }

// Died records that m finished dying.
func (w *World) Died(m *Mob) {
	w.emit(Record{Kind: RecordDeath, Mob: m, Text: m.Type.Name})
}

// Print records debug text from a script.
func (w *World) Print(m *Mob, text string) {
	w.logger.Info("script print", "mob", m.ID.String(), "type", m.Type.Name, "text", text)
	w.emit(Record{Kind: RecordPrint, Mob: m, Text: text})
}

// ShowMessage records a message box shown to the player.
func (w *World) ShowMessage(m *Mob, text string) {
	w.emit(Record{Kind: RecordMessage, Mob: m, Text: text})
}

// StartParticles records a particle generator starting on m.
func (w *World) StartParticles(m *Mob, generator string) {
	m.Particles = append(m.Particles, generator)
	w.emit(Record{Kind: RecordParticles, Mob: m, Text: generator})
}

// DrainLiquidAt drains the first undrained liquid under pos. It reports
// whether one was found.
func (w *World) DrainLiquidAt(pos cp.Vector) bool {
	for _, l := range w.Liquids {
		if !l.Drained && l.Pos.Distance(pos) <= l.Radius {
			l.Drained = true
			return true
		}
	}
	return false
}

// Records returns the latest records, oldest first, up to the record limit.
func (w *World) Records() []Record { return w.records }

// RecordsOf returns the texts of records of one kind.
func (w *World) RecordsOf(kind RecordKind) []string {
	var out []string
	for _, r := range w.records {
		if r.Kind == kind {
			out = append(out, r.Text)
		}
	}
	return out
}

func (w *World) emit(rec Record) {
	if w.recordLimit > 0 {
		if len(w.records) >= w.recordLimit {
			n := copy(w.records, w.records[len(w.records)-w.recordLimit+1:])
			w.records = w.records[:n]
		}
		w.records = append(w.records, rec)
	}
	if w.feed != nil {
		w.feed.Publish(rec)
	}
}
