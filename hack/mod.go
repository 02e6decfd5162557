// Package hack implements the patch bookkeeping shared by every mod: the
// patched and original instruction words, independently switchable code
// groups and the enabled/disabled state machine.
package hack

import (
	"sort"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/memio"
)

// Env is what a mod gets to see of the running game.
type Env struct {
	Mem    memio.MemoryIO
	Addrs  *addrtable.Table
	Game   addrtable.Game
	Region addrtable.Region

	LogFunc memio.LogFunc
}

func (e *Env) Log(level int, format string, param ...interface{}) {
	if e.LogFunc != nil {
		e.LogFunc(level, format, param...)
	}
}

func (e *Env) LookupFixed(name string) uint32 {
	return e.Addrs.LookupFixed(e.Game, e.Region, name)
}

func (e *Env) LookupDerived(name string) uint32 {
	return e.Addrs.LookupDerived(e.Game, e.Region, name)
}

func (e *Env) Lookup(name string) uint32 {
	return e.Addrs.Lookup(e.Game, e.Region, name)
}

// Behavior is the game specific part of a mod.
type Behavior interface {
	// Init resolves addresses and registers patches with AddPatch. Returning
	// false leaves the mod uninitialized; it is retried on the next frame.
	Init(m *Mod, env *Env) bool
	// Run is called once per frame while the mod is Enabled or CodeDisabled.
	Run(m *Mod, env *Env)
	OnStateChange(m *Mod, prev ModState)
}

type Mod struct {
	name     string
	behavior Behavior

	slots  []PatchSlot
	groups map[string]*CodeGroup

	state       ModState
	initialized bool
	captured    bool
}

func NewMod(name string, behavior Behavior) *Mod {
	return &Mod{
		name:     name,
		behavior: behavior,
		groups:   make(map[string]*CodeGroup),
	}
}

func (m *Mod) Name() string {
	return m.name
}

func (m *Mod) Behavior() Behavior {
	return m.behavior
}

func (m *Mod) State() ModState {
	return m.state
}

func (m *Mod) Initialized() bool {
	return m.initialized
}

// SetState moves the mod to state. It reports whether a transition took
// place; unchanged or disallowed states are ignored.
func (m *Mod) SetState(state ModState) bool {
	if state == m.state || !transitionAllowed(m.state, state) {
		return false
	}

	prev := m.state
	m.state = state
	if m.behavior != nil {
		m.behavior.OnStateChange(m, prev)
	}
	return true
}

func (m *Mod) Enable() bool {
	return m.SetState(Enabled)
}

func (m *Mod) Disable() bool {
	return m.SetState(Disabled)
}

// AddPatch registers a patch during initialization. Once the original
// instructions were captured the patch is dropped and false is returned.
func (m *Mod) AddPatch(addr uint32, value uint32, group ...string) bool {
	if m.captured {
		return false
	}

	index := len(m.slots)
	m.slots = append(m.slots, PatchSlot{
		Address:         addr,
		Patched:         value,
		ActiveIsPatched: true,
	})

	if len(group) == 0 || group[0] == "" {
		return true
	}

	g, ok := m.groups[group[0]]
	if !ok {
		g = &CodeGroup{Name: group[0]}
		m.groups[group[0]] = g
	}
	g.Indices = append(g.Indices, index)
	g.State = Enabled
	return true
}

// CaptureOriginal records what is currently in memory at every patched
// address. Only the first call has an effect.
func (m *Mod) CaptureOriginal(mem memio.MemoryIO) {
	if m.captured {
		return
	}

	for i := range m.slots {
		m.slots[i].Original = mem.Read32(m.slots[i].Address)
	}
	m.captured = true
}

// ChangesToApply is what should be resident in memory right now.
func (m *Mod) ChangesToApply() []PatchOp {
	if m.state == Disabled || m.state == CodeDisabled {
		return m.Original()
	}
	return m.Active()
}

func (m *Mod) NeedsApply(mem memio.MemoryIO) bool {
	for _, c := range m.ChangesToApply() {
		if mem.Read32(c.Address) != c.Value {
			return true
		}
	}
	return false
}

// ApplyChanges writes ChangesToApply and invalidates every written address.
// It returns the number of words written.
func (m *Mod) ApplyChanges(mem memio.MemoryIO) int {
	changes := m.ChangesToApply()
	for _, c := range changes {
		mem.Write32(c.Address, c.Value)
		mem.Invalidate(c.Address)
	}
	return len(changes)
}

func (m *Mod) SetGroupState(name string, state ModState) {
	g, ok := m.groups[name]
	if !ok || g.State == state {
		return
	}

	for _, i := range g.Indices {
		m.slots[i].ActiveIsPatched = state == Enabled
	}
	g.State = state
}

func (m *Mod) GroupState(name string) (ModState, bool) {
	g, ok := m.groups[name]
	if !ok {
		return Disabled, false
	}
	return g.State, true
}

func (m *Mod) Groups() []CodeGroup {
	var result []CodeGroup
	for _, g := range m.groups {
		c := *g
		c.Indices = append([]int(nil), g.Indices...)
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Initialize runs the behavior's Init against env. On success the original
// instructions are captured and the mod is marked initialized.
func (m *Mod) Initialize(env *Env) bool {
	if m.initialized {
		return true
	}
	if m.behavior != nil && !m.behavior.Init(m, env) {
		m.slots = nil
		m.groups = make(map[string]*CodeGroup)
		return false
	}

	m.CaptureOriginal(env.Mem)
	m.initialized = true
	return true
}

func (m *Mod) Run(env *Env) {
	if m.behavior == nil || (m.state != Enabled && m.state != CodeDisabled) {
		return
	}
	m.behavior.Run(m, env)
}

// Reset returns the mod to its freshly constructed state without notifying
// the behavior.
func (m *Mod) Reset() {
	m.state = Disabled
	m.initialized = false
	m.captured = false
	m.slots = nil
	m.groups = make(map[string]*CodeGroup)
}

func (m *Mod) Slots() []PatchSlot {
	return append([]PatchSlot(nil), m.slots...)
}

func (m *Mod) Patches() []PatchOp {
	result := make([]PatchOp, len(m.slots))
	for i, s := range m.slots {
		result[i] = PatchOp{Address: s.Address, Value: s.Patched}
	}
	return result
}

func (m *Mod) Original() []PatchOp {
	if !m.captured {
		return nil
	}

	result := make([]PatchOp, len(m.slots))
	for i, s := range m.slots {
		result[i] = PatchOp{Address: s.Address, Value: s.Original}
	}
	return result
}

func (m *Mod) Active() []PatchOp {
	result := make([]PatchOp, len(m.slots))
	for i, s := range m.slots {
		result[i] = PatchOp{Address: s.Address, Value: s.Active()}
	}
	return result
}
