// Package hackmgr owns the registered mods and advances them once per
// emulated frame: detect the running game, reset mods on a game change,
// refresh enablement, lazily initialize, write pending patches and run the
// per-frame logic.
package hackmgr

import (
	"fmt"
	"sync"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/hack"
	"github.com/dolphinhack/hacktools/memio"
)

type Config struct {
	// Enabled reports whether the named mod should currently run. It is
	// queried for every mod on every frame; nil leaves states untouched.
	Enabled func(name string) bool

	// Signatures used for game detection, DefaultSignatures when nil.
	Signatures []Signature

	LogFunc memio.LogFunc
}

type Manager struct {
	mem    memio.MemoryIO
	addrs  *addrtable.Table
	config Config

	mods   []*hack.Mod
	byName map[string]*hack.Mod

	detection Detection
	frame     uint64
	frameEnd  []func()

	saved map[string]hack.ModState

	statusLock sync.Mutex
	status     string
}

func New(mem memio.MemoryIO, addrs *addrtable.Table, config Config) *Manager {
	if config.Signatures == nil {
		config.Signatures = DefaultSignatures
	}

	return &Manager{
		mem:    mem,
		addrs:  addrs,
		config: config,
		byName: make(map[string]*hack.Mod),
		detection: Detection{
			Game:   addrtable.GameInvalid,
			Region: addrtable.RegionInvalid,
		},
		status: "No game running",
	}
}

func (m *Manager) log(level int, format string, param ...interface{}) {
	if m.config.LogFunc != nil {
		m.config.LogFunc(level, format, param...)
	}
}

func (m *Manager) Register(mod *hack.Mod) error {
	if _, ok := m.byName[mod.Name()]; ok {
		return fmt.Errorf("%s: %w", mod.Name(), ErrorDuplicateMod)
	}

	m.mods = append(m.mods, mod)
	m.byName[mod.Name()] = mod
	return nil
}

func (m *Manager) Mod(name string) (*hack.Mod, error) {
	mod, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrorUnknownMod)
	}
	return mod, nil
}

func (m *Manager) Mods() []*hack.Mod {
	return append([]*hack.Mod(nil), m.mods...)
}

// OnFrameEnd registers f to be called at the end of every frame, after all
// mods ran.
func (m *Manager) OnFrameEnd(f func()) {
	m.frameEnd = append(m.frameEnd, f)
}

func (m *Manager) Game() addrtable.Game {
	return m.detection.Game
}

func (m *Manager) Region() addrtable.Region {
	return m.detection.Region
}

func (m *Manager) Detection() Detection {
	return m.detection
}

func (m *Manager) Frame() uint64 {
	return m.frame
}

func (m *Manager) Status() string {
	m.statusLock.Lock()
	defer m.statusLock.Unlock()
	return m.status
}

func (m *Manager) setStatus(format string, param ...interface{}) {
	status := fmt.Sprintf(format, param...)

	m.statusLock.Lock()
	changed := status != m.status
	m.status = status
	m.statusLock.Unlock()

	if changed {
		m.log(2, "Status: %s", status)
	}
}

func (m *Manager) env() *hack.Env {
	return &hack.Env{
		Mem:     m.mem,
		Addrs:   m.addrs,
		Game:    m.detection.Game,
		Region:  m.detection.Region,
		LogFunc: m.config.LogFunc,
	}
}

func (m *Manager) detect() {
	d := Detect(m.mem, m.config.Signatures)
	if d.Game == m.detection.Game && d.Region == m.detection.Region {
		m.detection = d
		return
	}

	if d.Game.Valid() {
		m.log(1, "Detected %s (%s) disc %s rev %d", d.Game, d.Region, d.ID, d.Revision)
	} else {
		m.log(1, "No supported game running")
	}

	for _, mod := range m.mods {
		mod.Reset()
	}
	m.detection = d
}

func (m *Manager) refreshState(mod *hack.Mod) {
	if m.config.Enabled == nil {
		return
	}

	if m.config.Enabled(mod.Name()) {
		if mod.State() == hack.Disabled {
			mod.Enable()
		}
	} else {
		mod.Disable()
	}
}

// RunFrame performs one scheduling round. Mods are processed in registration
// order and each step finishes for every mod before the next step starts.
func (m *Manager) RunFrame() {
	m.frame++
	m.detect()

	for _, mod := range m.mods {
		m.refreshState(mod)
	}

	env := m.env()
	if env.Game.Valid() {
		for _, mod := range m.mods {
			if mod.Initialized() {
				continue
			}
			if mod.Initialize(env) {
				m.log(1, "Initialized %s with %d patches", mod.Name(), len(mod.Slots()))
			}
		}
	}

	for _, mod := range m.mods {
		if !mod.Initialized() || !mod.NeedsApply(m.mem) {
			continue
		}
		n := mod.ApplyChanges(m.mem)
		m.log(2, "Wrote %d words for %s (%s)", n, mod.Name(), mod.State())
	}

	active := 0
	for _, mod := range m.mods {
		if !mod.Initialized() {
			continue
		}
		if mod.State() == hack.Enabled || mod.State() == hack.CodeDisabled {
			mod.Run(env)
			active++
		}
	}

	for _, f := range m.frameEnd {
		f()
	}

	if env.Game.Valid() {
		m.setStatus("%s (%s): %d/%d mods active", env.Game, env.Region, active, len(m.mods))
	} else {
		m.setStatus("No game running")
	}
}
