package hackmgr

import "github.com/dolphinhack/hacktools/hack"

// SaveAllStates snapshots the state of every mod.
func (m *Manager) SaveAllStates() map[string]hack.ModState {
	m.saved = make(map[string]hack.ModState, len(m.mods))
	for _, mod := range m.mods {
		m.saved[mod.Name()] = mod.State()
	}

	result := make(map[string]hack.ModState, len(m.saved))
	for k, v := range m.saved {
		result[k] = v
	}
	return result
}

// RestoreAllStates puts initialized mods back into the state recorded by the
// last SaveAllStates.
func (m *Manager) RestoreAllStates() {
	for _, mod := range m.mods {
		if !mod.Initialized() {
			continue
		}
		state, ok := m.saved[mod.Name()]
		if !ok {
			continue
		}

		if state == hack.CodeDisabled && mod.State() == hack.Disabled {
			mod.Enable()
		}
		mod.SetState(state)
	}
}

// RevertAll disables every initialized mod and immediately writes back the
// original instructions.
func (m *Manager) RevertAll() {
	for _, mod := range m.mods {
		if !mod.Initialized() {
			continue
		}

		mod.Disable()
		if mod.NeedsApply(m.mem) {
			n := mod.ApplyChanges(m.mem)
			m.log(2, "Reverted %d words for %s", n, mod.Name())
		}
	}
	m.setStatus("All mods reverted")
}
