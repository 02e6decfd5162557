package hack

type PatchOp struct {
	Address uint32
	Value   uint32
}

// PatchSlot holds everything known about one patched address. The value that
// should be resident is Patched while ActiveIsPatched is set and Original
// otherwise.
type PatchSlot struct {
	Address         uint32
	Patched         uint32
	Original        uint32
	ActiveIsPatched bool
}

func (s PatchSlot) Active() uint32 {
	if s.ActiveIsPatched {
		return s.Patched
	}
	return s.Original
}

type CodeGroup struct {
	Name    string
	Indices []int
	State   ModState
}

type ModState int

const (
	Disabled ModState = iota
	CodeDisabled
	Enabled
)

func (s ModState) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case CodeDisabled:
		return "code-disabled"
	case Enabled:
		return "enabled"
	}
	return "unknown"
}

/* Transitions accepted by Mod.SetState */
var transitions = map[ModState][]ModState{
	Disabled:     {Enabled},
	Enabled:      {Disabled, CodeDisabled},
	CodeDisabled: {Enabled, Disabled},
}

func transitionAllowed(from, to ModState) bool {
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}
