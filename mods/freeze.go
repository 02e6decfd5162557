package mods

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dolphinhack/hacktools/hack"
)

type Width int

const (
	Width8 Width = iota
	Width16
	Width32
	WidthF32
)

var widthNames = map[string]Width{
	"8":   Width8,
	"16":  Width16,
	"32":  Width32,
	"f32": WidthF32,
}

// FreezeEntry pins a value at Offset bytes past the address of Symbol. For
// WidthF32 Value holds the IEEE-754 bits.
type FreezeEntry struct {
	Symbol string
	Offset uint32
	Width  Width
	Value  uint32
}

// ParseFreeze parses symbol[+offset][:width]=value. Width defaults to 32,
// integers may be given in any base strconv understands.
func ParseFreeze(s string) (FreezeEntry, error) {
	var e FreezeEntry
	e.Width = Width32

	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return e, fmt.Errorf("%q: missing value: %w", s, ErrorSyntax)
	}
	target, value := strings.TrimSpace(s[:eq]), strings.TrimSpace(s[eq+1:])

	if i := strings.IndexByte(target, ':'); i >= 0 {
		w, ok := widthNames[strings.ToLower(target[i+1:])]
		if !ok {
			return e, fmt.Errorf("%q: %w", s, ErrorInvalidWidth)
		}
		e.Width = w
		target = target[:i]
	}

	if i := strings.IndexByte(target, '+'); i >= 0 {
		off, err := strconv.ParseUint(target[i+1:], 0, 32)
		if err != nil {
			return e, fmt.Errorf("%q: offset: %w", s, ErrorSyntax)
		}
		e.Offset = uint32(off)
		target = target[:i]
	}
	if target == "" {
		return e, fmt.Errorf("%q: missing symbol: %w", s, ErrorSyntax)
	}
	e.Symbol = target

	if e.Width == WidthF32 {
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return e, fmt.Errorf("%q: value: %w", s, ErrorSyntax)
		}
		e.Value = math.Float32bits(float32(f))
		return e, nil
	}

	bits := map[Width]int{Width8: 8, Width16: 16, Width32: 32}[e.Width]
	v, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return e, fmt.Errorf("%q: value: %w", s, ErrorSyntax)
	}
	e.Value = uint32(v)
	return e, nil
}

// Freeze rewrites its entries every frame while Enabled. Symbols are resolved
// each frame since derived addresses follow objects around.
type Freeze struct {
	entries []FreezeEntry
}

func NewFreeze(entries []FreezeEntry) *Freeze {
	return &Freeze{entries: append([]FreezeEntry(nil), entries...)}
}

func (f *Freeze) Init(m *hack.Mod, env *hack.Env) bool {
	for _, e := range f.entries {
		if env.Lookup(e.Symbol) == 0 {
			env.Log(3, "%s: %s does not resolve yet", m.Name(), e.Symbol)
			return false
		}
	}
	return true
}

func (f *Freeze) Run(m *hack.Mod, env *hack.Env) {
	if m.State() != hack.Enabled {
		return
	}

	for _, e := range f.entries {
		base := env.Lookup(e.Symbol)
		if base == 0 {
			continue
		}
		addr := base + e.Offset

		switch e.Width {
		case Width8:
			env.Mem.Write8(addr, uint8(e.Value))
		case Width16:
			env.Mem.Write16(addr, uint16(e.Value))
		case Width32:
			env.Mem.Write32(addr, e.Value)
		case WidthF32:
			env.Mem.WriteF32(addr, math.Float32frombits(e.Value))
		}
	}
}

func (f *Freeze) OnStateChange(m *hack.Mod, prev hack.ModState) {}
