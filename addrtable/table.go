// Package addrtable maps symbolic names to console addresses per game and
// region. Addresses are either fixed or derived by walking a pointer chain
// from another named address.
package addrtable

import (
	"sort"

	"github.com/dolphinhack/hacktools/memio"
)

// MaxDerivedDepth bounds how many derived entries may be chained through
// their sources. Deeper (or cyclic) configurations resolve to 0.
const MaxDerivedDepth = 8

type Offsets [NumRegions]uint32

type Reader interface {
	Read32(addr uint32) uint32
	BoundsCheck(addr uint32) bool
}

type Config struct {
	LogFunc memio.LogFunc
}

type derivedEntry struct {
	source string
	chain  []Offsets
}

type entryKey struct {
	game Game
	name string
}

type Table struct {
	mem    Reader
	config Config

	fixed   [numGames]map[string]Offsets
	derived [numGames]map[string]derivedEntry

	/* Set once a derived entry's source was found to only resolve as derived */
	sourceDynamic map[entryKey]bool
}

func New(mem Reader, config Config) *Table {
	t := &Table{
		mem:           mem,
		config:        config,
		sourceDynamic: make(map[entryKey]bool),
	}

	for g := range t.fixed {
		t.fixed[g] = make(map[string]Offsets)
		t.derived[g] = make(map[string]derivedEntry)
	}

	return t
}

func (t *Table) log(level int, format string, param ...interface{}) {
	if t.config.LogFunc != nil {
		t.config.LogFunc(level, format, param...)
	}
}

// SetMemory replaces the memory pointer chains are walked in.
func (t *Table) SetMemory(mem Reader) {
	t.mem = mem
}

func (t *Table) RegisterFixed(game Game, name string, perRegion Offsets) {
	if !game.Valid() {
		return
	}
	t.fixed[game][name] = perRegion
}

// RegisterDerived adds a derived entry. An existing entry of the same name is
// kept. A single element chain only adds its offset to the source address,
// longer chains dereference once per element except for the last.
func (t *Table) RegisterDerived(game Game, name string, source string, chain ...Offsets) {
	if !game.Valid() {
		return
	}
	if _, ok := t.derived[game][name]; ok {
		return
	}

	t.derived[game][name] = derivedEntry{
		source: source,
		chain:  append([]Offsets(nil), chain...),
	}
}

func (t *Table) LookupFixed(game Game, region Region, name string) uint32 {
	if !game.Valid() || !region.Valid() {
		return 0
	}

	entry, ok := t.fixed[game][name]
	if !ok {
		return 0
	}
	return entry[region]
}

func (t *Table) LookupDerived(game Game, region Region, name string) uint32 {
	return t.lookupDerived(game, region, name, 0)
}

func (t *Table) lookupDerived(game Game, region Region, name string, depth int) uint32 {
	if !game.Valid() || !region.Valid() {
		return 0
	}
	if depth >= MaxDerivedDepth {
		t.log(2, "Derived address %s/%s nested too deep", game, name)
		return 0
	}

	entry, ok := t.derived[game][name]
	if !ok || len(entry.chain) == 0 {
		return 0
	}

	key := entryKey{game: game, name: name}

	var current uint32
	if t.sourceDynamic[key] {
		current = t.lookupDerived(game, region, entry.source, depth+1)
	} else {
		current = t.LookupFixed(game, region, entry.source)
		if current == 0 {
			current = t.lookupDerived(game, region, entry.source, depth+1)
			if current != 0 {
				t.sourceDynamic[key] = true
			}
		}
	}
	if current == 0 {
		return 0
	}

	for _, offsets := range entry.chain[:len(entry.chain)-1] {
		candidate := t.mem.Read32(current + offsets[region])
		if !t.mem.BoundsCheck(candidate) {
			return 0
		}
		current = candidate
	}

	return current + entry.chain[len(entry.chain)-1][region]
}

// Lookup resolves name as a fixed address first and as a derived one
// otherwise.
func (t *Table) Lookup(game Game, region Region, name string) uint32 {
	if addr := t.LookupFixed(game, region, name); addr != 0 {
		return addr
	}
	return t.LookupDerived(game, region, name)
}

func (t *Table) IsDerived(game Game, name string) bool {
	if !game.Valid() {
		return false
	}
	_, ok := t.derived[game][name]
	return ok
}

func (t *Table) Source(game Game, name string) (string, bool) {
	if !game.Valid() {
		return "", false
	}
	entry, ok := t.derived[game][name]
	return entry.source, ok
}

func (t *Table) Names(game Game) []string {
	if !game.Valid() {
		return nil
	}

	var result []string
	for name := range t.fixed[game] {
		result = append(result, name)
	}
	for name := range t.derived[game] {
		if _, ok := t.fixed[game][name]; !ok {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
