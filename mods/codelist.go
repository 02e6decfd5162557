// Package mods contains ready made mod behaviors that are driven by data
// instead of game specific code.
package mods

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/hack"
)

type CodeEntry struct {
	Game    addrtable.Game
	Region  addrtable.Region
	Group   string
	Address uint32
	Value   uint32
}

/* Code list files look like:
 *
 *   # comment
 *   [prime1 ntsc]
 *   80001000 60000000
 *   beam 80001004 38600001
 *
 * Every word line belongs to the last section header. An optional leading
 * token names the code group the word belongs to. */
func ParseCodeList(r io.Reader) ([]CodeEntry, error) {
	var result []CodeEntry
	var game addrtable.Game
	var region addrtable.Region
	inSection := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated header: %w", lineNo, ErrorSyntax)
			}
			fields := strings.Fields(line[1 : len(line)-1])
			if len(fields) < 1 || len(fields) > 2 {
				return nil, fmt.Errorf("line %d: header needs a game and optional region: %w", lineNo, ErrorSyntax)
			}

			g := addrtable.ParseGame(fields[0])
			if !g.Valid() {
				return nil, fmt.Errorf("line %d: unknown game %q: %w", lineNo, fields[0], ErrorSyntax)
			}
			region = addrtable.RegionAny
			if len(fields) == 2 {
				region = addrtable.ParseRegion(fields[1])
				if region == addrtable.RegionInvalid {
					return nil, fmt.Errorf("line %d: unknown region %q: %w", lineNo, fields[1], ErrorSyntax)
				}
			}
			game = g
			inSection = true
			continue
		}

		if !inSection {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrorNoSection)
		}

		fields := strings.Fields(line)
		entry := CodeEntry{Game: game, Region: region}
		switch len(fields) {
		case 2:
		case 3:
			entry.Group = fields[0]
			fields = fields[1:]
		default:
			return nil, fmt.Errorf("line %d: expected [group] address value: %w", lineNo, ErrorSyntax)
		}

		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: address %q: %w", lineNo, fields[0], ErrorSyntax)
		}
		if addr&3 != 0 {
			return nil, fmt.Errorf("line %d: %08x: %w", lineNo, addr, ErrorUnalignedCode)
		}
		value, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", lineNo, fields[1], ErrorSyntax)
		}

		entry.Address = uint32(addr)
		entry.Value = uint32(value)
		result = append(result, entry)
	}

	return result, scanner.Err()
}

func LoadCodeListFile(path string) ([]CodeEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ParseCodeList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// CodeList patches the words listed for the running game. Groups switched
// with SetGroup stay that way across game changes; a freshly initialized mod
// starts out with them already applied.
type CodeList struct {
	entries []CodeEntry

	lock    sync.Mutex
	desired map[string]bool
}

func NewCodeList(entries []CodeEntry) *CodeList {
	return &CodeList{
		entries: append([]CodeEntry(nil), entries...),
		desired: make(map[string]bool),
	}
}

// Matching returns the entries that apply to game running in region.
func (c *CodeList) Matching(game addrtable.Game, region addrtable.Region) []CodeEntry {
	var result []CodeEntry
	for _, e := range c.entries {
		if e.Game == game && region.Matches(e.Region) {
			result = append(result, e)
		}
	}
	return result
}

func (c *CodeList) Groups() []string {
	seen := make(map[string]bool)
	var result []string
	for _, e := range c.entries {
		if e.Group != "" && !seen[e.Group] {
			seen[e.Group] = true
			result = append(result, e.Group)
		}
	}
	sort.Strings(result)
	return result
}

func (c *CodeList) SetGroup(name string, enabled bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.desired[name] = enabled
}

/* Groups nobody asked about stay enabled */
func (c *CodeList) wantedState(name string) hack.ModState {
	c.lock.Lock()
	defer c.lock.Unlock()

	if enabled, ok := c.desired[name]; ok && !enabled {
		return hack.CodeDisabled
	}
	return hack.Enabled
}

/* Returns the number of groups that changed state */
func (c *CodeList) syncGroups(m *hack.Mod, env *hack.Env) int {
	changed := 0
	for _, g := range m.Groups() {
		want := c.wantedState(g.Name)
		if g.State == want {
			continue
		}
		m.SetGroupState(g.Name, want)
		env.Log(2, "%s: group %s %s", m.Name(), g.Name, want)
		changed++
	}
	return changed
}

func (c *CodeList) Init(m *hack.Mod, env *hack.Env) bool {
	entries := c.Matching(env.Game, env.Region)
	if len(entries) == 0 {
		return false
	}

	for _, e := range entries {
		if !env.Mem.BoundsCheck(e.Address) {
			env.Log(1, "%s: %08x is outside of console memory", m.Name(), e.Address)
			return false
		}
		m.AddPatch(e.Address, e.Value, e.Group)
	}

	c.syncGroups(m, env)
	return true
}

func (c *CodeList) Run(m *hack.Mod, env *hack.Env) {
	c.syncGroups(m, env)
}

func (c *CodeList) OnStateChange(m *hack.Mod, prev hack.ModState) {}
