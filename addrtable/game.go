package addrtable

import "strings"

type Game int

const (
	GameInvalid Game = iota
	GameMenu
	GamePrime1
	GamePrime2
	GamePrime3
	GamePrime1GCN
	GamePrime2GCN
	GamePrime3Standalone

	numGames
)

var gameNames = map[Game]string{
	GameInvalid:          "invalid",
	GameMenu:             "menu",
	GamePrime1:           "prime1",
	GamePrime2:           "prime2",
	GamePrime3:           "prime3",
	GamePrime1GCN:        "prime1-gcn",
	GamePrime2GCN:        "prime2-gcn",
	GamePrime3Standalone: "prime3-standalone",
}

func (g Game) Valid() bool {
	return g > GameInvalid && g < numGames
}

func (g Game) String() string {
	if name, ok := gameNames[g]; ok {
		return name
	}
	return gameNames[GameInvalid]
}

func Games() []Game {
	var result []Game
	for g := GameInvalid + 1; g < numGames; g++ {
		result = append(result, g)
	}
	return result
}

func ParseGame(s string) Game {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range gameNames {
		if name == s {
			return g
		}
	}
	return GameInvalid
}

type Region int

const (
	RegionNTSCU Region = iota
	RegionNTSCJ
	RegionPAL
	RegionInvalid

	/* Query only: satisfied by both NTSC variants */
	RegionNTSC
	/* Query only: satisfied by every valid region */
	RegionAny
)

// NumRegions is the number of per-region variants stored for every address.
const NumRegions = int(RegionInvalid)

var regionNames = map[Region]string{
	RegionNTSCU:   "ntsc-u",
	RegionNTSCJ:   "ntsc-j",
	RegionPAL:     "pal",
	RegionInvalid: "invalid",
	RegionNTSC:    "ntsc",
	RegionAny:     "any",
}

func (r Region) Valid() bool {
	return r >= RegionNTSCU && r < RegionInvalid
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return regionNames[RegionInvalid]
}

// Matches reports whether the concrete region r satisfies query.
func (r Region) Matches(query Region) bool {
	if !r.Valid() {
		return false
	}

	switch query {
	case RegionAny:
		return true
	case RegionNTSC:
		return r == RegionNTSCU || r == RegionNTSCJ
	}
	return r == query
}

func ParseRegion(s string) Region {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	for r, name := range regionNames {
		if name == s {
			return r
		}
	}
	return RegionInvalid
}
