package hackmgr

import (
	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/memio"
)

/* Disc header copied to the start of MEM1 by the IPL/apploader */
const (
	discIDAddr       = 0x80000000
	discMakerAddr    = 0x80000004
	discRevisionAddr = 0x80000007
)

/* The trilogy disc boots one of three DOLs behind the same disc ID; the word
 * at this address differs between them */
const trilogyDolCheckAddr = 0x80004164

type WordCheck struct {
	Addr  uint32
	Value uint32
}

type Signature struct {
	ID     string
	Game   addrtable.Game
	Region addrtable.Region

	/* Only needed when several signatures share an ID; checked in order */
	Check *WordCheck
}

type Detection struct {
	ID       string
	Revision uint8
	Game     addrtable.Game
	Region   addrtable.Region
}

var DefaultSignatures = []Signature{
	{ID: "GM8E01", Game: addrtable.GamePrime1GCN, Region: addrtable.RegionNTSCU},
	{ID: "GM8J01", Game: addrtable.GamePrime1GCN, Region: addrtable.RegionNTSCJ},
	{ID: "GM8P01", Game: addrtable.GamePrime1GCN, Region: addrtable.RegionPAL},
	{ID: "G2ME01", Game: addrtable.GamePrime2GCN, Region: addrtable.RegionNTSCU},
	{ID: "G2MJ01", Game: addrtable.GamePrime2GCN, Region: addrtable.RegionNTSCJ},
	{ID: "G2MP01", Game: addrtable.GamePrime2GCN, Region: addrtable.RegionPAL},
	{ID: "RM3E01", Game: addrtable.GamePrime3Standalone, Region: addrtable.RegionNTSCU},
	{ID: "RM3J01", Game: addrtable.GamePrime3Standalone, Region: addrtable.RegionNTSCJ},
	{ID: "RM3P01", Game: addrtable.GamePrime3Standalone, Region: addrtable.RegionPAL},

	{ID: "R3ME01", Game: addrtable.GamePrime1, Region: addrtable.RegionNTSCU, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x800053a4}},
	{ID: "R3ME01", Game: addrtable.GamePrime2, Region: addrtable.RegionNTSCU, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x80005b20}},
	{ID: "R3ME01", Game: addrtable.GamePrime3, Region: addrtable.RegionNTSCU, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x80005c14}},
	{ID: "R3ME01", Game: addrtable.GameMenu, Region: addrtable.RegionNTSCU},

	{ID: "R3MP01", Game: addrtable.GamePrime1, Region: addrtable.RegionPAL, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x800053c4}},
	{ID: "R3MP01", Game: addrtable.GamePrime2, Region: addrtable.RegionPAL, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x80005b40}},
	{ID: "R3MP01", Game: addrtable.GamePrime3, Region: addrtable.RegionPAL, Check: &WordCheck{Addr: trilogyDolCheckAddr, Value: 0x80005c34}},
	{ID: "R3MP01", Game: addrtable.GameMenu, Region: addrtable.RegionPAL},
}

func readDiscID(mem memio.MemoryIO) string {
	var id [6]byte
	word := mem.Read32(discIDAddr)
	half := mem.Read16(discMakerAddr)

	id[0] = byte(word >> 24)
	id[1] = byte(word >> 16)
	id[2] = byte(word >> 8)
	id[3] = byte(word)
	id[4] = byte(half >> 8)
	id[5] = byte(half)

	for _, c := range id {
		if c < 0x20 || c > 0x7e {
			return ""
		}
	}
	return string(id[:])
}

// Detect identifies the running game from the disc header in memory. An
// unknown header yields GameInvalid/RegionInvalid.
func Detect(mem memio.MemoryIO, signatures []Signature) Detection {
	d := Detection{
		Game:   addrtable.GameInvalid,
		Region: addrtable.RegionInvalid,
	}

	d.ID = readDiscID(mem)
	if d.ID == "" {
		return d
	}
	d.Revision = mem.Read8(discRevisionAddr)

	for _, s := range signatures {
		if s.ID != d.ID {
			continue
		}
		if s.Check != nil && mem.Read32(s.Check.Addr) != s.Check.Value {
			continue
		}

		d.Game = s.Game
		d.Region = s.Region
		return d
	}

	return d
}
