package memio

import (
	"encoding/binary"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// ICacheConfig describes the simulated instruction cache geometry.
type ICacheConfig struct {
	Size          int
	Associativity int
	BlockSize     int
}

// DefaultICacheConfig matches the 32KB, 8-way, 32B line L1 instruction cache
// of the console CPU.
func DefaultICacheConfig() ICacheConfig {
	return ICacheConfig{
		Size:          32 * 1024,
		Associativity: 8,
		BlockSize:     32,
	}
}

type ICacheStats struct {
	Fetches       uint64
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// ICache keeps copies of fetched instruction lines. A fetch keeps returning
// the copy until the line is invalidated, so writes to code are only seen
// after Invalidate.
type ICache struct {
	config    ICacheConfig
	directory *akitacache.DirectoryImpl
	dataStore [][]byte
	backing   *Bus
	stats     ICacheStats
}

func NewICache(config ICacheConfig, backing *Bus) *ICache {
	numSets := config.Size / (config.Associativity * config.BlockSize)

	dataStore := make([][]byte, numSets*config.Associativity)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &ICache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

func (c *ICache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *ICache) blockAddr(addr uint32) uint64 {
	return uint64(addr) / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
}

// Fetch32 returns the instruction word at addr as the CPU would see it.
func (c *ICache) Fetch32(addr uint32) uint32 {
	c.stats.Fetches++

	addr &^= 3
	blockAddr := c.blockAddr(addr)
	offset := uint64(addr) - blockAddr

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return binary.BigEndian.Uint32(c.dataStore[c.blockIndex(block)][offset:])
	}

	c.stats.Misses++
	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return c.backing.Read32(addr)
	}

	data := c.dataStore[c.blockIndex(victim)]
	c.backing.read(uint32(blockAddr), data)

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	return binary.BigEndian.Uint32(data[offset:])
}

func (c *ICache) Invalidate(addr uint32) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		c.stats.Invalidations++
		block.IsValid = false
	}
}

func (c *ICache) Reset() {
	c.directory.Reset()
	c.stats = ICacheStats{}
}

func (c *ICache) Stats() ICacheStats {
	return c.stats
}
