package memio

type SimConfig struct {
	MEM1Size int
	MEM2Size int
	ICache   ICacheConfig

	LogFunc LogFunc
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		MEM1Size: MEM1Size,
		MEM2Size: MEM2Size,
		ICache:   DefaultICacheConfig(),
	}
}

// SimMemory is an offline stand-in for a running console: MEM1/MEM2 backed
// by sparse RAM and an instruction cache in front of them.
type SimMemory struct {
	*Bus

	MEM1 MemoryRegion
	MEM2 MemoryRegion

	icache *ICache
}

func NewSimMemory(config SimConfig) *SimMemory {
	s := &SimMemory{}

	s.Bus = NewBus(BusConfig{LogFunc: config.LogFunc}, nil)
	s.icache = NewICache(config.ICache, s.Bus)
	s.Bus.invalidator = s.icache

	if config.MEM1Size > 0 {
		s.MEM1 = NewRAMRegion(MemoryRegionMEM1, config.MEM1Size)
		s.Bus.Map(MEM1Base, s.MEM1)
	}
	if config.MEM2Size > 0 {
		s.MEM2 = NewRAMRegion(MemoryRegionMEM2, config.MEM2Size)
		s.Bus.Map(MEM2Base, s.MEM2)
	}

	return s
}

// Fetch32 reads addr through the instruction cache.
func (s *SimMemory) Fetch32(addr uint32) uint32 {
	return s.icache.Fetch32(addr)
}

func (s *SimMemory) ICache() *ICache {
	return s.icache
}

func (s *SimMemory) WriteString(addr uint32, str string) {
	s.write(addr, []byte(str))
}
