package dolphin

import (
	"github.com/dolphinhack/hacktools/memio"
)

type Config struct {
	PID int

	LogFunc memio.LogFunc
}

// Hook is an attached emulator. Its Bus maps the emulated RAM banks at their
// console addresses.
type Hook struct {
	*memio.Bus

	proc   Process
	config Config
}

type processRegion struct {
	proc   Process
	base   uintptr
	length int
	name   memio.MemoryRegionNameType
}

func (r processRegion) GetName() memio.MemoryRegionNameType {
	return r.name
}

func (r processRegion) GetLength() int {
	return r.length
}

func (r processRegion) GetParent() (memio.MemoryRegion, int) {
	return nil, 0
}

func (r processRegion) Access(write bool, addr int, buf []byte) (int, error) {
	if addr > r.length {
		return 0, nil
	}
	if addr+len(buf) > r.length {
		buf = buf[:r.length-addr]
	}
	if len(buf) > maxTransferChunk {
		buf = buf[:maxTransferChunk]
	}

	if write {
		return r.proc.WriteAt(buf, r.base+uintptr(addr))
	}
	return r.proc.ReadAt(buf, r.base+uintptr(addr))
}

const maxTransferChunk = 1 << 20

/* The JIT lives inside the emulator; an external process can't flush it */
type hookInvalidator struct {
	config Config
}

func (h hookInvalidator) Invalidate(addr uint32) {
	if h.config.LogFunc != nil {
		h.config.LogFunc(3, "Cannot invalidate %08x from outside the emulator", addr)
	}
}

func Attach(config Config) (*Hook, error) {
	pid := config.PID
	if pid == 0 {
		var err error
		pid, err = FindProcess()
		if err != nil {
			return nil, err
		}
	}

	proc, err := OpenProcess(pid)
	if err != nil {
		return nil, err
	}

	mappings, err := readMapsInternal(pid)
	if err != nil {
		proc.Close()
		return nil, err
	}

	return attachMappings(proc, mappings, config)
}

func attachMappings(proc Process, mappings []Mapping, config Config) (*Hook, error) {
	mem1, mem2, err := FindRAM(mappings)
	if err != nil {
		proc.Close()
		return nil, err
	}

	h := &Hook{
		proc:   proc,
		config: config,
	}
	h.Bus = memio.NewBus(memio.BusConfig{LogFunc: config.LogFunc}, hookInvalidator{config: config})

	if config.LogFunc != nil {
		config.LogFunc(1, "Attached to pid %d, MEM1 at %x", proc.PID(), mem1.Start)
	}

	mem1View := memio.RegionWrapCompleteIO(processRegion{
		proc:   proc,
		base:   mem1.Start,
		length: int(mem1.Size()),
		name:   "PROCMEM1",
	})
	h.Map(memio.MEM1Base, memio.RegionWrapPartial(memio.MemoryRegionMEM1, mem1View, 0, memio.MEM1Size))

	if mem2.Size() > 0 {
		if config.LogFunc != nil {
			config.LogFunc(1, "MEM2 at %x", mem2.Start)
		}

		mem2View := memio.RegionWrapCompleteIO(processRegion{
			proc:   proc,
			base:   mem2.Start,
			length: int(mem2.Size()),
			name:   "PROCMEM2",
		})
		h.Map(memio.MEM2Base, memio.RegionWrapPartial(memio.MemoryRegionMEM2, mem2View, 0, memio.MEM2Size))
	}

	return h, nil
}

func (h *Hook) PID() int {
	return h.proc.PID()
}

func (h *Hook) Close() error {
	return h.proc.Close()
}
