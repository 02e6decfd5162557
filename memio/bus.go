// Package memio provides sized, big-endian access to the emulated console's
// address space on top of one or more memory regions.
package memio

import (
	"encoding/binary"
	"math"
	"sort"
)

type LogFunc func(level int, format string, param ...interface{})

// MemoryIO is the set of primitives the patch engine and mods use to talk to
// the emulated console.
type MemoryIO interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Read64(addr uint32) uint64
	ReadF32(addr uint32) float32

	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
	Write32(addr uint32, value uint32)
	Write64(addr uint32, value uint64)
	WriteF32(addr uint32, value float32)

	// Invalidate must be called after writing an address that may be fetched
	// as an instruction.
	Invalidate(addr uint32)

	// BoundsCheck reports whether addr lies inside emulated RAM.
	BoundsCheck(addr uint32) bool
}

type Invalidator interface {
	Invalidate(addr uint32)
}

type BusConfig struct {
	LogFunc LogFunc
}

type busMapping struct {
	base   uint32
	region MemoryRegion
}

// Bus maps memory regions at console addresses. Reads of unmapped memory
// return zero and writes to it are dropped, matching the emulator's own
// fire-and-forget semantics.
type Bus struct {
	mappings    []busMapping
	invalidator Invalidator
	config      BusConfig
}

func NewBus(config BusConfig, invalidator Invalidator) *Bus {
	return &Bus{
		invalidator: invalidator,
		config:      config,
	}
}

func (b *Bus) log(level int, format string, param ...interface{}) {
	if b.config.LogFunc != nil {
		b.config.LogFunc(level, format, param...)
	}
}

func (b *Bus) Map(base uint32, region MemoryRegion) {
	b.mappings = append(b.mappings, busMapping{base: base, region: region})
	sort.Slice(b.mappings, func(i, j int) bool {
		return b.mappings[i].base < b.mappings[j].base
	})
	b.log(2, "Mapped %s at %08x (%d bytes)", region.GetName(), base, region.GetLength())
}

func (b *Bus) Region(name MemoryRegionNameType) (MemoryRegion, uint32) {
	for _, m := range b.mappings {
		if m.region.GetName() == name {
			return m.region, m.base
		}
	}
	return nil, 0
}

func (b *Bus) Regions() []MemoryRegion {
	var result []MemoryRegion
	for _, m := range b.mappings {
		result = append(result, m.region)
	}
	return result
}

func (b *Bus) find(addr uint32, size int) (MemoryRegion, int, bool) {
	for _, m := range b.mappings {
		if addr < m.base {
			continue
		}
		offset := uint64(addr - m.base)
		if offset+uint64(size) <= uint64(m.region.GetLength()) {
			return m.region, int(offset), true
		}
	}
	return nil, 0, false
}

func (b *Bus) BoundsCheck(addr uint32) bool {
	_, _, ok := b.find(addr, 1)
	return ok
}

func (b *Bus) ReadBytes(addr uint32, buf []byte) error {
	region, offset, ok := b.find(addr, len(buf))
	if !ok {
		return ErrorOutOfBounds
	}

	n, err := region.Access(false, offset, buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrorShortAccess
	}
	return nil
}

func (b *Bus) WriteBytes(addr uint32, buf []byte) error {
	region, offset, ok := b.find(addr, len(buf))
	if !ok {
		return ErrorOutOfBounds
	}

	n, err := region.Access(true, offset, buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrorShortAccess
	}
	return nil
}

func (b *Bus) read(addr uint32, buf []byte) {
	if err := b.ReadBytes(addr, buf); err != nil {
		b.log(3, "Read of %d bytes at %08x failed: %v", len(buf), addr, err)
		for i := range buf {
			buf[i] = 0
		}
	}
}

func (b *Bus) write(addr uint32, buf []byte) {
	if err := b.WriteBytes(addr, buf); err != nil {
		b.log(3, "Write of %d bytes at %08x failed: %v", len(buf), addr, err)
	}
}

func (b *Bus) Read8(addr uint32) uint8 {
	var buf [1]byte
	b.read(addr, buf[:])
	return buf[0]
}

func (b *Bus) Read16(addr uint32) uint16 {
	var buf [2]byte
	b.read(addr, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (b *Bus) Read32(addr uint32) uint32 {
	var buf [4]byte
	b.read(addr, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (b *Bus) Read64(addr uint32) uint64 {
	var buf [8]byte
	b.read(addr, buf[:])
	return binary.BigEndian.Uint64(buf[:])
}

func (b *Bus) ReadF32(addr uint32) float32 {
	return math.Float32frombits(b.Read32(addr))
}

func (b *Bus) Write8(addr uint32, value uint8) {
	b.write(addr, []byte{value})
}

func (b *Bus) Write16(addr uint32, value uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	b.write(addr, buf[:])
}

func (b *Bus) Write32(addr uint32, value uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	b.write(addr, buf[:])
}

func (b *Bus) Write64(addr uint32, value uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)
	b.write(addr, buf[:])
}

func (b *Bus) WriteF32(addr uint32, value float32) {
	b.Write32(addr, math.Float32bits(value))
}

func (b *Bus) Invalidate(addr uint32) {
	if b.invalidator == nil {
		return
	}
	b.invalidator.Invalidate(addr)
}
