package addrtable_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/memio"
)

/* countingMemory records every word read so tests can check dereferences */
type countingMemory struct {
	*memio.SimMemory
	reads []uint32
}

func (c *countingMemory) Read32(addr uint32) uint32 {
	c.reads = append(c.reads, addr)
	return c.SimMemory.Read32(addr)
}

var _ = Describe("Table", func() {
	const (
		gameA = addrtable.GamePrime1
		gameB = addrtable.GamePrime2
	)

	var (
		mem   *countingMemory
		table *addrtable.Table
	)

	BeforeEach(func() {
		mem = &countingMemory{SimMemory: memio.NewSimMemory(memio.SimConfig{
			MEM1Size: memio.MEM1Size,
			ICache:   memio.DefaultICacheConfig(),
		})}
		table = addrtable.New(mem, addrtable.Config{})
	})

	Describe("fixed entries", func() {
		It("should return the registered address per region", func() {
			table.RegisterFixed(gameA, "cursor", addrtable.Offsets{0x80001000, 0x80002000, 0x80003000})

			Expect(table.LookupFixed(gameA, addrtable.RegionNTSCU, "cursor")).To(Equal(uint32(0x80001000)))
			Expect(table.LookupFixed(gameA, addrtable.RegionNTSCJ, "cursor")).To(Equal(uint32(0x80002000)))
			Expect(table.LookupFixed(gameA, addrtable.RegionPAL, "cursor")).To(Equal(uint32(0x80003000)))
		})

		It("should overwrite on re-registration", func() {
			table.RegisterFixed(gameA, "cursor", addrtable.Offsets{1, 2, 3})
			table.RegisterFixed(gameA, "cursor", addrtable.Offsets{4, 5, 6})

			Expect(table.LookupFixed(gameA, addrtable.RegionPAL, "cursor")).To(Equal(uint32(6)))
		})

		It("should keep games apart", func() {
			table.RegisterFixed(gameA, "cursor", addrtable.Offsets{1, 2, 3})

			Expect(table.LookupFixed(gameB, addrtable.RegionNTSCU, "cursor")).To(Equal(uint32(0)))
		})

		It("should return 0 for unknown names, games and regions", func() {
			table.RegisterFixed(gameA, "cursor", addrtable.Offsets{1, 2, 3})
			table.RegisterFixed(addrtable.GameInvalid, "cursor", addrtable.Offsets{1, 2, 3})

			Expect(table.LookupFixed(gameA, addrtable.RegionNTSCU, "missing")).To(Equal(uint32(0)))
			Expect(table.LookupFixed(addrtable.GameInvalid, addrtable.RegionNTSCU, "cursor")).To(Equal(uint32(0)))
			Expect(table.LookupFixed(gameA, addrtable.RegionInvalid, "cursor")).To(Equal(uint32(0)))
			Expect(table.LookupFixed(gameA, addrtable.RegionNTSC, "cursor")).To(Equal(uint32(0)))
		})
	})

	Describe("derived entries", func() {
		BeforeEach(func() {
			table.RegisterFixed(gameA, "state_manager", addrtable.Offsets{0x80001000, 0x80001000, 0x80002000})
		})

		It("should only add the offset for a single element chain", func() {
			table.RegisterDerived(gameA, "player", "state_manager", addrtable.Offsets{0x10, 0x10, 0x10})
			mem.Write32(0x80001010, 0x80005000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80001010)))
			Expect(table.LookupDerived(gameA, addrtable.RegionPAL, "player")).To(Equal(uint32(0x80002010)))
			Expect(mem.reads).To(BeEmpty())
		})

		It("should dereference every element but the last", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0x20, 0x20, 0x20},
				addrtable.Offsets{0x8, 0x8, 0x8})
			mem.Write32(0x80001010, 0x80005000)
			mem.Write32(0x80005020, 0x80009000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80009008)))
			Expect(mem.reads).To(Equal([]uint32{0x80001010, 0x80005020}))
		})

		It("should resolve a pointer stored behind the source", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0x10, 0x10, 0x10})
			mem.Write32(0x80001010, 0x80005000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80005010)))
		})

		It("should return 0 when a dereference leaves RAM", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0x20, 0x20, 0x20},
				addrtable.Offsets{0x8, 0x8, 0x8})
			mem.Write32(0x80001010, 0x80005000)
			mem.Write32(0x80005020, 0x00000000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0)))
		})

		It("should treat an empty chain as invalid", func() {
			table.RegisterDerived(gameA, "player", "state_manager")

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0)))
		})

		It("should not overwrite an existing entry", func() {
			table.RegisterDerived(gameA, "player", "state_manager", addrtable.Offsets{0x10, 0x10, 0x10})
			table.RegisterDerived(gameA, "player", "state_manager", addrtable.Offsets{0x40, 0x40, 0x40})

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80001010)))
		})

		It("should return 0 for an unknown source", func() {
			table.RegisterDerived(gameA, "player", "nothing", addrtable.Offsets{0x10, 0x10, 0x10})

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0)))
		})

		It("should resolve through a derived source", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0, 0, 0})
			table.RegisterDerived(gameA, "player_transform", "player", addrtable.Offsets{0x34, 0x34, 0x34})
			mem.Write32(0x80001010, 0x80005000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0x80005034)))
		})

		It("should remember that a source only resolves as derived", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0, 0, 0})
			table.RegisterDerived(gameA, "player_transform", "player", addrtable.Offsets{0x34, 0x34, 0x34})
			mem.Write32(0x80001010, 0x80005000)

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0x80005034)))

			/* A fixed entry appearing later is not consulted any more */
			table.RegisterFixed(gameA, "player", addrtable.Offsets{0x80007000, 0x80007000, 0x80007000})
			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0x80005034)))
		})

		It("should keep trying the fixed source after a failed resolution", func() {
			table.RegisterDerived(gameA, "player", "state_manager",
				addrtable.Offsets{0x10, 0x10, 0x10},
				addrtable.Offsets{0, 0, 0})
			table.RegisterDerived(gameA, "player_transform", "player", addrtable.Offsets{0x34, 0x34, 0x34})

			/* State manager is not populated yet */
			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0)))

			table.RegisterFixed(gameA, "player", addrtable.Offsets{0x80007000, 0x80007000, 0x80007000})
			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0x80007034)))
		})

		It("should give up on cyclic sources", func() {
			table.RegisterDerived(gameA, "a", "b", addrtable.Offsets{4, 4, 4})
			table.RegisterDerived(gameA, "b", "a", addrtable.Offsets{4, 4, 4})

			Expect(table.LookupDerived(gameA, addrtable.RegionNTSCU, "a")).To(Equal(uint32(0)))
		})

		It("should return 0 for an invalid region", func() {
			table.RegisterDerived(gameA, "player", "state_manager", addrtable.Offsets{0x10, 0x10, 0x10})

			Expect(table.LookupDerived(gameA, addrtable.RegionInvalid, "player")).To(Equal(uint32(0)))
		})
	})

	Describe("listing", func() {
		It("should list fixed and derived names once, sorted", func() {
			table.RegisterFixed(gameA, "b", addrtable.Offsets{})
			table.RegisterDerived(gameA, "a", "b", addrtable.Offsets{})
			table.RegisterDerived(gameA, "b", "c", addrtable.Offsets{})

			Expect(table.Names(gameA)).To(Equal([]string{"a", "b"}))
			Expect(table.IsDerived(gameA, "a")).To(BeTrue())
		})

		It("should prefer fixed entries in Lookup", func() {
			table.RegisterFixed(gameA, "state_manager", addrtable.Offsets{0x80001000, 0x80001000, 0x80001000})
			table.RegisterDerived(gameA, "player", "state_manager", addrtable.Offsets{0x10, 0x10, 0x10})

			Expect(table.Lookup(gameA, addrtable.RegionNTSCU, "state_manager")).To(Equal(uint32(0x80001000)))
			Expect(table.Lookup(gameA, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80001010)))
		})
	})

	Describe("defaults", func() {
		BeforeEach(func() {
			addrtable.LoadDefaults(table)
		})

		It("should register every game", func() {
			for _, g := range addrtable.Games() {
				Expect(table.Names(g)).NotTo(BeEmpty(), g.String())
			}
		})

		It("should resolve every derived source within its game", func() {
			for _, g := range addrtable.Games() {
				for _, name := range table.Names(g) {
					if !table.IsDerived(g, name) {
						continue
					}
					source, ok := table.Source(g, name)
					Expect(ok).To(BeTrue())
					Expect(table.Names(g)).To(ContainElement(source), g.String()+"/"+name)
				}
			}
		})

		It("should find the player through the state manager", func() {
			mem.Write32(0x804e72e8+0x84c, 0x80010000)

			Expect(table.LookupDerived(addrtable.GamePrime1, addrtable.RegionNTSCU, "player")).To(Equal(uint32(0x80010000)))
			Expect(table.LookupDerived(addrtable.GamePrime1, addrtable.RegionNTSCU, "player_transform")).To(Equal(uint32(0x80010034)))
		})
	})
})
