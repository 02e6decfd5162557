package hack_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/hack"
	"github.com/dolphinhack/hacktools/memio"
)

type recordingBehavior struct {
	initOK  bool
	inits   int
	runs    int
	changes []hack.ModState
	patches func(m *hack.Mod, env *hack.Env)
}

func (r *recordingBehavior) Init(m *hack.Mod, env *hack.Env) bool {
	r.inits++
	if r.patches != nil {
		r.patches(m, env)
	}
	return r.initOK
}

func (r *recordingBehavior) Run(m *hack.Mod, env *hack.Env) {
	r.runs++
}

func (r *recordingBehavior) OnStateChange(m *hack.Mod, prev hack.ModState) {
	r.changes = append(r.changes, prev)
}

var _ = Describe("Mod", func() {
	var (
		sim      *memio.SimMemory
		env      *hack.Env
		behavior *recordingBehavior
		mod      *hack.Mod
	)

	BeforeEach(func() {
		sim = memio.NewSimMemory(memio.SimConfig{
			MEM1Size: 0x10000,
			ICache:   memio.DefaultICacheConfig(),
		})
		sim.Write32(0x80001000, 0x7C0802A6)
		sim.Write32(0x80001004, 0x9421FFF0)
		sim.Write32(0x80001008, 0x38600000)
		sim.Write32(0x8000100C, 0x4E800020)

		env = &hack.Env{
			Mem:    sim,
			Addrs:  addrtable.New(sim, addrtable.Config{}),
			Game:   addrtable.GamePrime1,
			Region: addrtable.RegionNTSCU,
		}

		behavior = &recordingBehavior{
			initOK: true,
			patches: func(m *hack.Mod, env *hack.Env) {
				m.AddPatch(0x80001000, 0x60000000)
				m.AddPatch(0x80001004, 0x38600001, "beam")
				m.AddPatch(0x80001008, 0x4E800020, "beam")
				m.AddPatch(0x8000100C, 0x60000000, "visor")
			},
		}
		mod = hack.NewMod("test", behavior)
	})

	original := []hack.PatchOp{
		{Address: 0x80001000, Value: 0x7C0802A6},
		{Address: 0x80001004, Value: 0x9421FFF0},
		{Address: 0x80001008, Value: 0x38600000},
		{Address: 0x8000100C, Value: 0x4E800020},
	}

	patched := []hack.PatchOp{
		{Address: 0x80001000, Value: 0x60000000},
		{Address: 0x80001004, Value: 0x38600001},
		{Address: 0x80001008, Value: 0x4E800020},
		{Address: 0x8000100C, Value: 0x60000000},
	}

	Describe("construction", func() {
		It("should start disabled and uninitialized", func() {
			Expect(mod.Name()).To(Equal("test"))
			Expect(mod.State()).To(Equal(hack.Disabled))
			Expect(mod.Initialized()).To(BeFalse())
			Expect(mod.ChangesToApply()).To(BeEmpty())
		})
	})

	Describe("initialization", func() {
		It("should capture original instructions on success", func() {
			Expect(mod.Initialize(env)).To(BeTrue())
			Expect(mod.Initialized()).To(BeTrue())
			Expect(mod.Patches()).To(Equal(patched))
			Expect(mod.Original()).To(Equal(original))
			Expect(mod.Active()).To(Equal(patched))
		})

		It("should not run Init again once initialized", func() {
			mod.Initialize(env)
			mod.Initialize(env)
			Expect(behavior.inits).To(Equal(1))
		})

		It("should discard partial patches when Init fails", func() {
			behavior.initOK = false

			Expect(mod.Initialize(env)).To(BeFalse())
			Expect(mod.Initialized()).To(BeFalse())
			Expect(mod.Patches()).To(BeEmpty())
			Expect(mod.Groups()).To(BeEmpty())

			behavior.initOK = true
			Expect(mod.Initialize(env)).To(BeTrue())
			Expect(mod.Patches()).To(HaveLen(4))
		})

		It("should only capture original instructions once", func() {
			mod.Initialize(env)
			sim.Write32(0x80001000, 0x12345678)

			mod.CaptureOriginal(sim)
			Expect(mod.Original()).To(Equal(original))
		})

		It("should refuse new patches after capturing", func() {
			mod.Initialize(env)
			Expect(mod.AddPatch(0x80002000, 0, "late")).To(BeFalse())
			Expect(mod.Slots()).To(HaveLen(4))
			_, ok := mod.GroupState("late")
			Expect(ok).To(BeFalse())
		})

		It("should create groups on first use", func() {
			mod.Initialize(env)

			groups := mod.Groups()
			Expect(groups).To(HaveLen(2))
			Expect(groups[0].Name).To(Equal("beam"))
			Expect(groups[0].Indices).To(Equal([]int{1, 2}))
			Expect(groups[0].State).To(Equal(hack.Enabled))
			Expect(groups[1].Name).To(Equal("visor"))
			Expect(groups[1].Indices).To(Equal([]int{3}))
		})
	})

	Describe("state machine", func() {
		BeforeEach(func() {
			mod.Initialize(env)
		})

		It("should apply original instructions while disabled", func() {
			Expect(mod.ChangesToApply()).To(Equal(original))
		})

		It("should apply active instructions while enabled", func() {
			Expect(mod.Enable()).To(BeTrue())
			Expect(mod.ChangesToApply()).To(Equal(patched))
		})

		It("should apply original instructions while code disabled", func() {
			mod.Enable()
			Expect(mod.SetState(hack.CodeDisabled)).To(BeTrue())
			Expect(mod.ChangesToApply()).To(Equal(original))

			Expect(mod.SetState(hack.Enabled)).To(BeTrue())
			Expect(mod.ChangesToApply()).To(Equal(patched))
		})

		It("should restore original instructions after enable then disable", func() {
			mod.Enable()
			mod.Disable()
			Expect(mod.ChangesToApply()).To(Equal(original))
		})

		It("should treat a repeated enable as a no-op", func() {
			mod.Enable()
			active := mod.Active()

			Expect(mod.Enable()).To(BeFalse())
			Expect(mod.Active()).To(Equal(active))
			Expect(behavior.changes).To(Equal([]hack.ModState{hack.Disabled}))
		})

		It("should reject code disabling a disabled mod", func() {
			Expect(mod.SetState(hack.CodeDisabled)).To(BeFalse())
			Expect(mod.State()).To(Equal(hack.Disabled))
		})

		It("should report the previous state to the behavior", func() {
			mod.Enable()
			mod.SetState(hack.CodeDisabled)
			mod.Disable()

			Expect(behavior.changes).To(Equal([]hack.ModState{hack.Disabled, hack.Enabled, hack.CodeDisabled}))
		})

		It("should only run while enabled or code disabled", func() {
			mod.Run(env)
			Expect(behavior.runs).To(Equal(0))

			mod.Enable()
			mod.Run(env)
			mod.SetState(hack.CodeDisabled)
			mod.Run(env)
			Expect(behavior.runs).To(Equal(2))
		})
	})

	Describe("code groups", func() {
		BeforeEach(func() {
			mod.Initialize(env)
			mod.Enable()
		})

		It("should only touch the group's indices", func() {
			mod.SetGroupState("beam", hack.Disabled)

			Expect(mod.Active()).To(Equal([]hack.PatchOp{
				patched[0],
				original[1],
				original[2],
				patched[3],
			}))
		})

		It("should leave other groups as they were", func() {
			mod.SetGroupState("visor", hack.Disabled)
			mod.SetGroupState("beam", hack.Disabled)
			mod.SetGroupState("beam", hack.Enabled)

			Expect(mod.Active()).To(Equal([]hack.PatchOp{
				patched[0],
				patched[1],
				patched[2],
				original[3],
			}))
		})

		It("should ignore unknown groups and unchanged states", func() {
			before := mod.Active()
			mod.SetGroupState("missing", hack.Disabled)
			mod.SetGroupState("beam", hack.Enabled)

			Expect(mod.Active()).To(Equal(before))
		})

		It("should track the group state", func() {
			mod.SetGroupState("beam", hack.CodeDisabled)

			state, ok := mod.GroupState("beam")
			Expect(ok).To(BeTrue())
			Expect(state).To(Equal(hack.CodeDisabled))
			Expect(mod.Active()[1]).To(Equal(original[1]))

			_, ok = mod.GroupState("missing")
			Expect(ok).To(BeFalse())
		})

		It("should keep disabled groups reverted while the mod is enabled", func() {
			mod.SetGroupState("visor", hack.Disabled)
			Expect(mod.ChangesToApply()[3]).To(Equal(original[3]))
		})
	})

	Describe("applying", func() {
		BeforeEach(func() {
			mod.Initialize(env)
		})

		It("should need nothing while memory holds the original", func() {
			Expect(mod.NeedsApply(sim)).To(BeFalse())
		})

		It("should converge after applying", func() {
			mod.Enable()
			Expect(mod.NeedsApply(sim)).To(BeTrue())

			Expect(mod.ApplyChanges(sim)).To(Equal(4))
			Expect(mod.NeedsApply(sim)).To(BeFalse())
			Expect(sim.Read32(0x80001004)).To(Equal(uint32(0x38600001)))
		})

		It("should detect an external overwrite", func() {
			mod.Enable()
			mod.ApplyChanges(sim)

			sim.Write32(0x80001008, 0x38600000)
			Expect(mod.NeedsApply(sim)).To(BeTrue())
		})

		It("should invalidate every written address", func() {
			Expect(sim.Fetch32(0x80001000)).To(Equal(uint32(0x7C0802A6)))

			mod.Enable()
			mod.ApplyChanges(sim)
			Expect(sim.Fetch32(0x80001000)).To(Equal(uint32(0x60000000)))
		})

		It("should revert memory when disabled again", func() {
			mod.Enable()
			mod.ApplyChanges(sim)
			mod.Disable()

			Expect(mod.NeedsApply(sim)).To(BeTrue())
			mod.ApplyChanges(sim)
			for _, o := range original {
				Expect(sim.Read32(o.Address)).To(Equal(o.Value))
			}
		})
	})

	Describe("reset", func() {
		It("should clear patches, groups and state", func() {
			mod.Initialize(env)
			mod.Enable()
			mod.Reset()

			Expect(mod.State()).To(Equal(hack.Disabled))
			Expect(mod.Initialized()).To(BeFalse())
			Expect(mod.Slots()).To(BeEmpty())
			Expect(mod.Groups()).To(BeEmpty())
			Expect(mod.Original()).To(BeNil())
		})

		It("should capture fresh originals after reinitializing", func() {
			mod.Initialize(env)
			mod.Reset()

			sim.Write32(0x80001000, 0x11111111)
			mod.Initialize(env)
			Expect(mod.Original()[0].Value).To(Equal(uint32(0x11111111)))
		})
	})
})
