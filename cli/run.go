package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/dolphinhack/hacktools/hack"
	"github.com/dolphinhack/hacktools/hackmgr"
	"github.com/dolphinhack/hacktools/mods"
)

type ModOptions struct {
	Codes    []string `optional type:"existingfile" help:"Code list files, each one becomes a mod named after the file."`
	Freeze   []string `optional help:"Values to pin every frame, symbol[+offset][:8|16|32|f32]=value."`
	Enable   []string `optional help:"Mods to enable, all of them when omitted."`
	GroupOff []string `optional name:"group-off" help:"Code groups to switch off."`
}

func (o ModOptions) build(c *Context) (*hackmgr.Manager, error) {
	enabled := make(map[string]bool)
	for _, name := range o.Enable {
		enabled[name] = true
	}

	mgr := hackmgr.New(c.mem, c.addrs, hackmgr.Config{
		Enabled: func(name string) bool {
			return len(enabled) == 0 || enabled[name]
		},
		LogFunc: c.logFunc,
	})

	for _, path := range o.Codes {
		entries, err := mods.LoadCodeListFile(path)
		if err != nil {
			return nil, err
		}

		list := mods.NewCodeList(entries)
		for _, group := range o.GroupOff {
			list.SetGroup(group, false)
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := mgr.Register(hack.NewMod(name, list)); err != nil {
			return nil, err
		}
	}

	if len(o.Freeze) > 0 {
		var entries []mods.FreezeEntry
		for _, f := range o.Freeze {
			e, err := mods.ParseFreeze(f)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		if err := mgr.Register(hack.NewMod("freeze", mods.NewFreeze(entries))); err != nil {
			return nil, err
		}
	}

	if len(mgr.Mods()) == 0 {
		return nil, errors.New("No mods given, use --codes or --freeze")
	}
	return mgr, nil
}

/* Reports instruction cache behaviour of the simulated console once per second */
func (c *Context) watchICache(mgr *hackmgr.Manager, rate int) {
	if c.sim == nil || rate <= 0 {
		return
	}

	mgr.OnFrameEnd(func() {
		if mgr.Frame()%uint64(rate) != 0 {
			return
		}
		s := c.sim.ICache().Stats()
		c.logFunc(3, "icache: %d fetches, %d hits, %d misses, %d invalidations",
			s.Fetches, s.Hits, s.Misses, s.Invalidations)
	})
}

func printMods(mgr *hackmgr.Manager) {
	for _, mod := range mgr.Mods() {
		state := mod.State().String()
		switch {
		case !mod.Initialized():
			state = color.YellowString("waiting")
		case mod.State() == hack.Enabled:
			state = color.GreenString(state)
		}
		fmt.Printf("%-16s %-14s %3d patches\n", mod.Name(), state, len(mod.Slots()))

		for _, g := range mod.Groups() {
			fmt.Printf("  %-14s %s\n", g.Name, g.State)
		}
	}
}

type RunCmd struct {
	Mods   ModOptions `embed`
	Rate   int        `optional default:"60" help:"Frames per second."`
	Frames uint64     `optional help:"Stop after this many frames, 0 runs until interrupted."`
}

func (r *RunCmd) Run(c *Context) error {
	if r.Rate <= 0 {
		return errors.New("Rate must be positive")
	}

	mgr, err := r.Mods.build(c)
	if err != nil {
		return err
	}
	c.watchICache(mgr, r.Rate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(r.Rate))
	defer ticker.Stop()

	status := ""
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}

		mgr.RunFrame()
		if s := mgr.Status(); s != status {
			fmt.Println(s)
			status = s
		}
		if r.Frames > 0 && mgr.Frame() >= r.Frames {
			break loop
		}
	}

	mgr.RevertAll()
	printMods(mgr)
	fmt.Println(mgr.Status())
	return nil
}

type ApplyCmd struct {
	Mods   ModOptions `embed`
	Frames int        `optional default:"2" help:"Frames to run, group toggles take effect from the second one."`
}

func (a *ApplyCmd) Run(c *Context) error {
	mgr, err := a.Mods.build(c)
	if err != nil {
		return err
	}

	for i := 0; i < a.Frames; i++ {
		mgr.RunFrame()
	}

	printMods(mgr)
	fmt.Println(mgr.Status())
	return nil
}
