package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/dolphin"
	"github.com/dolphinhack/hacktools/memio"
)

type Context struct {
	bus   *memio.Bus
	mem   memio.MemoryIO
	sim   *memio.SimMemory
	hook  *dolphin.Hook
	addrs *addrtable.Table

	logFunc memio.LogFunc
}

var CLI struct {
	Backend  string `optional enum:"dolphin,sim" default:"dolphin" help:"Memory backend: a running Dolphin process or a simulated console."`
	PID      int    `optional name:"pid" help:"Dolphin process ID, searched for when omitted."`
	Image    string `optional help:"MEM1 image to load into the simulated console."`
	Image2   string `optional name:"image2" help:"MEM2 image to load into the simulated console."`
	LogLevel int    `optional help:"Higher values give more output."`
	Stats    string `optional help:"Serve runtime statistics on this address, e.g. localhost:12600."`

	ListGames ListGamesCmd `cmd help:"List supported games and regions."`
	Names     NamesCmd     `cmd help:"List symbols known for a game."`
	Detect    DetectCmd    `cmd help:"Identify the running game."`
	Lookup    LookupCmd    `cmd help:"Resolve symbols to addresses."`

	ListRegions MEMIOListRegions  `cmd help:"List mapped memory regions."`
	Read        MEMIOReadCmd      `cmd help:"Read and dump memory."`
	Write       MEMIOWriteCmd     `cmd help:"Write value to memory."`
	WriteFile   MEMIOWriteFileCmd `cmd help:"Write file to memory."`

	Run   RunCmd   `cmd help:"Run mods every frame until interrupted, then revert them."`
	Apply ApplyCmd `cmd help:"Run mods for a number of frames and leave the patches in place."`
}

/* Commands that only need the built-in tables */
var offlineCommands = map[string]bool{
	"list-games":   true,
	"names <game>": true,
}

func logFunc(level int, format string, param ...interface{}) {
	if level > CLI.LogLevel {
		return
	}
	str := fmt.Sprintf(format, param...)
	prefix := fmt.Sprintf("HACK(%d):", level)
	if level <= 1 {
		prefix = color.CyanString(prefix)
	}
	fmt.Printf("%s %s\n", prefix, str)
}

func openMemory(c *Context) error {
	switch CLI.Backend {
	case "sim":
		config := memio.DefaultSimConfig()
		config.LogFunc = c.logFunc
		c.sim = memio.NewSimMemory(config)

		if CLI.Image != "" {
			n, err := memio.LoadImageFile(c.sim.MEM1, CLI.Image)
			if err != nil {
				return err
			}
			c.logFunc(1, "Loaded %d bytes into %s", n, memio.MemoryRegionMEM1)
		}
		if CLI.Image2 != "" {
			n, err := memio.LoadImageFile(c.sim.MEM2, CLI.Image2)
			if err != nil {
				return err
			}
			c.logFunc(1, "Loaded %d bytes into %s", n, memio.MemoryRegionMEM2)
		}

		c.bus = c.sim.Bus
		c.mem = c.sim

	default:
		hook, err := dolphin.Attach(dolphin.Config{
			PID:     CLI.PID,
			LogFunc: c.logFunc,
		})
		if err != nil {
			return err
		}

		c.hook = hook
		c.bus = hook.Bus
		c.mem = hook
	}

	c.addrs.SetMemory(c.mem)
	return nil
}

func main() {
	k, err := kong.New(&CLI,
		kong.Description("Inspect and patch the memory of a running Dolphin emulator."),
		kong.Configuration(kong.JSON, "~/.config/hacktools.json", "hacktools.json"),
		kong.NamedMapper("int", intMapper{}),
		kong.NamedMapper("hex", intMapper{base: 16}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return
	}

	if CLI.Stats != "" {
		startStats(CLI.Stats, os.Stdout)
	}

	c := &Context{logFunc: logFunc}
	c.addrs = addrtable.New(nil, addrtable.Config{LogFunc: c.logFunc})
	addrtable.LoadDefaults(c.addrs)

	if !offlineCommands[ctx.Command()] {
		if err := openMemory(c); err != nil {
			fmt.Println("Failed to open memory", err)
			return
		}
		if c.hook != nil {
			defer c.hook.Close()
		}
	}

	err = ctx.Run(c)
	ctx.FatalIfErrorf(err)
}
