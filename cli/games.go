package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/dolphinhack/hacktools/addrtable"
	"github.com/dolphinhack/hacktools/hackmgr"
)

func detect(c *Context) hackmgr.Detection {
	return hackmgr.Detect(c.mem, hackmgr.DefaultSignatures)
}

type ListGamesCmd struct {
}

func (l *ListGamesCmd) Run(c *Context) error {
	fmt.Println("Disc   | Game              | Region")
	for _, s := range hackmgr.DefaultSignatures {
		fmt.Printf("%s | %-17s | %s\n", s.ID, s.Game, s.Region)
	}
	return nil
}

type NamesCmd struct {
	Game string `arg name:"game" help:"Game to list symbols for."`
}

func (n *NamesCmd) Run(c *Context) error {
	game := addrtable.ParseGame(n.Game)
	if !game.Valid() {
		return errors.New("Unknown game")
	}

	for _, name := range c.addrs.Names(game) {
		if source, ok := c.addrs.Source(game, name); ok {
			fmt.Printf("%-20s <- %s\n", name, source)
			continue
		}

		fmt.Printf("%-20s", name)
		for r := addrtable.Region(0); r.Valid(); r++ {
			fmt.Printf(" %s=%08x", r, c.addrs.LookupFixed(game, r, name))
		}
		fmt.Printf("\n")
	}
	return nil
}

type DetectCmd struct {
}

func (d *DetectCmd) Run(c *Context) error {
	det := detect(c)
	if det.ID == "" {
		return errors.New("No disc header found")
	}

	fmt.Printf("Disc:     %s rev %d\n", det.ID, det.Revision)
	if !det.Game.Valid() {
		fmt.Println(color.YellowString("Game:     unsupported"))
		return nil
	}
	fmt.Printf("Game:     %s\n", det.Game)
	fmt.Printf("Region:   %s\n", det.Region)
	return nil
}

type LookupCmd struct {
	Select GameSelect `embed`
	Names  []string   `arg name:"name" help:"Symbols to resolve."`
}

func (l *LookupCmd) Run(c *Context) error {
	game, region, err := l.Select.resolve(c)
	if err != nil {
		return err
	}

	for _, name := range l.Names {
		addr := c.addrs.Lookup(game, region, name)
		kind := "fixed"
		if c.addrs.IsDerived(game, name) && c.addrs.LookupFixed(game, region, name) == 0 {
			kind = "derived"
		}

		if addr == 0 {
			fmt.Printf("%-20s %s\n", name, color.RedString("unresolved"))
			continue
		}
		fmt.Printf("%-20s %08x (%s)\n", name, addr, kind)
	}
	return nil
}
