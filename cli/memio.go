package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"
	"time"

	"github.com/inancgumus/screen"

	"github.com/dolphinhack/hacktools/memio"
)

type MEMIOListRegions struct {
}

func (l *MEMIOListRegions) Run(c *Context) error {
	fmt.Printf("Region       |       Base |     Length | Parent\n")

	for _, m := range c.bus.Regions() {
		_, base := c.bus.Region(m.GetName())
		parent, offset := memio.RecursiveGetParentAddress(m, 0)
		fmt.Printf("%-13s|   %08x | %10d |", m.GetName(), base, m.GetLength())
		if parent != m {
			fmt.Printf(" %s.%08X", parent.GetName(), offset)
		}
		fmt.Printf("\n")
	}
	return nil
}

/* A console address (0x prefixed hex) or symbol[+offset] */
type Target struct {
	Select GameSelect `embed`
	Addr   string     `arg name:"addr" help:"Console address as 0x-prefixed hex, or symbol[+offset]."`
}

/* Splits a target into either a raw address or a symbol with an offset.
 * Only 0x prefixed values are addresses so symbols like "beef" stay symbols. */
func parseTarget(s string) (addr uint32, symbol string, err error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, "", fmt.Errorf("Invalid address %q", s)
		}
		return uint32(v), "", nil
	}

	symbol = s
	if i := strings.IndexByte(s, '+'); i >= 0 {
		v, err := strconv.ParseUint(s[i+1:], 0, 32)
		if err != nil {
			return 0, "", fmt.Errorf("Invalid offset in %q", s)
		}
		addr = uint32(v)
		symbol = s[:i]
	}
	if symbol == "" {
		return 0, "", fmt.Errorf("Missing symbol in %q", s)
	}
	return addr, symbol, nil
}

func (t Target) resolve(c *Context) (uint32, error) {
	offset, name, err := parseTarget(t.Addr)
	if err != nil {
		return 0, err
	}
	if name == "" {
		return offset, nil
	}

	game, region, err := t.Select.resolve(c)
	if err != nil {
		return 0, err
	}

	addr := c.addrs.Lookup(game, region, name)
	if addr == 0 {
		return 0, fmt.Errorf("Symbol %s does not resolve for %s (%s)", name, game, region)
	}
	return addr + offset, nil
}

type MEMIOReadCmd struct {
	Loop     int    `optional help:"0=Perform once, 1=Mark changes since start, 2=Mark changes since previous iteration."`
	Filename string `optional help:"File to write dump to."`

	Target Target `embed`
	Amount int    `arg name:"amount" help:"Number of bytes to read." optional default:"256"`
}

func (l *MEMIOReadCmd) Run(c *Context) error {
	if l.Loop < 0 || l.Loop > 2 {
		return errors.New("Loop flag out of range")
	}
	if l.Amount <= 0 {
		return errors.New("Amount must be positive")
	}

	addr, err := l.Target.resolve(c)
	if err != nil {
		return err
	}

	var oldBuf []byte
	var mark []bool
	for {
		startTime := time.Now()
		if l.Loop == 2 || mark == nil {
			mark = make([]bool, l.Amount)
		}

		buf := make([]byte, l.Amount)
		if err := c.bus.ReadBytes(addr, buf); err != nil {
			return fmt.Errorf("Read error: %s", err.Error())
		}

		if l.Filename != "" {
			return ioutil.WriteFile(l.Filename, buf, 0644)
		}

		if l.Loop != 0 {
			screen.Clear()
			screen.MoveTopLeft()
			if oldBuf != nil {
				for i, m := range oldBuf {
					if m != buf[i] {
						mark[i] = true
					}
				}
			}
		}
		fmt.Println(hexdump(addr, buf, mark))

		oldBuf = buf

		if l.Loop == 0 {
			break
		}
		d := time.Now().Sub(startTime)
		td := 200 * time.Millisecond
		if d < td {
			time.Sleep(td - d)
		}
	}

	return nil
}

type MEMIOWriteCmd struct {
	Target Target `embed`
	Value  uint32 `arg name:"value" help:"Value to write." type:"hex"`
	Width  string `optional enum:"8,16,32" default:"32" help:"Access width in bits."`
}

func (w MEMIOWriteCmd) Run(c *Context) error {
	addr, err := w.Target.resolve(c)
	if err != nil {
		return err
	}
	if !c.mem.BoundsCheck(addr) {
		return memio.ErrorOutOfBounds
	}

	switch w.Width {
	case "8":
		c.mem.Write8(addr, uint8(w.Value))
	case "16":
		c.mem.Write16(addr, uint16(w.Value))
	default:
		c.mem.Write32(addr, w.Value)
	}
	c.mem.Invalidate(addr)
	return nil
}

type MEMIOWriteFileCmd struct {
	Target   Target `embed`
	Filename string `arg name:"filename" help:"File to read data from."`

	Verify bool `optional name:"verify" help:"Read and verify written file."`
}

func (w MEMIOWriteFileCmd) Run(c *Context) error {
	data, err := ioutil.ReadFile(w.Filename)
	if err != nil {
		return err
	}

	addr, err := w.Target.resolve(c)
	if err != nil {
		return err
	}

	if err := c.bus.WriteBytes(addr, data); err != nil {
		return err
	}
	for a := addr &^ 3; a < addr+uint32(len(data)); a += 4 {
		c.mem.Invalidate(a)
	}
	fmt.Printf("Wrote %d bytes to %08x.\n", len(data), addr)

	if w.Verify {
		readback := make([]byte, len(data))
		if err := c.bus.ReadBytes(addr, readback); err != nil {
			return err
		}

		if !bytes.Equal(readback, data) {
			return errors.New("Failed to verify write")
		}

		fmt.Println("Verification OK.")
	}

	return nil
}
