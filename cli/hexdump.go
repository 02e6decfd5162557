package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

/* 16 bytes per row, grouped into big-endian words */
func hexdump(addr uint32, data []byte, mark []bool) string {
	var result strings.Builder
	red := color.New(color.FgRed)

	for row := 0; row < len(data); row += 16 {
		var hex, ascii strings.Builder

		for i := row; i < row+16; i++ {
			if i >= len(data) {
				hex.WriteString("  ")
				ascii.WriteByte(' ')
			} else {
				b := data[i]
				ch := b
				if ch < 32 || ch > 126 {
					ch = '.'
				}

				if mark != nil && mark[i] {
					hex.WriteString(red.Sprintf("%02x", b))
					ascii.WriteString(red.Sprintf("%c", ch))
				} else {
					fmt.Fprintf(&hex, "%02x", b)
					ascii.WriteByte(ch)
				}
			}
			if i%4 == 3 {
				hex.WriteByte(' ')
			}
		}

		fmt.Fprintf(&result, "%08x  %s |%s|\n", addr+uint32(row), hex.String(), ascii.String())
	}

	return result.String()
}
