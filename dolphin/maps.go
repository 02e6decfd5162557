package dolphin

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

/* The emulator backs MEM1 with a 32MB and MEM2 with a 64MB view */
const (
	mem1MappingSize = 0x2000000
	mem2MappingSize = 0x4000000
)

type Mapping struct {
	Start uintptr
	End   uintptr
	Perms string
	Path  string
}

func (m Mapping) Size() uintptr {
	return m.End - m.Start
}

func ParseMaps(r io.Reader) ([]Mapping, error) {
	var result []Mapping

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		addrRange := strings.SplitN(fields[0], "-", 2)
		if len(addrRange) != 2 {
			continue
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil {
			continue
		}

		m := Mapping{
			Start: uintptr(start),
			End:   uintptr(end),
			Perms: fields[1],
		}
		if len(fields) >= 6 {
			m.Path = strings.Join(fields[5:], " ")
		}
		result = append(result, m)
	}

	return result, scanner.Err()
}

/* FindRAM picks the first writable mapping of each bank size. Mappings backed by
 * the emulator's shared memory file are preferred when present. */
func FindRAM(mappings []Mapping) (mem1 Mapping, mem2 Mapping, err error) {
	var foundMem1, foundMem2 bool

	for pass := 0; pass < 2; pass++ {
		for _, m := range mappings {
			if !strings.HasPrefix(m.Perms, "rw") {
				continue
			}
			if pass == 0 && !strings.Contains(strings.ToLower(m.Path), "dolphin") {
				continue
			}

			if !foundMem1 && m.Size() == mem1MappingSize {
				mem1, foundMem1 = m, true
			} else if foundMem1 && !foundMem2 && m.Size() == mem2MappingSize {
				mem2, foundMem2 = m, true
			}
		}
		if foundMem1 {
			break
		}
	}

	if !foundMem1 {
		return mem1, mem2, ErrorNoRAM
	}
	return mem1, mem2, nil
}

/* Windows reports memory regions instead of a maps file. Emulated RAM is a
 * committed, writable view of a file mapping. */
func regionMapping(base, size uintptr, committed, writable, mapped bool) (Mapping, bool) {
	if !committed || !writable || !mapped || size == 0 {
		return Mapping{}, false
	}

	return Mapping{
		Start: base,
		End:   base + size,
		Perms: "rw-s",
	}, true
}
