package memio

import (
	"io"
	"os"
)

const ramPageSize = 0x1000

/* RAM backed region that only allocates pages once they are written */
type ramRegion struct {
	name   MemoryRegionNameType
	length int
	pages  map[int][]byte
}

func NewRAMRegion(name MemoryRegionNameType, length int) MemoryRegion {
	return &ramRegion{
		name:   name,
		length: length,
		pages:  make(map[int][]byte),
	}
}

func (r *ramRegion) GetName() MemoryRegionNameType {
	return r.name
}

func (r *ramRegion) GetLength() int {
	return r.length
}

func (r *ramRegion) GetParent() (MemoryRegion, int) {
	return nil, 0
}

func (r *ramRegion) Access(write bool, addr int, buf []byte) (int, error) {
	if addr < 0 || addr >= r.length {
		return 0, nil
	}
	if addr+len(buf) > r.length {
		buf = buf[:r.length-addr]
	}

	total := 0
	for len(buf) > 0 {
		index := addr / ramPageSize
		offset := addr % ramPageSize

		n := ramPageSize - offset
		if n > len(buf) {
			n = len(buf)
		}

		page, ok := r.pages[index]
		if write {
			if !ok {
				page = make([]byte, ramPageSize)
				r.pages[index] = page
			}
			copy(page[offset:], buf[:n])
		} else if ok {
			copy(buf[:n], page[offset:])
		} else {
			for i := range buf[:n] {
				buf[i] = 0
			}
		}

		total += n
		addr += n
		buf = buf[n:]
	}

	return total, nil
}

func LoadImage(region MemoryRegion, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if len(data) > region.GetLength() {
		return 0, ErrorImageTooLarge
	}

	return RegionWrapCompleteIO(region).Access(true, 0, data)
}

func LoadImageFile(region MemoryRegion, filename string) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return LoadImage(region, f)
}
