package memio

type MemoryRegionNameType string

const (
	MemoryRegionMEM1 MemoryRegionNameType = "MEM1"
	MemoryRegionMEM2 MemoryRegionNameType = "MEM2"
)

/* Console view of the two RAM banks */
const (
	MEM1Base = 0x80000000
	MEM1Size = 0x01800000
	MEM2Base = 0x90000000
	MEM2Size = 0x04000000
)

type MemoryRegion interface {
	GetLength() int
	Access(write bool, addr int, buf []byte) (int, error)
	GetParent() (MemoryRegion, int)
	GetName() MemoryRegionNameType
}

type regionCompleteIO struct {
	MemoryRegion
}

/* RegionWrapCompleteIO retries short transfers until the buffer is done or the
 * underlying region stops making progress */
func RegionWrapCompleteIO(parent MemoryRegion) MemoryRegion {
	return regionCompleteIO{
		MemoryRegion: parent,
	}
}

func (m regionCompleteIO) Access(write bool, addr int, buf []byte) (int, error) {
	total := 0
	for len(buf) > 0 {
		n, err := m.MemoryRegion.Access(write, addr+total, buf)
		total += n
		buf = buf[n:]

		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, ErrorShortAccess
		}
	}

	return total, nil
}

type regionPartial struct {
	parent MemoryRegion
	offset int
	length int
	name   MemoryRegionNameType
}

func RegionWrapPartial(name MemoryRegionNameType, parent MemoryRegion, offset int, length int) MemoryRegion {
	return regionPartial{
		parent: parent,
		offset: offset,
		length: length,
		name:   name,
	}
}

func (h regionPartial) GetName() MemoryRegionNameType {
	return h.name
}

func (h regionPartial) GetLength() int {
	return h.length
}

func (h regionPartial) GetParent() (MemoryRegion, int) {
	return h.parent, h.offset
}

func (h regionPartial) Access(write bool, addr int, buf []byte) (int, error) {
	if len(buf)+addr > h.length {
		if addr > h.length {
			return 0, nil
		}
		buf = buf[:h.length-addr]
	}

	return h.parent.Access(write, h.offset+addr, buf)
}

func RecursiveGetParentAddress(region MemoryRegion, offset int) (MemoryRegion, int) {
	for {
		var parentOffset int
		prevRegion := region
		region, parentOffset = region.GetParent()

		offset += parentOffset

		if region == nil {
			return prevRegion, offset
		}
	}
}
