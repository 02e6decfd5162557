//go:build windows
// +build windows

package dolphin

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const processAccess = windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE |
	windows.PROCESS_VM_OPERATION | windows.PROCESS_QUERY_INFORMATION

/* MEMORY_BASIC_INFORMATION.Type of a file mapping view */
const memMapped = 0x40000

type windowsProcess struct {
	pid    int
	handle windows.Handle
}

func openProcessInternal(pid int) (Process, error) {
	h, err := windows.OpenProcess(processAccess, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, err)
	}

	return &windowsProcess{
		pid:    pid,
		handle: h,
	}, nil
}

func processName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	var name [windows.MAX_PATH]uint16
	if err := windows.GetModuleBaseName(h, 0, &name[0], uint32(len(name))); err != nil {
		return ""
	}
	return windows.UTF16ToString(name[:])
}

func findProcessInternal() (int, error) {
	pids := make([]uint32, 1024)
	var n uint32
	if err := windows.EnumProcesses(pids, &n); err != nil {
		return 0, err
	}

	for _, pid := range pids[:n/4] {
		if pid == 0 {
			continue
		}
		if isEmulatorName(processName(pid)) {
			return int(pid), nil
		}
	}

	return 0, ErrorNotFound
}

func (p *windowsProcess) PID() int {
	return p.pid
}

func (p *windowsProcess) ReadAt(b []byte, addr uintptr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	var n uintptr
	err := windows.ReadProcessMemory(p.handle, addr, &b[0], uintptr(len(b)), &n)
	return int(n), err
}

func (p *windowsProcess) WriteAt(b []byte, addr uintptr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	var n uintptr
	err := windows.WriteProcessMemory(p.handle, addr, &b[0], uintptr(len(b)), &n)
	return int(n), err
}

func (p *windowsProcess) Close() error {
	return windows.CloseHandle(p.handle)
}

func readMapsInternal(pid int) ([]Mapping, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)

	var result []Mapping
	var addr uintptr
	for {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQueryEx(h, addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
			break
		}

		m, ok := regionMapping(mbi.BaseAddress, mbi.RegionSize,
			mbi.State == windows.MEM_COMMIT,
			mbi.Protect == windows.PAGE_READWRITE,
			mbi.Type == memMapped)
		if ok {
			result = append(result, m)
		}

		next := mbi.BaseAddress + mbi.RegionSize
		if next <= addr {
			break
		}
		addr = next
	}

	return result, nil
}
