//go:build linux
// +build linux

package dolphin

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

/* Transfers larger than this are split, process_vm_* may return short counts */
const maxTransfer = 1 << 20

type linuxProcess struct {
	pid int
}

func openProcessInternal(pid int) (Process, error) {
	if err := unix.Kill(pid, 0); err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, err)
	}

	return &linuxProcess{
		pid: pid,
	}, nil
}

func findProcessInternal() (int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}

		comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
		if err != nil {
			continue
		}

		if isEmulatorName(string(comm)) {
			return pid, nil
		}
	}

	return 0, ErrorNotFound
}

func (p *linuxProcess) PID() int {
	return p.pid
}

func (p *linuxProcess) transfer(write bool, b []byte, addr uintptr) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > maxTransfer {
		return 0, ErrorTooLong
	}

	local := []unix.Iovec{{Base: &b[0]}}
	local[0].SetLen(len(b))

	remote := []unix.RemoteIovec{{Base: addr, Len: len(b)}}

	if write {
		return unix.ProcessVMWritev(p.pid, local, remote, 0)
	}
	return unix.ProcessVMReadv(p.pid, local, remote, 0)
}

func (p *linuxProcess) ReadAt(b []byte, addr uintptr) (int, error) {
	return p.transfer(false, b, addr)
}

func (p *linuxProcess) WriteAt(b []byte, addr uintptr) (int, error) {
	return p.transfer(true, b, addr)
}

func (p *linuxProcess) Close() error {
	return nil
}

func readMapsInternal(pid int) ([]Mapping, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseMaps(f)
}
