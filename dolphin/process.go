// Package dolphin attaches to a running Dolphin emulator and exposes its
// emulated RAM as memio regions.
package dolphin

import "strings"

type Process interface {
	ReadAt(b []byte, addr uintptr) (int, error)
	WriteAt(b []byte, addr uintptr) (int, error)
	PID() int
	Close() error
}

var processNames = []string{"dolphin-emu", "dolphin-emu-nogui", "dolphin", "primehack"}

/* Case and a trailing .exe are ignored */
func isEmulatorName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ".exe")
	for _, m := range processNames {
		if name == m {
			return true
		}
	}
	return false
}

func OpenProcess(pid int) (Process, error) {
	return openProcessInternal(pid)
}

func FindProcess() (int, error) {
	return findProcessInternal()
}
