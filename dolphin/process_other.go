//go:build !linux && !windows
// +build !linux,!windows

package dolphin

func openProcessInternal(pid int) (Process, error) {
	return nil, ErrorUnsupported
}

func findProcessInternal() (int, error) {
	return 0, ErrorUnsupported
}

func readMapsInternal(pid int) ([]Mapping, error) {
	return nil, ErrorUnsupported
}
