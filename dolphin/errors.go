package dolphin

import "errors"

var (
	ErrorNotFound    = errors.New("No running emulator process found")
	ErrorNoRAM       = errors.New("Emulated RAM mapping not found")
	ErrorUnsupported = errors.New("Process memory access is not supported on this platform")
	ErrorTooLong     = errors.New("Transfer is too long")
)
