package memio

import "errors"

var (
	ErrorOutOfBounds     = errors.New("Address is outside of emulated memory")
	ErrorShortAccess     = errors.New("Memory access was truncated")
	ErrorReadNotAllowed  = errors.New("Memory can't be read")
	ErrorWriteNotAllowed = errors.New("Memory can't be written")
	ErrorUnknownRegion   = errors.New("Unknown memory region")
	ErrorImageTooLarge   = errors.New("Image does not fit in memory region")
)
