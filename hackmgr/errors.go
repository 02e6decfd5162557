package hackmgr

import "errors"

var (
	ErrorDuplicateMod = errors.New("A mod with this name is already registered")
	ErrorUnknownMod   = errors.New("No mod with this name is registered")
)
