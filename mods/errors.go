package mods

import "errors"

var (
	ErrorSyntax        = errors.New("Syntax error")
	ErrorNoSection     = errors.New("Code before the first [game region] header")
	ErrorInvalidWidth  = errors.New("Width must be 8, 16, 32 or f32")
	ErrorUnalignedCode = errors.New("Code address is not word aligned")
)
