package core

import (
	"errors"
)

var (
	ErrUnknownBackend          = errors.New("unknown render system backend")
	ErrNativeContextMissing    = errors.New("native context missing or of the wrong type")
	ErrInvalidConfig           = errors.New("invalid configuration")
	ErrAssetNotFound           = errors.New("asset not found")
	ErrUnsupportedShaderSource = errors.New("unsupported shader source type")
	ErrObjectNotOwned          = errors.New("object was not created by this render system")
	ErrUnknown                 = errors.New("unknown")
)
