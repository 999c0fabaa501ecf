package control

import "errors"

var (
	// ErrUnknownParameter is returned for IDs that name no parameter.
	ErrUnknownParameter = errors.New("control: unknown parameter")
	// ErrLayerOutOfRange is returned for layer indices outside [0, NumLayers).
	ErrLayerOutOfRange = errors.New("control: layer index out of range")
)
