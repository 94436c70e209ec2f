package vciph

import "errors"

var (
	ErrPayloadTooLarge  = errors.New("vciph: payload exceeds carrier capacity")
	ErrMarkerNotFound   = errors.New("vciph: marker not found")
	ErrCorruptLength    = errors.New("vciph: corrupt length field")
	ErrIncompleteStream = errors.New("vciph: embedded stream incomplete")
	ErrInvalidGeometry  = errors.New("vciph: invalid frame geometry")
	ErrInvalidOption    = errors.New("vciph: invalid option")
	ErrInvalidPayload   = errors.New("vciph: invalid payload envelope")
	ErrLimitExceeded    = errors.New("vciph: limit exceeded")
	ErrInvalidHeader    = errors.New("vciph: invalid y4m header")
)
