package envelope

import "errors"

// Errors
var (
	ErrBadHeader   = errors.New("envelope: bad header: not a bencode envelope document")
	ErrUnknownType = errors.New("envelope: unknown document type")
	ErrTooLarge    = errors.New("envelope: document too large")
	ErrCorrupt     = errors.New("envelope: corrupt compressed body")
)
