package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")

	// Configuration faults. Fatal at window load.
	ErrMissingWidget    = errors.New("required widget missing from layout")
	ErrMissingFont      = errors.New("font not registered")
	ErrUnknownResource  = errors.New("unknown resource")
	ErrUnknownType      = errors.New("widget type not registered")
	ErrLayoutParse      = errors.New("layout parse failed")
	ErrTreeDestroyed    = errors.New("layout tree already destroyed")
	ErrWindowNotCreated = errors.New("window not created")

	// Subscription discipline faults.
	ErrStaleHandle   = errors.New("stale or unknown subscription handle")
	ErrNotLoaded     = errors.New("controller is not loaded")
	ErrAlreadyLoaded = errors.New("controller is already loaded")
	ErrNotStarted    = errors.New("collaborator not initialized")

	// Inbound settings messages.
	ErrInvalidSetting = errors.New("invalid setting value")
)
