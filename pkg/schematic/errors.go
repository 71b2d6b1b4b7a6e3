package schematic

import "errors"

// Recoverable construction/deserialization errors. All are wrapped with the
// offending identifier; callers may skip the failing instance and continue
// loading the rest of a document.
var (
	// ErrNilUUID reports a required identifier field holding the all-zero
	// sentinel, which never identifies a live entity.
	ErrNilUUID = errors.New("identifier is the nil UUID")

	// ErrComponentNotFound reports a dangling component-instance reference.
	ErrComponentNotFound = errors.New("no component instance with this UUID in the circuit")

	// ErrVariantItemNotFound reports a symbol-variant-item UUID that is not
	// part of the component's active symbol variant.
	ErrVariantItemNotFound = errors.New("symbol variant item UUID is invalid")

	// ErrSymbolNotFound reports a library symbol that cannot be resolved.
	ErrSymbolNotFound = errors.New("no symbol with this UUID in the project library")

	// ErrDuplicatePin reports a library symbol defining the same pin UUID
	// twice.
	ErrDuplicatePin = errors.New("symbol pin UUID defined multiple times")

	// ErrPinNotInSignalMap reports a library pin missing from the variant
	// item's pin-signal map.
	ErrPinNotInSignalMap = errors.New("symbol pin UUID not found in pin-signal map")

	// ErrPinCountMismatch reports a pin-signal map whose entry count does
	// not equal the symbol's pin count.
	ErrPinCountMismatch = errors.New("pin count does not match the pin-signal map")
)
