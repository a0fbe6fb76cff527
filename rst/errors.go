package rst

import "errors"

// Sentinel errors for RST operations. Callers should match with errors.Is.
var (
	// ErrDuplicateRow indicates AddRow was called with a label already
	// present in the target table. Use AddRowIfAbsent for the lenient path.
	ErrDuplicateRow = errors.New("rst: duplicate row label")

	// ErrDuplicateCol indicates AddCol was called with a label already
	// present in the target table. Use AddColIfAbsent for the lenient path.
	ErrDuplicateCol = errors.New("rst: duplicate column label")

	// ErrUnknownColumn indicates a lookup for a column label absent from
	// the table.
	ErrUnknownColumn = errors.New("rst: unknown column label")

	// ErrUnknownRow indicates a lookup for a row label absent from the
	// table.
	ErrUnknownRow = errors.New("rst: unknown row label")

	// ErrOutOfRange indicates a counter value outside [0, Size()) was
	// used where a pre-existing table was required.
	ErrOutOfRange = errors.New("rst: counter value out of range")

	// ErrNegativeCounterValue indicates an attempt to index a table at a
	// negative counter value.
	ErrNegativeCounterValue = errors.New("rst: negative counter value")
)
