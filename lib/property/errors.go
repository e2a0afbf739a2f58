package property

import "errors"

// Decode errors. Recoverable failures are stored on the node, the others abort the parse.
var (
	ErrUnsupportedType        = errors.New("property: unsupported type")
	ErrValueDecode            = errors.New("property: failed to decode value")
	ErrUnsupportedTextHistory = errors.New("property: unsupported text history type")
	ErrMapEntry               = errors.New("property: failed to deserialize child")
	ErrTrailingBytes          = errors.New("property: value did not consume its payload")
	ErrPositionLost           = errors.New("property: stream position lost")
	ErrRemovedEntries         = errors.New("property: removed container entries are not supported")
)

// Encode errors.
var (
	ErrValueEncode = errors.New("property: failed to encode value")
	ErrMalformed   = errors.New("property: malformed node")
)

// Edit errors.
var (
	ErrNotEditable  = errors.New("property: not editable")
	ErrInvalidValue = errors.New("property: invalid value")
	ErrNodeNotFound = errors.New("property: node not found")
)
