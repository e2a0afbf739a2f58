package archive

import "errors"

var (
	// ErrStreamTruncated is returned when fewer bytes are available than a read requires.
	ErrStreamTruncated = errors.New("archive: stream truncated")
	// ErrInvalidString is returned when a length-prefixed string is malformed.
	ErrInvalidString = errors.New("archive: invalid string")
	// ErrInvalidGuid is returned when a textual GUID cannot be parsed.
	ErrInvalidGuid = errors.New("archive: invalid guid")
	// ErrInvalidSeek is returned for a seek outside of the stream.
	ErrInvalidSeek = errors.New("archive: invalid seek")
)
