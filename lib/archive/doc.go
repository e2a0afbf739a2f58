// Package archive provides the low-level binary primitives of the tagged property
// save format. It is the leaf layer every other package builds on.
//
// The package focuses on:
//   - Reading and writing fixed-layout little-endian scalars
//   - The length-prefixed engine string encoding (single-byte or UTF-16)
//   - GUIDs as four unsigned 32-bit words
//   - Seekable in-memory streams so callers can backpatch sizes after the fact
//
// Key Components:
//
//   - Reader: a cursor over an immutable byte slice. Every read that runs past the
//     end of the data fails with ErrStreamTruncated and leaves the cursor unchanged.
//
//   - Writer: a growable buffer with a movable cursor. Writes at a position before
//     the end overwrite existing bytes, which is how a placeholder size is replaced
//     once the payload that follows it has been produced.
//
//   - NullString: a decoded engine string. A zero length prefix decodes to an
//     invalid (null) string and a null string encodes as a zero length prefix with
//     no payload. Decoding trusts the sign of the prefix while encoding derives it
//     from the content: pure 7-bit text is written single-byte, anything else wide.
//     Wide strings with code units UTF-8 cannot hold (unpaired surrogates) keep
//     their original units and are written back unchanged until edited.
//
//   - Guid: the 16 byte identifier used by struct and property tags.
//
// Thread Safety:
//
//	Reader and Writer are not safe for concurrent use. A parse or serialize call owns
//	its stream for the duration of the call.
package archive
