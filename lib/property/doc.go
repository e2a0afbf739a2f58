// Package property implements the tagged property model of the save format and the
// recursive engine that reads it into an editable tree and writes it back.
//
// The package focuses on:
//   - Decoding and encoding the self-describing tag that precedes every property
//   - A registry of value kinds keyed by tag type name and native struct name
//   - Building a tree of nodes from a property stream and flattening it again
//   - Preserving everything it cannot interpret as raw bytes
//
// Key Components:
//
//   - Tag: name, type, size and the type specific metadata of one property. A tag
//     named "None" terminates a field list and carries nothing else.
//
//   - Value: the decoded payload of a leaf. Values decode and encode themselves and
//     expose a string form for display and editing. New kinds are added with Register
//     and RegisterStruct; type names without a factory fall back to opaque nodes.
//
//   - Node and Tree: nodes combine a tag, an optional value and ordered children.
//     Container elements carry their position in ArrayIndex and, inside maps, their
//     Role. Tree.Duplicate and Tree.Delete keep element positions contiguous and notify
//     the parent so derived display fields are refreshed.
//
//   - Decoder: reads properties until a terminator. Tagged payloads are decoded from a
//     bounded copy so a malformed value becomes an opaque node and parsing continues
//     with the next property. Container elements have no size of their own and are
//     decoded from the live stream; a failure there aborts the parse with
//     ErrPositionLost. A map with any failing entry is kept whole as raw bytes.
//
//   - Encoder: writes a tree back. Each tagged property gets a placeholder size that is
//     patched once its payload is written. Arrays of structs also patch the size of
//     their inner tag. A value that fails to encode is replaced by the bytes it was
//     read from.
//
// Thread Safety:
//
//	Decoder, Encoder and trees are not safe for concurrent use. The value registries
//	are safe to use from multiple goroutines.
package property
