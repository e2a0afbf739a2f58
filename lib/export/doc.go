// Package export renders parsed save files as snapshots in common data formats.
// Snapshots are read-only: they carry the display name, type and value of every
// node and are meant for diffing, scripting and inspection, not for rebuilding a
// save file.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Optional compression of the serialized output
//
// Key Components:
//
//   - ISnapshotSerializer: Core interface that all serializer implementations must satisfy.
//
//   - jsonSerializerImpl / yamlSerializerImpl: human readable output, indented.
//
//   - cborSerializerImpl: CBOR with Core Deterministic Encoding, so equal snapshots
//     produce identical bytes.
//
//   - msgpackSerializerImpl / gobSerializerImpl: compact binary output.
//
//   - Compression: none, zstd or lz4 (frame format) applied after serialization.
//
// Serializers are looked up by format name in a registry; Register adds new ones.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package export
