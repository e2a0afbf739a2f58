// Package savefile reads and writes complete save files: the optional compression
// wrapper, the opaque header, the property stream and the trailing footer.
//
// A compressed file starts with a magic signature. Its first CompressionHeaderSize
// bytes are a wrapper header and the rest is a zlib stream holding the uncompressed
// file. The header holds a fixed number of opaque bytes, the engine version string,
// an integer and another opaque block; the sizes are a versioned Layout. Everything
// after the final terminator of the property stream is kept as the footer.
//
// Parse followed by Serialize reproduces the uncompressed input byte for byte.
// Parse and Serialize update package metrics that WriteMetrics exposes in the
// Prometheus text format.
package savefile
