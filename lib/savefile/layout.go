package savefile

import (
	"bytes"
	"fmt"
)

// Layout holds the versioned sizes of the regions around the property stream.
// The values are configuration, they are not derived from the file.
type Layout struct {
	// PrefixSize is the number of opaque bytes before the engine version string
	PrefixSize int
	// PaddingSize is the number of opaque bytes after the header integer
	PaddingSize int
	// CompressionMagic marks a compressed file in its first bytes
	CompressionMagic []byte
	// CompressionHeaderSize is the size of the wrapper header preceding the compressed body,
	// the magic included
	CompressionHeaderSize int
}

// Default layout values of the current engine version.
const (
	DefaultPrefixSize            = 0x16
	DefaultPaddingSize           = 0x7AE
	DefaultCompressionMagic      = "ECFD"
	DefaultCompressionHeaderSize = 0x10
)

// DefaultLayout returns the layout of the current engine version.
func DefaultLayout() Layout {
	return Layout{
		PrefixSize:            DefaultPrefixSize,
		PaddingSize:           DefaultPaddingSize,
		CompressionMagic:      []byte(DefaultCompressionMagic),
		CompressionHeaderSize: DefaultCompressionHeaderSize,
	}
}

// Validate checks that the sizes can describe a file.
func (l Layout) Validate() error {
	switch {
	case l.PrefixSize < 0 || l.PaddingSize < 0:
		return fmt.Errorf("%w: negative header block size", ErrLayout)
	case len(l.CompressionMagic) == 0:
		return fmt.Errorf("%w: empty compression magic", ErrLayout)
	case l.CompressionHeaderSize < len(l.CompressionMagic):
		return fmt.Errorf("%w: compression header of %d bytes cannot hold the magic", ErrLayout, l.CompressionHeaderSize)
	}
	return nil
}

// IsCompressed reports whether data starts with the compression magic.
func (l Layout) IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, l.CompressionMagic)
}
