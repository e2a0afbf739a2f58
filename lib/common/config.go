package common

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dSav/lib/savefile"
)

// --------------------------------------------------------------------------
// helper functions to interface with the save file codec
// --------------------------------------------------------------------------

// ToLayout converts the EditorConfig to the header layout of the codec
func (c *EditorConfig) ToLayout() savefile.Layout {
	return savefile.Layout{
		PrefixSize:            c.HeaderPrefixSize,
		PaddingSize:           c.HeaderPaddingSize,
		CompressionMagic:      []byte(c.CompressionMagic),
		CompressionHeaderSize: c.CompressionHeaderSize,
	}
}

// ToOptions creates the parse and serialize options of the codec
func (c *EditorConfig) ToOptions() savefile.Options {
	return savefile.Options{
		Layout:   c.ToLayout(),
		Compress: c.Compress,
	}
}

// --------------------------------------------------------------------------
// Editor configuration struct
// --------------------------------------------------------------------------

// EditorConfig holds all configuration parameters of the command line editor.
type EditorConfig struct {
	// header layout, versioned with the engine
	HeaderPrefixSize      int
	HeaderPaddingSize     int
	CompressionMagic      string
	CompressionHeaderSize int

	// output settings
	Compress bool
	Output   string

	// export settings
	ExportFormat      string
	ExportCompression string

	// Logging configuration
	LogLevel string
}

// DefaultEditorConfig returns the configuration matching the current engine version
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		HeaderPrefixSize:      savefile.DefaultPrefixSize,
		HeaderPaddingSize:     savefile.DefaultPaddingSize,
		CompressionMagic:      savefile.DefaultCompressionMagic,
		CompressionHeaderSize: savefile.DefaultCompressionHeaderSize,
		ExportFormat:          "json",
		ExportCompression:     "none",
		LogLevel:              "info",
	}
}

// String returns a formatted string representation of the configuration
func (c *EditorConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Header layout
	addSection("Header Layout")
	addField("Prefix Size", fmt.Sprintf("0x%X bytes", c.HeaderPrefixSize))
	addField("Padding Size", fmt.Sprintf("0x%X bytes", c.HeaderPaddingSize))
	addField("Compression Magic", fmt.Sprintf("%q", c.CompressionMagic))
	addField("Wrapper Header Size", fmt.Sprintf("0x%X bytes", c.CompressionHeaderSize))

	// Output
	addSection("Output")
	output := c.Output
	if output == "" {
		output = "(in place)"
	}
	addField("File", output)
	addField("Compress", fmt.Sprintf("%t", c.Compress))

	// Export
	addSection("Export")
	addField("Format", c.ExportFormat)
	addField("Compression", c.ExportCompression)

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
