package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ValentinKolb/dSav/lib/common"
	"github.com/ValentinKolb/dSav/lib/savefile"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// Logger is the logger of the command line
var Logger = logger.GetLogger("cli")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Flags and configuration
// --------------------------------------------------------------------------

// SetupLayoutFlags adds the header layout and logging flags to a command
func SetupLayoutFlags(cmd *cobra.Command) {
	defaults := common.DefaultEditorConfig()

	key := "log-level"
	cmd.PersistentFlags().String(key, defaults.LogLevel, WrapString("Log level (debug, info, warn, error)"))

	key = "header-prefix-size"
	cmd.PersistentFlags().Int(key, defaults.HeaderPrefixSize, WrapString("Number of opaque bytes before the engine version in the file header"))

	key = "header-padding-size"
	cmd.PersistentFlags().Int(key, defaults.HeaderPaddingSize, WrapString("Number of opaque bytes after the header integer"))

	key = "compression-magic"
	cmd.PersistentFlags().String(key, defaults.CompressionMagic, WrapString("Signature at the start of compressed files"))

	key = "compression-header-size"
	cmd.PersistentFlags().Int(key, defaults.CompressionHeaderSize, WrapString("Size of the wrapper header in front of the compressed body"))
}

// SetupOutputFlags adds the flags of commands that write a save file
func SetupOutputFlags(cmd *cobra.Command) {
	key := "out"
	cmd.Flags().StringP(key, "o", "", WrapString("Path of the written file (default: overwrite the input file)"))

	key = "compress"
	cmd.Flags().Bool(key, false, WrapString("Write the file compressed, reusing the wrapper header of the input. Only valid for compressed input files"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dsav")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetEditorConfig reads the editor configuration from viper. Keys that are not set
// keep the defaults of the current engine version.
func GetEditorConfig() *common.EditorConfig {
	conf := common.DefaultEditorConfig()
	if viper.IsSet("header-prefix-size") {
		conf.HeaderPrefixSize = viper.GetInt("header-prefix-size")
	}
	if viper.IsSet("header-padding-size") {
		conf.HeaderPaddingSize = viper.GetInt("header-padding-size")
	}
	if viper.IsSet("compression-magic") {
		conf.CompressionMagic = viper.GetString("compression-magic")
	}
	if viper.IsSet("compression-header-size") {
		conf.CompressionHeaderSize = viper.GetInt("compression-header-size")
	}
	if viper.IsSet("log-level") {
		conf.LogLevel = viper.GetString("log-level")
	}
	if viper.IsSet("format") {
		conf.ExportFormat = viper.GetString("format")
	}
	if viper.IsSet("compression") {
		conf.ExportCompression = viper.GetString("compression")
	}
	conf.Compress = viper.GetBool("compress")
	conf.Output = viper.GetString("out")
	return conf
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// --------------------------------------------------------------------------
// File helpers
// --------------------------------------------------------------------------

// LoadFile reads and parses the save file at path
func LoadFile(path string, conf *common.EditorConfig) (*savefile.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := savefile.Parse(data, conf.ToOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Logger.Debugf("loaded %s (%d bytes, compressed=%t)", path, len(data), f.IsCompressed())
	return f, nil
}

// SaveFile serializes f and writes it to the configured output, or to input when no
// output is configured. The file is written to a temporary file first and renamed
// into place, so a failed write leaves the previous file intact.
func SaveFile(f *savefile.File, input string, conf *common.EditorConfig) (string, error) {
	data, err := savefile.Serialize(f, conf.ToOptions())
	if err != nil {
		return "", err
	}

	target := conf.Output
	if target == "" {
		target = input
	}
	if err := WriteFileAtomic(target, data); err != nil {
		return "", err
	}
	Logger.Infof("wrote %s (%d bytes)", target, len(data))
	return target, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	// keep the permissions of the file being replaced
	if info, err := os.Stat(path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
