package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/dSav/lib/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
}

func TestGetEditorConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		assert.Equal(t, common.DefaultEditorConfig(), GetEditorConfig())
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("header-padding-size", 0x10)
		viper.Set("compression-magic", "ABCD")
		viper.Set("out", "edited.sav")
		viper.Set("compress", true)

		conf := GetEditorConfig()
		assert.Equal(t, 0x10, conf.HeaderPaddingSize)
		assert.Equal(t, "ABCD", conf.CompressionMagic)
		assert.Equal(t, "edited.sav", conf.Output)
		assert.True(t, conf.Compress)
		assert.Equal(t, common.DefaultEditorConfig().HeaderPrefixSize, conf.HeaderPrefixSize)
	})

	t.Run("environment", func(t *testing.T) {
		viper.Reset()
		t.Setenv("DSAV_LOG_LEVEL", "debug")
		InitConfig()
		assert.Equal(t, "debug", GetEditorConfig().LogLevel)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GameUserSettings.sav")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "out.sav"), []byte("x"))
	assert.Error(t, err)
}
