package savefile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------------
// Fixtures
// --------------------------------------------------------------------------

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

func writeProp(w *archive.Writer, tag *property.Tag, payload []byte) {
	tag.Size = int32(len(payload))
	_, _ = tag.Encode(w)
	_, _ = w.Write(payload)
}

// buildFile assembles an uncompressed save file for layout l
func buildFile(l Layout, footer []byte) []byte {
	w := archive.NewWriter()
	_, _ = w.Write(pattern(l.PrefixSize, 1))
	_ = w.WriteString(archive.NewString("++Fortnite+Release-30.10-CL-36959497-Windows"))
	_ = w.WriteInt32(3)
	_, _ = w.Write(pattern(l.PaddingSize, 9))

	val := archive.NewWriter()
	_ = val.WriteInt32(60)
	writeProp(w, &property.Tag{Name: "FrameRateLimit", Type: property.TypeInt}, val.Bytes())

	val = archive.NewWriter()
	_ = val.WriteString(archive.NewString("de"))
	writeProp(w, &property.Tag{Name: "Language", Type: property.TypeStr}, val.Bytes())

	writeProp(w, &property.Tag{Name: "bShowFPS", Type: property.TypeBool, BoolVal: 1}, nil)
	writeProp(w, &property.Tag{Name: "Binding", Type: "SoftObjectProperty"}, []byte{1, 2, 3, 4, 5})

	_, _ = property.Terminator().Encode(w)
	_, _ = w.Write(footer)
	return append([]byte(nil), w.Bytes()...)
}

func wrapperHeader(l Layout) []byte {
	h := make([]byte, l.CompressionHeaderSize)
	copy(h, l.CompressionMagic)
	for i := len(l.CompressionMagic); i < len(h); i++ {
		h[i] = byte(0xA0 + i)
	}
	return h
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestRoundTripIdentity(t *testing.T) {
	tests := []struct {
		name   string
		footer []byte
	}{
		{"no footer", nil},
		{"footer", []byte("enhanced input mappings follow\x00\x01\x02")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildFile(DefaultLayout(), tt.footer)

			f, err := Parse(data, DefaultOptions())
			require.NoError(t, err)
			assert.False(t, f.IsCompressed())
			assert.Equal(t, "++Fortnite+Release-30.10-CL-36959497-Windows", f.Header.Version.String)
			assert.Equal(t, int32(3), f.Header.Unknown)
			assert.Len(t, f.Tree.Roots, 4)
			assert.Equal(t, 4, f.Stats.Properties)
			assert.Equal(t, 1, f.Stats.Opaque)
			if len(tt.footer) == 0 {
				assert.Empty(t, f.Footer)
			} else {
				assert.Equal(t, tt.footer, f.Footer)
			}

			out, err := Serialize(f, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestCompressedInput(t *testing.T) {
	l := DefaultLayout()
	body := buildFile(l, []byte{0xFF, 0xFE})
	data, err := wrap(wrapperHeader(l), body)
	require.NoError(t, err)
	require.True(t, l.IsCompressed(data))

	f, err := Parse(data, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, f.IsCompressed())
	assert.Equal(t, wrapperHeader(l), f.Wrapper)

	// uncompressed by default
	out, err := Serialize(f, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, body, out)

	opts := DefaultOptions()
	opts.Compress = true
	packed, err := Serialize(f, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(packed, wrapperHeader(l)))

	again, err := Parse(packed, DefaultOptions())
	require.NoError(t, err)
	out, err = Serialize(again, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, body, out)
}

func TestEditSurvivesSerialize(t *testing.T) {
	f, err := Parse(buildFile(DefaultLayout(), []byte{7}), DefaultOptions())
	require.NoError(t, err)

	n, err := f.Tree.Find("Language")
	require.NoError(t, err)
	require.NoError(t, n.SetValue("Português"))

	out, err := Serialize(f, DefaultOptions())
	require.NoError(t, err)

	again, err := Parse(out, DefaultOptions())
	require.NoError(t, err)
	n, err = again.Tree.Find("Language")
	require.NoError(t, err)
	assert.Equal(t, "Português", n.DisplayValue())
	assert.Equal(t, []byte{7}, again.Footer)
}

func TestCustomLayout(t *testing.T) {
	l := Layout{PrefixSize: 4, PaddingSize: 0, CompressionMagic: []byte("ZZ"), CompressionHeaderSize: 8}
	data := buildFile(l, nil)

	f, err := Parse(data, Options{Layout: l})
	require.NoError(t, err)
	assert.Len(t, f.Header.Prefix, 4)
	assert.Empty(t, f.Header.Padding)

	out, err := Serialize(f, Options{Layout: l})
	require.NoError(t, err)
	assert.Equal(t, data, out)

	// the default layout expects a longer header
	_, err = Serialize(f, DefaultOptions())
	assert.ErrorIs(t, err, ErrHeader)
}

func TestParseErrors(t *testing.T) {
	l := DefaultLayout()
	valid := buildFile(l, nil)

	tests := []struct {
		name string
		data []byte
		opts Options
		want error
	}{
		{"truncated header", valid[:l.PrefixSize+10], DefaultOptions(), ErrHeader},
		{"truncated stream", valid[:len(valid)-12], DefaultOptions(), archive.ErrStreamTruncated},
		{"short wrapper", []byte(DefaultCompressionMagic + "xx"), DefaultOptions(), ErrDecompress},
		{"corrupt body", append(wrapperHeader(l), 1, 2, 3, 4, 5, 6), DefaultOptions(), ErrDecompress},
		{"invalid layout", valid, Options{Layout: Layout{PrefixSize: -1}}, ErrLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.data, tt.opts)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, f)
		})
	}
}

func TestSerializeErrors(t *testing.T) {
	f, err := Parse(buildFile(DefaultLayout(), nil), DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Compress = true
	_, err = Serialize(f, opts)
	assert.ErrorIs(t, err, ErrNoWrapper)

	_, err = Serialize(&File{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrHeader)

	broken := property.NewTag(property.TypeInt)
	broken.Name = "Broken"
	f.Tree.Roots = append(f.Tree.Roots, &property.Node{Tag: broken, ArrayIndex: -1})
	out, err := Serialize(f, DefaultOptions())
	assert.ErrorIs(t, err, property.ErrMalformed)
	assert.Nil(t, out)
}

func TestMetrics(t *testing.T) {
	_, err := Parse(buildFile(DefaultLayout(), nil), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteMetrics(&buf)
	out := buf.String()
	for _, name := range []string{
		"dsav_savefile_parse_total",
		"dsav_savefile_properties_total",
		"dsav_savefile_opaque_properties_total",
	} {
		assert.True(t, strings.Contains(out, name), name)
	}
}

func BenchmarkParse(b *testing.B) {
	data := buildFile(DefaultLayout(), nil)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data, DefaultOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

func TestInflate(t *testing.T) {
	l := DefaultLayout()
	body := buildFile(l, nil)

	got, wrapper, err := Inflate(body, l)
	require.NoError(t, err)
	assert.Nil(t, wrapper)
	assert.Equal(t, body, got)

	packed, err := wrap(wrapperHeader(l), body)
	require.NoError(t, err)
	got, wrapper, err = Inflate(packed, l)
	require.NoError(t, err)
	assert.Equal(t, wrapperHeader(l), wrapper)
	assert.Equal(t, body, got)
}
