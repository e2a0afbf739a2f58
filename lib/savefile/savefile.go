package savefile

import (
	"fmt"
	"time"

	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("savefile")

// File is a parsed save file.
type File struct {
	Header *Header
	Tree   *property.Tree
	// Footer holds every byte after the final terminator
	Footer []byte
	// Wrapper is the compression header the file was read with, nil for uncompressed files
	Wrapper []byte
	// Stats describes what the read engine produced
	Stats property.Stats
}

// IsCompressed reports whether the file was read from a compressed container.
func (f *File) IsCompressed() bool {
	return f.Wrapper != nil
}

// Options control parsing and serialization.
type Options struct {
	Layout Layout
	// Compress writes the output with the wrapper header the file was read with
	Compress bool
}

// DefaultOptions returns options with the current layout and uncompressed output.
func DefaultOptions() Options {
	return Options{Layout: DefaultLayout()}
}

// Parse decodes a save file. Compressed files are inflated first. A failure anywhere
// in the property stream that cannot be contained in a single property fails the parse.
func Parse(data []byte, opts Options) (f *File, err error) {
	start := time.Now()
	parseTotal.Inc()
	defer func() {
		if err != nil {
			parseErrors.Inc()
			return
		}
		parseDuration.UpdateDuration(start)
	}()

	if err = opts.Layout.Validate(); err != nil {
		return nil, err
	}
	parseBytes.Update(float64(len(data)))

	f = &File{}
	if opts.Layout.IsCompressed(data) {
		parseCompressed.Inc()
		if f.Wrapper, data, err = unwrap(data, opts.Layout); err != nil {
			return nil, err
		}
		log.Debugf("inflated %d byte body behind a %d byte wrapper", len(data), len(f.Wrapper))
	}

	r := archive.NewReader(data)
	if f.Header, err = readHeader(r, opts.Layout); err != nil {
		return nil, err
	}
	log.Debugf("engine version %q", f.Header.Version.String)

	dec := property.NewDecoder(r)
	if f.Tree, err = dec.ReadTree(); err != nil {
		return nil, fmt.Errorf("failed to deserialize file: %w", err)
	}
	f.Footer = r.Rest()
	f.Stats = dec.Stats()

	propertiesRead.Add(f.Stats.Properties)
	opaqueProperties.Add(f.Stats.Opaque)
	log.Debugf("read %d properties (%d opaque), %d footer bytes",
		f.Stats.Properties, f.Stats.Opaque, len(f.Footer))
	return f, nil
}

// Inflate returns the uncompressed form of data along with the wrapper header it was
// stored behind. Uncompressed data is returned as is with a nil wrapper.
func Inflate(data []byte, l Layout) (body, wrapper []byte, err error) {
	if !l.IsCompressed(data) {
		return data, nil, nil
	}
	wrapper, body, err = unwrap(data, l)
	return body, wrapper, err
}

// Serialize encodes f. Output is uncompressed unless opts.Compress is set, in which
// case the wrapper header the file was read with is reused. On error no output is
// returned.
func Serialize(f *File, opts Options) (out []byte, err error) {
	start := time.Now()
	serializeTotal.Inc()
	defer func() {
		if err != nil {
			serializeErrors.Inc()
			return
		}
		serializeDuration.UpdateDuration(start)
	}()

	if err = opts.Layout.Validate(); err != nil {
		return nil, err
	}
	if f.Header == nil {
		return nil, fmt.Errorf("%w: missing", ErrHeader)
	}
	if opts.Compress && f.Wrapper == nil {
		return nil, ErrNoWrapper
	}

	w := archive.NewWriterSize(opts.Layout.PrefixSize + opts.Layout.PaddingSize + 4096)
	if err = f.Header.write(w, opts.Layout); err != nil {
		return nil, err
	}

	tree := f.Tree
	if tree == nil {
		tree = &property.Tree{}
	}
	enc := property.NewEncoder(w)
	if err = enc.WriteTree(tree); err != nil {
		return nil, fmt.Errorf("failed to serialize file: %w", err)
	}
	if enc.Fallbacks() > 0 {
		serializeFallbacks.Add(enc.Fallbacks())
		log.Warningf("%d values were written from their original bytes", enc.Fallbacks())
	}
	if _, err = w.Write(f.Footer); err != nil {
		return nil, err
	}

	if !opts.Compress {
		return w.Bytes(), nil
	}
	return wrap(f.Wrapper, w.Bytes())
}
