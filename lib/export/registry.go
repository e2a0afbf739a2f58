package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ValentinKolb/dSav/lib/savefile"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("export")

var ErrUnknownFormat = errors.New("export: unknown format")

// serializers maps format names to serializer factories
var serializers = xsync.NewMapOf[string, func() ISnapshotSerializer]()

func init() {
	Register("json", NewJSONSerializer)
	Register("yaml", NewYAMLSerializer)
	Register("cbor", NewCBORSerializer)
	Register("msgpack", NewMsgpackSerializer)
	Register("gob", NewGOBSerializer)
}

// Register adds or replaces the serializer factory for a format name.
func Register(format string, factory func() ISnapshotSerializer) {
	serializers.Store(format, factory)
}

// Lookup returns a new serializer for the format.
func Lookup(format string) (ISnapshotSerializer, error) {
	factory, ok := serializers.Load(format)
	if !ok {
		return nil, fmt.Errorf("%w %q, must be one of %v", ErrUnknownFormat, format, Formats())
	}
	return factory(), nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	var names []string
	serializers.Range(func(name string, _ func() ISnapshotSerializer) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Export serializes a snapshot of f and compresses the result.
func Export(f *savefile.File, format string, compression Compression) ([]byte, error) {
	s, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	snap := NewSnapshot(f)
	data, err := s.Serialize(snap)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	out, err := compression.Compress(data)
	if err != nil {
		return nil, err
	}
	log.Debugf("exported %d entries as %s (%d bytes, %s %d bytes)",
		snap.Count(), format, len(data), compression, len(out))
	return out, nil
}

// Import reverses Export.
func Import(data []byte, format string, compression Compression) (*Snapshot, error) {
	s, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	if data, err = compression.Decompress(data); err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	if err := s.Deserialize(data, snap); err != nil {
		return nil, fmt.Errorf("import %s: %w", format, err)
	}
	return snap, nil
}
