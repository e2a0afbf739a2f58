package export

import (
	"encoding/hex"

	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/ValentinKolb/dSav/lib/savefile"
)

// Entry is the exported form of one property node.
type Entry struct {
	Name     string  `json:"name" yaml:"name" cbor:"name" msgpack:"name"`
	Type     string  `json:"type" yaml:"type" cbor:"type" msgpack:"type"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty" cbor:"value,omitempty" msgpack:"value,omitempty"`
	Raw      string  `json:"raw,omitempty" yaml:"raw,omitempty" cbor:"raw,omitempty" msgpack:"raw,omitempty"`
	Failure  string  `json:"failure,omitempty" yaml:"failure,omitempty" cbor:"failure,omitempty" msgpack:"failure,omitempty"`
	Children []Entry `json:"children,omitempty" yaml:"children,omitempty" cbor:"children,omitempty" msgpack:"children,omitempty"`
}

// Snapshot is a read-only view of a save file meant for diffing and inspection.
// Opaque payloads and the footer are hex encoded.
type Snapshot struct {
	Version    string  `json:"version" yaml:"version" cbor:"version" msgpack:"version"`
	Compressed bool    `json:"compressed" yaml:"compressed" cbor:"compressed" msgpack:"compressed"`
	Footer     string  `json:"footer,omitempty" yaml:"footer,omitempty" cbor:"footer,omitempty" msgpack:"footer,omitempty"`
	Properties []Entry `json:"properties,omitempty" yaml:"properties,omitempty" cbor:"properties,omitempty" msgpack:"properties,omitempty"`
}

// NewSnapshot captures the current state of f.
func NewSnapshot(f *savefile.File) *Snapshot {
	s := &Snapshot{
		Compressed: f.IsCompressed(),
		Footer:     hex.EncodeToString(f.Footer),
	}
	if f.Header != nil {
		s.Version = f.Header.Version.String
	}
	if f.Tree != nil {
		s.Properties = Entries(f.Tree.Roots)
	}
	return s
}

// Entries converts a list of sibling nodes. An empty list yields nil.
func Entries(nodes []*property.Node) []Entry {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Entry, len(nodes))
	for i, n := range nodes {
		out[i] = Entry{
			Name:     n.DisplayName(),
			Type:     n.DisplayType(),
			Raw:      hex.EncodeToString(n.Raw),
			Children: Entries(n.Children),
		}
		if n.Failure != nil {
			out[i].Failure = n.Failure.Error()
		} else {
			out[i].Value = n.DisplayValue()
		}
	}
	return out
}

// Count returns the number of entries in the snapshot, nested ones included.
func (s *Snapshot) Count() int {
	var count func(list []Entry) int
	count = func(list []Entry) int {
		n := len(list)
		for _, e := range list {
			n += count(e.Children)
		}
		return n
	}
	return count(s.Properties)
}
