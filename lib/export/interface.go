package export

// ISnapshotSerializer is the interface for all Snapshot Serializers
type ISnapshotSerializer interface {
	// Serialize serializes a Snapshot into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(s *Snapshot) ([]byte, error)
	// Deserialize deserializes a byte array into a Snapshot
	// It takes a byte array and a pointer to a Snapshot as parameters
	// It returns an error if any
	Deserialize(b []byte, s *Snapshot) error
}
