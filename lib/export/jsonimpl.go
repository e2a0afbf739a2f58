package export

import (
	"encoding/json"
)

// NewJSONSerializer creates a new serializer using indented json encoding
func NewJSONSerializer() ISnapshotSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ISnapshotSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see export.ISnapshotSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func (j jsonSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return json.Unmarshal(b, s)
}
