package export

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// NewYAMLSerializer creates a new serializer using yaml encoding
func NewYAMLSerializer() ISnapshotSerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the ISnapshotSerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see export.ISnapshotSerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y yamlSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return yaml.Unmarshal(b, s)
}
