package export

import (
	"github.com/vmihailenco/msgpack/v5"
)

// NewMsgpackSerializer creates a new serializer using MessagePack encoding
func NewMsgpackSerializer() ISnapshotSerializer {
	return &msgpackSerializerImpl{}
}

// msgpackSerializerImpl implements the ISnapshotSerializer interface using msgpack encoding
type msgpackSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see export.ISnapshotSerializer)
// --------------------------------------------------------------------------

func (m msgpackSerializerImpl) Serialize(s *Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

func (m msgpackSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return msgpack.Unmarshal(b, s)
}
