package export

import (
	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses Core Deterministic Encoding so equal snapshots produce equal bytes
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// NewCBORSerializer creates a new serializer using deterministic cbor encoding
func NewCBORSerializer() ISnapshotSerializer {
	return &cborSerializerImpl{}
}

// cborSerializerImpl implements the ISnapshotSerializer interface using cbor encoding
type cborSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see export.ISnapshotSerializer)
// --------------------------------------------------------------------------

func (c cborSerializerImpl) Serialize(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

func (c cborSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return cbor.Unmarshal(b, s)
}
