package plan

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so equal plans encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("plan: failed to create CBOR enc mode: %v", err))
	}

	cborEncMode = em
}

// MarshalCBOR encodes plans as a CBOR Document.
func MarshalCBOR(plans ...*Plan) ([]byte, error) {
	return cborEncMode.Marshal(NewDocument(plans...))
}

// UnmarshalCBOR decodes a Document written by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("plan: unmarshal document: %w", err)
	}

	return &doc, nil
}
