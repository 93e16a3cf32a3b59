package alarm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype both peers must use.
const CodecName = "cbor"

// cborCodec encodes messages with Core Deterministic Encoding, so the same
// message always produces identical bytes.
type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func init() { //nolint:gochecknoinits // Codecs are registered globally by content subtype.
	encoding.RegisterCodec(newCodec())
}

func newCodec() *cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("alarm: CBOR encoder initialization failed: " + err.Error())
	}

	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("alarm: CBOR decoder initialization failed: " + err.Error())
	}

	return &cborCodec{
		enc: enc,
		dec: dec,
	}
}

// Marshal implements encoding.Codec.
func (c *cborCodec) Marshal(v any) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal %T: %w", v, err)
	}

	return data, nil
}

// Unmarshal implements encoding.Codec.
func (c *cborCodec) Unmarshal(data []byte, v any) error {
	if err := c.dec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal %T: %w", v, err)
	}

	return nil
}

// Name implements encoding.Codec.
func (*cborCodec) Name() string {
	return CodecName
}
