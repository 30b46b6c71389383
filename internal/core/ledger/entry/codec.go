package entry

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// msgpack with canonical map ordering so identical entries encode to
// identical bytes; the sandbox relies on that to skip no-op updates.
var handle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.Canonical = true
	h.WriteExt = true
	return h
}()

// Encode serializes an entry.
func Encode(v any) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, handle).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return out, nil
}

// Decode deserializes data into v, which must be a pointer to an entry.
func Decode(data []byte, v any) error {
	if err := codec.NewDecoderBytes(data, handle).Decode(v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
