// Package apiconnect wires the splitledger services into Connect handlers
// and clients. Messages are plain Go structs carried with a JSON codec.
package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec marshals messages with encoding/json under the "json" codec
// name, which Connect maps to the application/json content type.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithJSON registers the JSON codec on a handler or client. Handlers and
// clients built by this package already include it.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
