package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// codec encodes server messages for one connection
type codec struct {
	name        string
	messageType int
	marshal     func(v any) ([]byte, error)
}

// codecFor picks the wire format requested by the client.
// JSON is the default; msgpack frames are sent as binary messages.
func codecFor(name string) (codec, error) {
	switch name {
	case "", "json":
		return codec{name: "json", messageType: websocket.TextMessage, marshal: json.Marshal}, nil
	case "msgpack":
		return codec{name: "msgpack", messageType: websocket.BinaryMessage, marshal: marshalMsgpack}, nil
	}
	return codec{}, fmt.Errorf("unknown codec %q", name)
}

// marshalMsgpack reuses the json tags so both formats share field names
func marshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
