package msgs

import (
	"encoding/json"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// Codec encodes and decodes messages.
type Codec interface {
	Name() string
	Encode(Message) ([]byte, error)
	Decode([]byte) (Message, error)
}

// Codec names.
const (
	CodecJSON  = "json"
	CodecProto = "proto"
)

// CodecByName returns a codec. Empty name means JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return JSONCodec{}, nil
	case CodecProto:
		return ProtoCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// JSONCodec is the text encoding.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return CodecJSON }

// Encode implements Codec.
func (JSONCodec) Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) (Message, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	m, err := New(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Envelope is the protobuf form of every message.
type Envelope struct {
	Type    string `protobuf:"bytes,1,opt,name=type,proto3" json:"type,omitempty"`
	Device  string `protobuf:"bytes,2,opt,name=device,proto3" json:"device,omitempty"`
	DeltaX  int32  `protobuf:"zigzag32,3,opt,name=delta_x,json=deltaX,proto3" json:"deltaX,omitempty"`
	DeltaY  int32  `protobuf:"zigzag32,4,opt,name=delta_y,json=deltaY,proto3" json:"deltaY,omitempty"`
	Command string `protobuf:"bytes,5,opt,name=command,proto3" json:"command,omitempty"`
	Message string `protobuf:"bytes,6,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Envelope) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Envelope) Reset() { *m = Envelope{} }

// String implements proto.Message.
func (m *Envelope) String() string { return proto.CompactTextString(m) }

// Wrap puts a message into an Envelope.
func Wrap(m Message) (*Envelope, error) {
	switch msg := m.(type) {
	case *Status:
		return &Envelope{Type: TypeStatus, Device: msg.Device}, nil
	case *Move:
		return &Envelope{Type: TypeMove, DeltaX: int32(msg.DeltaX), DeltaY: int32(msg.DeltaY)}, nil
	case *Command:
		return &Envelope{Type: TypeCommand, Command: msg.Command}, nil
	case *Reply:
		return &Envelope{Type: msg.Kind, Message: msg.Message}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownType, m)
}

// Unwrap extracts the message.
func (m *Envelope) Unwrap() (Message, error) {
	msg, err := New(m.Type)
	if err != nil {
		return nil, err
	}
	switch v := msg.(type) {
	case *Status:
		v.Device = m.Device
	case *Move:
		v.DeltaX, v.DeltaY = int(m.DeltaX), int(m.DeltaY)
	case *Command:
		v.Command = m.Command
	case *Reply:
		v.Message = m.Message
	}
	return msg, nil
}

// ProtoCodec is the binary encoding.
type ProtoCodec struct{}

// Name implements Codec.
func (ProtoCodec) Name() string { return CodecProto }

// Encode implements Codec.
func (ProtoCodec) Encode(m Message) ([]byte, error) {
	env, err := Wrap(m)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(env)
}

// Decode implements Codec.
func (ProtoCodec) Decode(data []byte) (Message, error) {
	var env Envelope
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return env.Unwrap()
}
