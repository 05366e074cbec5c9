package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmptyPayload - у сообщения нет тела, а обработчику оно нужно.
var ErrEmptyPayload = errors.New("payload is empty")

// Codec превращает сообщения в кадры и обратно.
// JSON идет текстовыми кадрами, msgpack - бинарными.
type Codec interface {
	Name() string
	Binary() bool
	Encode(msg Message) ([]byte, error)
	Decode(data []byte) (Frame, error)
}

// Frame - разобранный конверт. Тело остается сырым до тех пор,
// пока обработчик не знает, в какую структуру его класть.
type Frame struct {
	Kind MessageKind
	Type string

	payload   []byte
	unmarshal func([]byte, any) error
}

// NewFrame собирает кадр вручную (тесты, внутренние команды).
func NewFrame(kind MessageKind, payload []byte) Frame {
	return Frame{Kind: kind, Type: kind.String(), payload: payload, unmarshal: json.Unmarshal}
}

// Decode распаковывает тело кадра в v.
func (f Frame) Decode(v any) error {
	if len(f.payload) == 0 || f.unmarshal == nil {
		return ErrEmptyPayload
	}
	return f.unmarshal(f.payload, v)
}

// DecodePayload - типизированный вариант Frame.Decode.
func DecodePayload[T any](f Frame) (T, error) {
	var v T
	err := f.Decode(&v)
	return v, err
}

// envelope - форма сообщения на проводе: {"type": ..., "payload": ...}
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// CodecByName выбирает кодек по имени из конфига или query-параметра.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// JSONCodec - кодек по умолчанию, совместим с браузерным клиентом.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	data, err := json.Marshal(envelope{Type: msg.Kind.String(), Payload: msg.Payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Kind, err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (Frame, error) {
	var env struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Frame{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Frame{}, errors.New("decode envelope: type is required")
	}
	return Frame{
		Kind:      ParseKind(env.Type),
		Type:      env.Type,
		payload:   env.Payload,
		unmarshal: json.Unmarshal,
	}, nil
}

// MsgpackCodec - бинарный кодек, включается через ?codec=msgpack.
// Имена полей берутся из json-тегов, поэтому схема у обоих кодеков одна.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }
func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(envelope{Type: msg.Kind.String(), Payload: msg.Payload}); err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Kind, err)
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte) (Frame, error) {
	var env struct {
		Type    string             `json:"type"`
		Payload msgpack.RawMessage `json:"payload"`
	}
	if err := unmarshalMsgpack(data, &env); err != nil {
		return Frame{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Frame{}, errors.New("decode envelope: type is required")
	}
	return Frame{
		Kind:      ParseKind(env.Type),
		Type:      env.Type,
		payload:   env.Payload,
		unmarshal: unmarshalMsgpack,
	}, nil
}

func unmarshalMsgpack(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
