package api

import (
	"errors"
	"strings"
	"testing"
)

func TestJSONCodec_DecodeUpdate(t *testing.T) {
	raw := []byte(`{"type":"update","payload":{"position":{"x":1,"y":2,"z":3},"score":42}}`)

	frame, err := JSONCodec{}.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if frame.Kind != KindUpdate {
		t.Fatalf("kind = %v, want update", frame.Kind)
	}

	payload, err := DecodePayload[UpdatePayload](frame)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.Position == nil || payload.Position.Z != 3 {
		t.Errorf("position = %+v", payload.Position)
	}
	if payload.Score == nil || *payload.Score != 42 {
		t.Errorf("score = %v", payload.Score)
	}
	if payload.Active != nil {
		t.Errorf("active should stay nil when omitted, got %v", *payload.Active)
	}
}

func TestJSONCodec_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `hello`},
		{"no type", `{"payload":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (JSONCodec{}).Decode([]byte(tt.raw)); err == nil {
				t.Errorf("expected error for %s", tt.raw)
			}
		})
	}
}

func TestFrame_DecodeEmptyPayload(t *testing.T) {
	frame, err := JSONCodec{}.Decode([]byte(`{"type":"join"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var p JoinPayload
	if err := frame.Decode(&p); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestJSONCodec_EncodeServerFull(t *testing.T) {
	data, err := JSONCodec{}.Encode(Message{Kind: KindServerFull})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := string(data); got != `{"type":"serverFull"}` {
		t.Errorf("Encode = %s", got)
	}
}

func TestJSONCodec_EncodePlayers(t *testing.T) {
	msg := PlayersMessage(map[string]PlayerView{
		"c1": {ID: "c1", Username: "neo", Score: 3, MaxScore: 7, Position: SpawnPosition, Active: true},
	})
	data, err := JSONCodec{}.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, want := range []string{`"type":"players"`, `"maxScore":7`, `"username":"neo"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded players %s misses %s", data, want)
		}
	}
}

func TestMsgpackCodec_PayloadThroughEnvelope(t *testing.T) {
	codec := MsgpackCodec{}
	score := 9.5

	data, err := codec.Encode(Message{Kind: KindUpdate, Payload: UpdatePayload{
		Position: &Vec3{X: -1, Y: 0.5},
		Score:    &score,
	}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	frame, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if frame.Kind != KindUpdate {
		t.Fatalf("kind = %v", frame.Kind)
	}
	payload, err := DecodePayload[UpdatePayload](frame)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.Position == nil || payload.Position.X != -1 || *payload.Score != 9.5 {
		t.Errorf("payload mismatch: %+v", payload)
	}
}

func TestCodecByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "json", false},
		{"JSON", "json", false},
		{"msgpack", "msgpack", false},
		{"protobuf", "", true},
	}

	for _, tt := range tests {
		c, err := CodecByName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CodecByName(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("CodecByName(%q): %v", tt.name, err)
		}
		if c.Name() != tt.want {
			t.Errorf("CodecByName(%q) = %s, want %s", tt.name, c.Name(), tt.want)
		}
	}
}
