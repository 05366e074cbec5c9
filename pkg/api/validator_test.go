package api

import (
	"math"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestJoinPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload JoinPayload
		wantErr bool
	}{
		{"plain name", JoinPayload{Username: "neo"}, false},
		{"empty", JoinPayload{}, true},
		{"only spaces", JoinPayload{Username: "   "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdatePayload_Validate(t *testing.T) {
	pos := &Vec3{X: 1, Y: 0.5, Z: 0}

	tests := []struct {
		name    string
		payload UpdatePayload
		wantErr bool
	}{
		{"complete", UpdatePayload{Position: pos, Score: ptr(12.5), Active: ptr(false)}, false},
		{"active omitted", UpdatePayload{Position: pos, Score: ptr(0.0)}, false},
		{"missing position", UpdatePayload{Score: ptr(1.0)}, true},
		{"missing score", UpdatePayload{Position: pos}, true},
		{"negative score", UpdatePayload{Position: pos, Score: ptr(-1.0)}, true},
		{"nan score", UpdatePayload{Position: pos, Score: ptr(math.NaN())}, true},
		{"infinite coordinate", UpdatePayload{Position: &Vec3{X: math.Inf(1)}, Score: ptr(1.0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
