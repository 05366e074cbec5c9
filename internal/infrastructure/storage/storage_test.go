package storage

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"tapdash-server/internal/domain"
)

func sampleRecording() *domain.RunRecording {
	tuning := domain.DefaultTuning()
	tuning.Gravity = 0.02
	return &domain.RunRecording{
		Seed:       42,
		Timestamp:  1700000000,
		Tuning:     tuning,
		FinalTick:  900,
		FinalScore: 73.4,
		Inputs: []domain.InputRecord{
			{Tick: 10, Kind: domain.InputJump},
			{Tick: 12, Kind: domain.InputJump},
			{Tick: 40, Kind: domain.InputMoveLeft},
			{Tick: 41, Kind: domain.InputMoveStop},
			{Tick: 500, Kind: domain.InputReset},
		},
	}
}

func TestRecording_WriteRead(t *testing.T) {
	rec := sampleRecording()

	var buf bytes.Buffer
	if err := WriteRecording(&buf, rec); err != nil {
		t.Fatalf("WriteRecording: %v", err)
	}

	got, err := ReadRecording(&buf)
	if err != nil {
		t.Fatalf("ReadRecording: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("Recording mismatch:\n got  %+v\n want %+v", got, rec)
	}
}

func TestReplayService_SaveLoad(t *testing.T) {
	svc := NewReplayService(t.TempDir())
	rec := sampleRecording()

	path, err := svc.Save(rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Seed != rec.Seed || got.FinalTick != rec.FinalTick || len(got.Inputs) != len(rec.Inputs) {
		t.Errorf("Loaded %+v, want %+v", got, rec)
	}
}

func TestReadRecording_Corrupt(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecording(&buf, sampleRecording()); err != nil {
		t.Fatal(err)
	}
	good := buf.Bytes()

	t.Run("Bad magic", func(t *testing.T) {
		data := append([]byte(nil), good...)
		copy(data, "XXXX")
		if _, err := ReadRecording(bytes.NewReader(data)); !errors.Is(err, ErrInvalidMagic) {
			t.Errorf("err = %v, want ErrInvalidMagic", err)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		data := good[:len(good)-3]
		if _, err := ReadRecording(bytes.NewReader(data)); err == nil {
			t.Error("Expected error for truncated input list")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, err := ReadRecording(bytes.NewReader(nil)); err == nil {
			t.Error("Expected error for empty file")
		}
	})
}
