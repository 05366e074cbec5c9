package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"tapdash-server/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// Ограничения против испорченных файлов
const (
	maxTuningLen  = 1 << 16
	maxInputCount = 1 << 24
)

var ErrInvalidMagic = errors.New("invalid magic")

func (s *ReplayService) Load(path string) (*domain.RunRecording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRecording(bufio.NewReader(f))
}

// ReadRecording разбирает запись формата TDRP.
func ReadRecording(r io.Reader) (*domain.RunRecording, error) {
	// 1. Заголовок целиком
	var header RecordingFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.TuningLen > maxTuningLen || header.InputCount > maxInputCount {
		return nil, fmt.Errorf("header out of range: tuning=%d inputs=%d", header.TuningLen, header.InputCount)
	}

	rec := &domain.RunRecording{
		Seed:       header.Seed,
		Timestamp:  header.Timestamp,
		FinalTick:  header.FinalTick,
		FinalScore: header.FinalScore,
		Inputs:     make([]domain.InputRecord, header.InputCount),
	}

	// 2. Настройки
	blob := make([]byte, header.TuningLen)
	if _, err := io.ReadFull(r, blob); err != nil {
		return nil, fmt.Errorf("failed to read tuning: %w", err)
	}
	if err := msgpack.Unmarshal(blob, &rec.Tuning); err != nil {
		return nil, fmt.Errorf("failed to decode tuning: %w", err)
	}

	// 3. Ввод
	for i := range rec.Inputs {
		var ih InputHeader
		if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
			return nil, fmt.Errorf("failed to read input %d: %w", i, err)
		}
		rec.Inputs[i] = domain.InputRecord{Tick: ih.Tick, Kind: domain.InputKind(ih.Kind)}
	}

	return rec, nil
}
