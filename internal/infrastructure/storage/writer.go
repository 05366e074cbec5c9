package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tapdash-server/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	MagicHeader string = `TDRP` // 4 байта
	Version1    uint32 = 1

	FileExt = ".tdrp"
)

// RecordingFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут только массивы и числа.
type RecordingFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Seed       int64   // 8 байт
	Timestamp  int64   // 8 байт
	FinalTick  uint64  // 8 байт
	FinalScore float64 // 8 байт
	TuningLen  uint32  // 4 байта, длина msgpack-блока с настройками
	InputCount uint32  // 4 байта
}

// InputHeader - одна запись ввода.
type InputHeader struct {
	Tick uint64 // 8
	Kind uint8  // 1
}

// ReplayService сохраняет и читает записи забегов в директории SaveDir.
type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	return &ReplayService{SaveDir: dir}
}

// Save пишет запись в новый файл и возвращает его путь.
func (s *ReplayService) Save(rec *domain.RunRecording) (string, error) {
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return "", fmt.Errorf("create record dir: %w", err)
	}

	filename := fmt.Sprintf("run_%d_%d%s", rec.Seed, rec.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteRecording(bw, rec); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRecording кодирует запись в бинарный формат TDRP.
func WriteRecording(w io.Writer, rec *domain.RunRecording) error {
	tuning, err := msgpack.Marshal(rec.Tuning)
	if err != nil {
		return fmt.Errorf("failed to encode tuning: %w", err)
	}

	header := RecordingFileHeader{
		Version:    Version1,
		Seed:       rec.Seed,
		Timestamp:  rec.Timestamp,
		FinalTick:  rec.FinalTick,
		FinalScore: rec.FinalScore,
		TuningLen:  uint32(len(tuning)),
		InputCount: uint32(len(rec.Inputs)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(tuning); err != nil {
		return fmt.Errorf("failed to write tuning: %w", err)
	}

	for _, in := range rec.Inputs {
		ih := InputHeader{Tick: in.Tick, Kind: uint8(in.Kind)}
		if err := binary.Write(w, binary.LittleEndian, &ih); err != nil {
			return fmt.Errorf("failed to write input: %w", err)
		}
	}
	return nil
}
