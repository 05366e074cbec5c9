package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tapdash-server/internal/domain"
	"tapdash-server/internal/engine"
	"tapdash-server/internal/infrastructure/storage"
	"tapdash-server/pkg/api"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	var err error
	switch os.Args[1] {
	case "schema":
		if len(os.Args) < 3 {
			fmt.Println("Usage: tdtool schema <out.json>")
			return
		}
		err = writeSchema(os.Args[2])
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: tdtool info <run.tdrp>")
			return
		}
		err = printInfo(os.Args[2])
	case "verify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: tdtool verify <run.tdrp>")
			return
		}
		err = verify(os.Args[2])
	default:
		printHelp()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeSchema(outPath string) error {
	data, err := api.SchemaJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}

func load(path string) (*domain.RunRecording, error) {
	return storage.NewReplayService(filepath.Dir(path)).Load(path)
}

func printInfo(path string) error {
	rec, err := load(path)
	if err != nil {
		return err
	}

	counts := make(map[domain.InputKind]int)
	for _, in := range rec.Inputs {
		counts[in.Kind]++
	}

	fmt.Printf("seed:        %d\n", rec.Seed)
	fmt.Printf("recorded:    %s\n", time.Unix(rec.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("final tick:  %d (%.1fs at 60 fps)\n", rec.FinalTick, float64(rec.FinalTick)/60)
	fmt.Printf("final score: %.1f\n", rec.FinalScore)
	fmt.Printf("inputs:      %d\n", len(rec.Inputs))
	for _, k := range []domain.InputKind{domain.InputJump, domain.InputMoveLeft, domain.InputMoveRight, domain.InputMoveStop, domain.InputReset} {
		if counts[k] > 0 {
			fmt.Printf("  %-10s %d\n", k, counts[k])
		}
	}
	return nil
}

// verify проигрывает запись и сверяет итоговый счет
func verify(path string) error {
	rec, err := load(path)
	if err != nil {
		return err
	}
	s := engine.Replay(rec)
	if s.Score() != rec.FinalScore {
		return fmt.Errorf("replay diverged: score %.4f, recorded %.4f", s.Score(), rec.FinalScore)
	}
	fmt.Printf("ok: %d ticks, score %.1f, high score %d\n", s.CurrentTick(), s.Score(), s.HighScore())
	return nil
}

func printHelp() {
	fmt.Println(`Tap Dash tool - записи забегов и схема протокола
Commands:
  schema <out.json>   - записать JSON-схему сообщений релея
  info <run.tdrp>     - показать заголовок и состав записи
  verify <run.tdrp>   - проиграть запись и сверить итоговый счет`)
}
