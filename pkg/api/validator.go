package api

import (
	"errors"
	"math"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p JoinPayload) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

func (p UpdatePayload) Validate() error {
	if p.Position == nil {
		return errors.New("position is required")
	}
	if !finite(p.Position.X) || !finite(p.Position.Y) || !finite(p.Position.Z) {
		return errors.New("position must be finite")
	}
	if p.Score == nil {
		return errors.New("score is required")
	}
	if !finite(*p.Score) || *p.Score < 0 {
		return errors.New("score must be a finite non-negative number")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
