package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tapdash-server/internal/agent"
	"tapdash-server/internal/engine"
	"tapdash-server/internal/infrastructure/storage"
	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// Ticks - сколько тиков крутить
	Ticks int
	// TickRate - тиков в секунду; 0 - без пауз
	TickRate int
	// Restart - начинать заново после game over, иначе остановиться
	Restart bool
	// UpdateEvery - как часто отправлять состояние в релей (в тиках)
	UpdateEvery int
}

// Result - итог прогона
type Result struct {
	Ticks      uint64
	Score      float64
	HighScore  int
	Phase      engine.Phase
	Recording  string // путь к файлу записи, если сохранялась
	Failures   int
	RelayCount int // игроков в последнем снимке релея
}

// Runner крутит игровую сессию headless: автопилот вводит, релей (опционально) видит результат.
type Runner struct {
	Session *engine.Session
	Pilot   *agent.Autopilot
	Relay   *RelayClient
	Store   *storage.ReplayService

	opts Options
	log  *logrus.Entry
}

func New(session *engine.Session, pilot *agent.Autopilot, opts Options) *Runner {
	if opts.UpdateEvery <= 0 {
		opts.UpdateEvery = 1
	}
	return &Runner{
		Session: session,
		Pilot:   pilot,
		opts:    opts,
		log:     logger.Component("runner"),
	}
}

// Run выполняет прогон до Ticks, game over (без Restart) или отмены контекста.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	s := r.Session
	s.Start()

	var pace <-chan time.Time
	if r.opts.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.opts.TickRate))
		defer ticker.Stop()
		pace = ticker.C
	}

	var runErr error
loop:
	for i := 0; i < r.opts.Ticks; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				break loop
			case <-pace:
			}
		} else if ctx.Err() != nil {
			break
		}

		if r.Pilot != nil {
			r.Pilot.Step(s)
		}
		s.Tick()

		if r.Relay != nil && s.CurrentTick()%uint64(r.opts.UpdateEvery) == 0 {
			if err := r.publish(); err != nil {
				runErr = err
				break
			}
		}

		if s.Phase() == engine.PhaseGameOver {
			r.log.WithFields(logrus.Fields{
				"tick":       s.CurrentTick(),
				"high_score": s.HighScore(),
			}).Info("run over")
			if !r.opts.Restart {
				break
			}
			s.Restart()
		}
	}

	// Финальное состояние в релей, даже если тик не кратен UpdateEvery
	if r.Relay != nil && runErr == nil {
		runErr = r.publish()
	}

	res := Result{
		Ticks:     s.CurrentTick(),
		Score:     s.Score(),
		HighScore: s.HighScore(),
		Phase:     s.Phase(),
		Failures:  s.Failures(),
	}
	if r.Relay != nil {
		res.RelayCount = len(r.Relay.Players())
	}

	if r.Store != nil {
		path, err := r.Store.Save(s.Recording())
		if err != nil {
			return res, errors.Join(runErr, fmt.Errorf("save recording: %w", err))
		}
		res.Recording = path
		r.log.WithField("path", path).Info("recording saved")
	}
	return res, runErr
}

func (r *Runner) publish() error {
	s := r.Session
	p := s.Player().Position
	active := s.Phase() == engine.PhaseRunning || s.Phase() == engine.PhaseCountdown
	if err := r.Relay.Update(api.Vec3{X: p.X(), Y: p.Y(), Z: p.Z()}, s.Score(), active); err != nil {
		return fmt.Errorf("relay update: %w", err)
	}
	return nil
}
