package engine

import (
	"github.com/sirupsen/logrus"
)

// guard выполняет шаг тика. Паника внутри шага логируется, тик продолжается
// со следующего шага; испорченное состояние не чинится.
func (s *Session) guard(step string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			s.failures++
			s.log.WithFields(logrus.Fields{
				"step":  step,
				"tick":  s.tick,
				"phase": s.phase,
				"panic": r,
			}).Error("game step failed, skipping")
		}
	}()
	fn()
	return true
}

// event пишет заметное игровое событие
func (s *Session) event(msg string, fields logrus.Fields) {
	entry := s.log.WithFields(logrus.Fields{
		"tick":  s.tick,
		"score": s.progress.Floor(),
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Info(msg)
}
