// Package modes содержит модификаторы правил, из которых собираются режимы.
// Каждый модификатор это набор функций над состоянием из game.Extensions;
// порядок применения и переходы фаз определяет оркестратор.
package modes

import (
	"math/rand"
	"time"

	"baduk_arena/internal/domain/game"
)

// Rand: источник случайности для модификаторов.
type Rand interface {
	Intn(n int) int
}

// SessionRand выдаёт генератор, который однозначно определяется снимком
// партии (Seed и счётчик), поэтому повтор из снимка даёт тот же результат.
func SessionRand(s *game.Session) *rand.Rand {
	s.RandCounter++
	return rand.New(rand.NewSource(s.Seed ^ (s.RandCounter * 0x5DEECE66D)))
}

// NewExtensions создаёт состояние для каждого модификатора режима.
func NewExtensions(mods []game.Modifier, settings game.Settings, now time.Time) game.Extensions {
	var ext game.Extensions
	for _, m := range mods {
		switch m {
		case game.ModifierCaptureTarget:
			ext.CaptureTarget = NewCaptureTarget(settings)
		case game.ModifierTimeControl:
			ext.Clock = NewClock(settings.TimeControl, now)
		case game.ModifierConcealment:
			ext.Concealment = NewConcealment(settings)
		case game.ModifierRelocation:
			ext.Relocation = NewRelocation(settings)
		case game.ModifierBasePlacement:
			ext.Base = NewBasePlacement(settings)
		}
	}
	return ext
}

// CaptureValue считает, сколько очков пленных дают снятые камни владельца owner.
// Базовые и скрытые камни стоят дороже обычных. Вызывать до ForgetCaptured.
func CaptureValue(s *game.Session, captured []game.Point, owner game.Color) int {
	total := 0
	for _, p := range captured {
		value := 1
		if v, ok := baseStoneValue(s, p, owner); ok && v > value {
			value = v
		}
		if v, ok := hiddenStoneValue(s.Ext.Concealment, p, owner); ok && v > value {
			value = v
		}
		total += value
	}
	return total
}

// ForgetCaptured убирает записи о снятых базовых и скрытых камнях,
// чтобы новый камень в той же точке не унаследовал бонус.
func ForgetCaptured(s *game.Session, captured []game.Point) {
	if s.Ext.Base != nil {
		forgetBaseStones(s.Ext.Base, captured)
	}
	if s.Ext.Concealment != nil {
		forgetHiddenStones(s.Ext.Concealment, captured)
	}
}

// MoveStone переносит записи модификаторов вслед за камнем после ракеты.
func MoveStone(s *game.Session, from, to game.Point) {
	if b := s.Ext.Base; b != nil {
		for slot := range b.Stones {
			for i, p := range b.Stones[slot] {
				if p == from {
					b.Stones[slot][i] = to
				}
			}
		}
	}
	if c := s.Ext.Concealment; c != nil {
		if idx := c.Find(from); idx >= 0 {
			c.Stones[idx].Point = to
		}
	}
}
