package modes

import (
	"time"

	"baduk_arena/internal/domain/game"
)

func NewClock(tc game.TimeControl, now time.Time) *game.ClockState {
	c := &game.ClockState{
		Kind:          tc.Kind,
		PeriodTime:    tc.ByoyomiTime,
		Increment:     tc.Increment,
		TurnStartedAt: now,
	}
	c.Remaining = game.PerColor[time.Duration]{Black: tc.MainTime, White: tc.MainTime}
	if tc.Kind == game.TimeControlByoyomi {
		c.Periods = game.PerColor[int]{Black: tc.ByoyomiPeriods, White: tc.ByoyomiPeriods}
	}
	return c
}

// StartTurn запускает отсчёт хода с момента now.
func StartTurn(c *game.ClockState, now time.Time) {
	c.TurnStartedAt = now
	c.PausedAt = nil
}

// Elapsed: время текущего хода без учёта пауз.
func Elapsed(c *game.ClockState, now time.Time) time.Duration {
	end := now
	if c.PausedAt != nil {
		end = *c.PausedAt
	}
	if end.Before(c.TurnStartedAt) {
		return 0
	}
	return end.Sub(c.TurnStartedAt)
}

// Budget: сколько всего времени есть у игрока на текущий ход.
func Budget(c *game.ClockState, player game.Color) time.Duration {
	budget := c.Remaining.Get(player)
	if c.Kind == game.TimeControlByoyomi {
		budget += time.Duration(c.Periods.Get(player)) * c.PeriodTime
	}
	return budget
}

func TimedOut(c *game.ClockState, player game.Color, now time.Time) bool {
	return Elapsed(c, now) >= Budget(c, player)
}

// CompleteTurn списывает время хода игрока и запускает часы соперника.
// Возвращает true, если игрок вышел за лимит.
func CompleteTurn(c *game.ClockState, player game.Color, now time.Time) bool {
	elapsed := Elapsed(c, now)
	if elapsed >= Budget(c, player) {
		return true
	}
	main := c.Remaining.Get(player)
	switch c.Kind {
	case game.TimeControlFischer:
		c.Remaining.Set(player, main-elapsed+c.Increment)
	case game.TimeControlByoyomi:
		if elapsed <= main {
			c.Remaining.Set(player, main-elapsed)
			break
		}
		over := elapsed - main
		c.Remaining.Set(player, 0)
		if c.PeriodTime > 0 {
			c.Periods.Set(player, c.Periods.Get(player)-int(over/c.PeriodTime))
		}
	default:
		c.Remaining.Set(player, main-elapsed)
	}
	StartTurn(c, now)
	return false
}

// Pause останавливает основные часы на время использования предмета.
func Pause(c *game.ClockState, now time.Time) {
	if c.PausedAt != nil {
		return
	}
	paused := now
	c.PausedAt = &paused
}

// Resume продолжает ход с тем же остатком времени, что был до паузы.
func Resume(c *game.ClockState, now time.Time) {
	if c.PausedAt == nil {
		return
	}
	if now.After(*c.PausedAt) {
		c.TurnStartedAt = c.TurnStartedAt.Add(now.Sub(*c.PausedAt))
	}
	c.PausedAt = nil
}

// RemainingNow: остаток основного времени игрока с учётом идущего хода.
func RemainingNow(c *game.ClockState, player, toMove game.Color, now time.Time) time.Duration {
	left := Budget(c, player)
	if player == toMove {
		left -= Elapsed(c, now)
	}
	if left < 0 {
		return 0
	}
	return left
}
