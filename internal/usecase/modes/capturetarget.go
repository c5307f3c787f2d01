package modes

import "baduk_arena/internal/domain/game"

func NewCaptureTarget(settings game.Settings) *game.CaptureTargetState {
	target := settings.CaptureTarget
	if target <= 0 {
		target = game.DefaultSettings(game.ModeCapture).CaptureTarget
	}
	return &game.CaptureTargetState{Target: target}
}

// CaptureTargetReached проверяет, набрал ли кто-то нужное число пленных.
// Если оба одновременно, побеждает сделавший последний ход mover.
func CaptureTargetReached(s *game.Session, mover game.Color) (game.Color, bool) {
	ct := s.Ext.CaptureTarget
	if ct == nil {
		return game.Empty, false
	}
	if s.Captures.Get(mover) >= ct.Target {
		return mover, true
	}
	if opp := mover.Opponent(); s.Captures.Get(opp) >= ct.Target {
		return opp, true
	}
	return game.Empty, false
}
