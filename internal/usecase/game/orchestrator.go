package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"baduk_arena/internal/domain/game"
	"baduk_arena/internal/errors"
	"baduk_arena/internal/usecase/modes"
	"baduk_arena/internal/usecase/rules"
)

// advanceLimit ограничивает цепочку мгновенных переходов за один вызов.
const advanceLimit = 16

var knownActions = map[game.ActionType]struct{}{
	game.ActionPlace:          {},
	game.ActionPass:           {},
	game.ActionResign:         {},
	game.ActionPlaceBaseStone: {},
	game.ActionSubmitKomiBid:  {},
	game.ActionConfirmStart:   {},
	game.ActionStartHidden:    {},
	game.ActionPlaceHidden:    {},
	game.ActionStartScan:      {},
	game.ActionScan:           {},
	game.ActionStartMissile:   {},
	game.ActionLaunchMissile:  {},
}

// Orchestrator: автомат фаз партии. Он не хранит состояние и не ходит
// в сеть: каждый вызов получает снимок и момент времени и возвращает
// новый снимок. При отказе возвращается исходный снимок без изменений.
// Сериализацию вызовов по одной партии обеспечивает SessionRunner.
type Orchestrator struct {
	log *zap.SugaredLogger
}

func NewOrchestrator(log *zap.SugaredLogger) *Orchestrator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Orchestrator{log: log}
}

// NewSession создаёт партию, которая ждёт второго игрока.
func (o *Orchestrator) NewSession(id, publicKey string, mode game.ModeName, settings game.Settings, creator game.Player, seed int64, now time.Time) (game.Session, error) {
	if err := settings.Validate(); err != nil {
		return game.Session{}, fmt.Errorf("%w: %v", errors.ErrCreateGameFailed, err)
	}
	mods, err := game.Modifiers(mode, settings)
	if err != nil {
		return game.Session{}, fmt.Errorf("%w: %v", errors.ErrCreateGameFailed, err)
	}

	s := game.Session{
		ID:        id,
		PublicKey: publicKey,
		Mode:      mode,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
		Board:     game.NewBoard(settings.BoardSize),
		Komi:      settings.Komi,
		Status:    game.StatusWaitingOpponent,
		Seed:      seed,
		Ext:       modes.NewExtensions(mods, settings, now),
	}
	switch {
	case s.Ext.Base != nil:
		// цвета решит аукцион
		creator.Color = game.Empty
	case !creator.Color.IsPlayer():
		creator.Color = game.Black
	}
	s.Players[0] = creator
	return s, nil
}

// Join сажает второго игрока и запускает партию.
func (o *Orchestrator) Join(s game.Session, player game.Player, now time.Time) (game.Session, error) {
	if s.Status.IsTerminal() {
		return s, errors.ErrGameEnded
	}
	if s.Status != game.StatusWaitingOpponent || s.IsFull() {
		return s, errors.ErrGameFull
	}
	if _, ok := s.SlotOf(player.ID); ok {
		return s, fmt.Errorf("%w: player %s already in game", errors.ErrJoinGameFailed, player.ID)
	}

	next := s.Clone()
	player.Color = next.Players[0].Color.Opponent()
	next.Players[1] = player
	o.start(&next, now)
	o.advance(&next, now)
	next.UpdatedAt = now
	return next, nil
}

// HandleAction применяет действие игрока. Истёкшие дедлайны сюда не
// входят: перед действием вызывающий прогоняет Tick с тем же now.
func (o *Orchestrator) HandleAction(s game.Session, playerID string, a game.Action, now time.Time) (game.Session, error) {
	if s.Status.IsTerminal() {
		return s, errors.ErrGameEnded
	}
	slot, ok := s.SlotOf(playerID)
	if !ok {
		return s, errors.ErrNotParticipant
	}
	if _, ok := knownActions[a.Type]; !ok {
		return s, errors.ErrUnknownAction
	}

	next := s.Clone()
	if err := o.dispatch(&next, slot, a, now); err != nil {
		return s, err
	}
	o.advance(&next, now)
	next.UpdatedAt = now
	return next, nil
}

// Tick проверяет дедлайны и часы. Второе значение сообщает, было ли изменение.
func (o *Orchestrator) Tick(s game.Session, now time.Time) (game.Session, bool) {
	if s.Status.IsTerminal() {
		return s, false
	}
	next := s.Clone()
	if !o.advance(&next, now) {
		return s, false
	}
	next.UpdatedAt = now
	return next, true
}

func (o *Orchestrator) dispatch(s *game.Session, slot int, a game.Action, now time.Time) error {
	if a.Type == game.ActionResign {
		o.resign(s, slot, now)
		return nil
	}

	switch s.Status {
	case game.StatusBasePlacement:
		if a.Type != game.ActionPlaceBaseStone {
			return errors.ErrWrongPhase
		}
		if err := modes.PlaceBaseStone(s.Ext.Base, s.Board.Size, slot, a.Point); err != nil {
			return err
		}
		// точка секретна до очистки, в рассылку не попадает
		s.LastAction = &game.ActionRecord{Type: a.Type, Point: game.PassPoint}
		return nil

	case game.StatusKomiBidding:
		if a.Type != game.ActionSubmitKomiBid {
			return errors.ErrWrongPhase
		}
		if err := modes.SubmitBid(s.Ext.Base, slot, a.Bid, s.Settings.MaxKomiBid); err != nil {
			return err
		}
		s.LastAction = &game.ActionRecord{Type: a.Type, Point: game.PassPoint}
		return nil

	case game.StatusBaseGameStartConfirmation:
		if a.Type != game.ActionConfirmStart {
			return errors.ErrWrongPhase
		}
		if err := modes.Confirm(s.Ext.Base, slot); err != nil {
			return err
		}
		s.LastAction = &game.ActionRecord{Type: a.Type, Player: s.Players[slot].Color, Point: game.PassPoint}
		return nil

	case game.StatusPlaying:
		return o.playTurn(s, slot, a, now)

	case game.StatusHiddenPlacing, game.StatusScanning, game.StatusMissileSelecting:
		return o.useItem(s, slot, a, now)
	}
	return errors.ErrWrongPhase
}

func (o *Orchestrator) playTurn(s *game.Session, slot int, a game.Action, now time.Time) error {
	color := s.Players[slot].Color
	if color != s.CurrentPlayer {
		return errors.ErrNotYourTurn
	}

	switch a.Type {
	case game.ActionPlace:
		if o.collide(s, color, a.Point, a.Type) {
			return nil
		}
		res := rules.ProcessMove(s.Board, game.Move{Point: a.Point, Player: color}, s.Ko, len(s.Moves), rules.MoveOptions{})
		if !res.Valid {
			return o.reject(s, color, a.Point, res.Reason)
		}
		o.commitMove(s, color, a.Point, res, false, a.Type, now)
		return nil

	case game.ActionPass:
		s.Moves = append(s.Moves, game.Move{Point: game.PassPoint, Player: color})
		s.LastAction = &game.ActionRecord{Type: a.Type, Player: color, Point: game.PassPoint}
		o.afterTurn(s, color, now)
		return nil

	case game.ActionStartHidden:
		return o.startItem(s, color, game.StatusHiddenPlacing, a.Type, now)
	case game.ActionStartScan:
		return o.startItem(s, color, game.StatusScanning, a.Type, now)
	case game.ActionStartMissile:
		return o.startItem(s, color, game.StatusMissileSelecting, a.Type, now)
	}
	return errors.ErrWrongPhase
}

// reject: скрытые камни уже разобраны в collide, так что занятая точка
// здесь означает видимый камень, и клиент не должен был её прислать.
func (o *Orchestrator) reject(s *game.Session, color game.Color, p game.Point, reason error) error {
	if errors.Is(reason, errors.ErrOccupied) {
		o.log.Warnf("session %s: %s played onto visible stone at %s", s.ID, color, p)
	}
	return reason
}

// collide: ход в точку с невидимым для игрока скрытым камнем. Камень
// раскрывается, ход остаётся за игроком.
func (o *Orchestrator) collide(s *game.Session, color game.Color, p game.Point, action game.ActionType) bool {
	con := s.Ext.Concealment
	if con == nil || !s.Board.InBounds(p) || s.Board.At(p) == game.Empty {
		return false
	}
	if !modes.IsHiddenFrom(con, p, color) {
		return false
	}
	modes.Reveal(con, p)
	s.LastAction = &game.ActionRecord{Type: action, Player: color, Point: p, Revealed: []game.Point{p}}
	return true
}

// commitMove применяет принятый ход и прогоняет хуки модификаторов:
// цель по пленным, сокрытие, часы.
func (o *Orchestrator) commitMove(s *game.Session, color game.Color, p game.Point, res rules.MoveResult, hidden bool, action game.ActionType, now time.Time) {
	record := &game.ActionRecord{Type: action, Player: color, Point: p, Captured: res.Captured}
	con := s.Ext.Concealment
	var wasHidden []game.Point
	if con != nil {
		for _, cp := range res.Captured {
			if idx := con.Find(cp); idx >= 0 && !con.Stones[idx].Revealed {
				wasHidden = append(wasHidden, cp)
			}
		}
	}

	gain := modes.CaptureValue(s, res.Captured, color.Opponent())
	modes.ForgetCaptured(s, res.Captured)

	s.Board = res.Board
	s.Ko = res.Ko
	s.Moves = append(s.Moves, game.Move{Point: p, Player: color, Hidden: hidden})
	s.Captures.Set(color, s.Captures.Get(color)+gain)
	s.LastAction = record

	ended := o.checkCaptureTarget(s, color, now)

	if con != nil {
		record.Revealed = append(record.Revealed, wasHidden...)
		if hidden {
			modes.RecordHiddenStone(con, p, color)
		}
		record.Revealed = append(record.Revealed, modes.RevealAfterMove(con, color, p, res.Captured)...)
	}
	if !ended {
		o.passTurn(s, color, now)
	}
}

// afterTurn: хуки конца хода для пасов, где сокрытию делать нечего.
func (o *Orchestrator) afterTurn(s *game.Session, color game.Color, now time.Time) {
	if o.checkCaptureTarget(s, color, now) {
		return
	}
	o.passTurn(s, color, now)
}

func (o *Orchestrator) checkCaptureTarget(s *game.Session, color game.Color, now time.Time) bool {
	if winner, ok := modes.CaptureTargetReached(s, color); ok {
		o.finish(s, winner, game.ResultReasonCaptureTarget, nil, now)
		return true
	}
	return false
}

// passTurn: часы, затем передача хода и проверка конца партии.
func (o *Orchestrator) passTurn(s *game.Session, color game.Color, now time.Time) {
	if c := s.Ext.Clock; c != nil && modes.CompleteTurn(c, color, now) {
		o.finish(s, color.Opponent(), game.ResultReasonTimeout, nil, now)
		return
	}
	s.CurrentPlayer = color.Opponent()
	if game.ConsecutivePasses(s.Moves) >= 2 || (s.Settings.MaxTurns > 0 && len(s.Moves) >= s.Settings.MaxTurns) {
		s.Status = game.StatusScoring
	}
}

func (o *Orchestrator) startItem(s *game.Session, color game.Color, status game.GameStatus, action game.ActionType, now time.Time) error {
	if itemsLeft(s, color, status) <= 0 {
		return errors.ErrNoItemsLeft
	}
	deadline := now.Add(game.ItemUseTimeout)
	s.ItemUse = &game.ItemUse{Player: color, Status: status, Deadline: deadline}
	s.Status = status
	s.PhaseDeadline = &deadline
	if c := s.Ext.Clock; c != nil {
		modes.Pause(c, now)
	}
	s.LastAction = &game.ActionRecord{Type: action, Player: color, Point: game.PassPoint}
	return nil
}

func (o *Orchestrator) useItem(s *game.Session, slot int, a game.Action, now time.Time) error {
	color := s.Players[slot].Color
	if s.ItemUse == nil || s.ItemUse.Player != color {
		return errors.ErrNotYourTurn
	}

	switch {
	case s.Status == game.StatusHiddenPlacing && a.Type == game.ActionPlaceHidden:
		// попадание в чужой скрытый камень предмет не тратит
		if o.collide(s, color, a.Point, a.Type) {
			return nil
		}
		res := rules.ProcessMove(s.Board, game.Move{Point: a.Point, Player: color}, s.Ko, len(s.Moves), rules.MoveOptions{})
		if !res.Valid {
			return o.reject(s, color, a.Point, res.Reason)
		}
		o.consumeItem(s, color, game.StatusHiddenPlacing)
		o.finishItem(s, now)
		o.commitMove(s, color, a.Point, res, true, a.Type, now)
		return nil

	case s.Status == game.StatusScanning && a.Type == game.ActionScan:
		if !s.Board.InBounds(a.Point) {
			return errors.ErrInvalidPoint
		}
		found := modes.Scan(s.Ext.Concealment, color, a.Point)
		o.consumeItem(s, color, game.StatusScanning)
		o.finishItem(s, now)
		// результат скана виден только сканирующему через его представление доски
		s.LastAction = &game.ActionRecord{Type: a.Type, Player: color, Point: a.Point}
		o.log.Debugf("session %s: scan by %s at %s, found=%v", s.ID, color, a.Point, found)
		return nil

	case s.Status == game.StatusMissileSelecting && a.Type == game.ActionLaunchMissile:
		return o.launchMissile(s, color, a, now)
	}
	return errors.ErrWrongPhase
}

func (o *Orchestrator) launchMissile(s *game.Session, color game.Color, a game.Action, now time.Time) error {
	from := a.From
	if !s.Board.InBounds(from) || s.Board.At(from) != color {
		return errors.ErrInvalidPoint
	}
	con := s.Ext.Concealment
	if con != nil {
		if idx := con.Find(from); idx >= 0 && !con.Stones[idx].Revealed {
			return errors.ErrInvalidPoint
		}
	}
	dest, err := modes.SlideTarget(s.Board, from, a.Direction)
	if err != nil {
		return err
	}

	lifted := s.Board.Clone()
	lifted.Remove(from)
	res := rules.ProcessMove(lifted, game.Move{Point: dest, Player: color}, s.Ko, len(s.Moves), rules.MoveOptions{})
	if !res.Valid {
		return o.reject(s, color, dest, res.Reason)
	}

	var blocked []game.Point
	if blocker, ok := modes.Blocker(s.Board, dest, a.Direction); ok && modes.IsHiddenFrom(con, blocker, color) {
		modes.Reveal(con, blocker)
		blocked = append(blocked, blocker)
	}

	o.consumeItem(s, color, game.StatusMissileSelecting)
	o.finishItem(s, now)
	modes.MoveStone(s, from, dest)
	o.commitMove(s, color, dest, res, false, a.Type, now)
	s.LastAction.From = &from
	s.LastAction.Revealed = append(s.LastAction.Revealed, blocked...)
	return nil
}

func itemsLeft(s *game.Session, color game.Color, status game.GameStatus) int {
	switch status {
	case game.StatusHiddenPlacing:
		if s.Ext.Concealment != nil {
			return s.Ext.Concealment.HiddenLeft.Get(color)
		}
	case game.StatusScanning:
		if s.Ext.Concealment != nil {
			return s.Ext.Concealment.ScansLeft.Get(color)
		}
	case game.StatusMissileSelecting:
		if s.Ext.Relocation != nil {
			return s.Ext.Relocation.MissilesLeft.Get(color)
		}
	}
	return 0
}

func (o *Orchestrator) consumeItem(s *game.Session, color game.Color, status game.GameStatus) {
	switch status {
	case game.StatusHiddenPlacing:
		c := s.Ext.Concealment
		c.HiddenLeft.Set(color, c.HiddenLeft.Get(color)-1)
	case game.StatusScanning:
		c := s.Ext.Concealment
		c.ScansLeft.Set(color, c.ScansLeft.Get(color)-1)
	case game.StatusMissileSelecting:
		r := s.Ext.Relocation
		r.MissilesLeft.Set(color, r.MissilesLeft.Get(color)-1)
	}
}

// finishItem возвращает партию в обычную игру, ход остаётся за тем же игроком.
func (o *Orchestrator) finishItem(s *game.Session, now time.Time) {
	s.ItemUse = nil
	s.PhaseDeadline = nil
	s.Status = game.StatusPlaying
	if c := s.Ext.Clock; c != nil {
		modes.Resume(c, now)
	}
}

func (o *Orchestrator) resign(s *game.Session, slot int, now time.Time) {
	color := s.Players[slot].Color
	s.LastAction = &game.ActionRecord{Type: game.ActionResign, Player: color, Point: game.PassPoint}
	if s.Status.IsPreGame() || !color.IsPlayer() {
		s.Status = game.StatusNoContest
		s.PhaseDeadline = nil
		s.ItemUse = nil
		s.Result = &game.Result{Winner: game.Empty, Reason: game.ResultReasonAbandoned, FinishedAt: now}
		o.log.Infof("session %s: no contest, player %s left before play", s.ID, s.Players[slot].ID)
		return
	}
	o.finish(s, color.Opponent(), game.ResultReasonResign, nil, now)
}

func (o *Orchestrator) finish(s *game.Session, winner game.Color, reason string, score *game.PerColor[float64], now time.Time) {
	s.Status = game.StatusEnded
	s.PhaseDeadline = nil
	s.ItemUse = nil
	s.Result = &game.Result{Winner: winner, Reason: reason, Score: score, FinishedAt: now}
	o.log.Infof("session %s ended: winner=%s reason=%s", s.ID, winner, reason)
}

func (o *Orchestrator) score(s *game.Session, now time.Time) {
	points := rules.Score(s.Board, s.Captures)
	total := game.PerColor[float64]{
		Black: float64(points.Black),
		White: float64(points.White) + s.Komi,
	}
	winner := game.Empty
	switch {
	case total.Black > total.White:
		winner = game.Black
	case total.White > total.Black:
		winner = game.White
	}
	o.finish(s, winner, game.ResultReasonScore, &total, now)
}

// start переводит заполненную партию в начальную фазу режима.
func (o *Orchestrator) start(s *game.Session, now time.Time) {
	b := s.Ext.Base
	if b == nil {
		o.beginPlaying(s, now)
		return
	}
	s.Status = game.StatusBasePlacement
	o.setDeadline(s, now, s.Settings.PlacementTimeout)
	for slot, p := range s.Players {
		if p.AI {
			modes.FillRandom(b, s.Board.Size, slot, modes.SessionRand(s))
		}
	}
}

func (o *Orchestrator) beginPlaying(s *game.Session, now time.Time) {
	s.Status = game.StatusPlaying
	s.PhaseDeadline = nil
	s.CurrentPlayer = game.Black
	if c := s.Ext.Clock; c != nil {
		modes.StartTurn(c, now)
	}
}

func (o *Orchestrator) enterBidding(s *game.Session, now time.Time) {
	s.Status = game.StatusKomiBidding
	o.setDeadline(s, now, s.Settings.BiddingTimeout)
	for slot, p := range s.Players {
		if p.AI {
			_ = modes.SubmitBid(s.Ext.Base, slot, modes.NeutralBid, 0)
		}
	}
}

func (o *Orchestrator) resolveBids(s *game.Session, now time.Time) {
	b := s.Ext.Base
	out := modes.ResolveBids(b, s.Settings.Komi, modes.SessionRand(s))
	if out.Rebid {
		o.log.Infof("session %s: equal bids, komi bidding round %d", s.ID, b.Round)
		o.enterBidding(s, now)
		return
	}
	for slot := range s.Players {
		s.Players[slot].Color = out.Colors[slot]
	}
	s.Komi = out.Komi
	modes.ApplyBaseStones(b, s.Players, &s.Board)
	s.Status = game.StatusKomiBidReveal
	o.setDeadline(s, now, s.Settings.RevealDuration)
	o.log.Infof("session %s: colors %v, komi %.1f, coin flip %v", s.ID, out.Colors, out.Komi, out.CoinFlip)
}

// advance прогоняет все переходы, условия которых уже выполнены.
func (o *Orchestrator) advance(s *game.Session, now time.Time) bool {
	changed := false
	for i := 0; i < advanceLimit; i++ {
		if !o.step(s, now) {
			break
		}
		changed = true
	}
	return changed
}

func (o *Orchestrator) step(s *game.Session, now time.Time) bool {
	switch s.Status {
	case game.StatusBasePlacement:
		b := s.Ext.Base
		if !modes.PlacementComplete(b) {
			if !deadlinePassed(s, now) {
				return false
			}
			for slot := range s.Players {
				if modes.PlacementDone(b, slot) {
					continue
				}
				added, scanned := modes.FillRandom(b, s.Board.Size, slot, modes.SessionRand(s))
				o.fallback(s, slot, fmt.Sprintf("placed %d random base stones, scan fallback=%v", added, scanned), now)
			}
		}
		if removed := modes.Sanitize(b, s.Board.Size); len(removed) > 0 {
			o.log.Infof("session %s: base stones removed by sanitation: %v", s.ID, removed)
		}
		o.enterBidding(s, now)
		return true

	case game.StatusKomiBidding:
		b := s.Ext.Base
		if !modes.BidsComplete(b) {
			if !deadlinePassed(s, now) {
				return false
			}
			for slot := range s.Players {
				if b.Bids[slot] == nil {
					_ = modes.SubmitBid(b, slot, modes.NeutralBid, 0)
					o.fallback(s, slot, "neutral komi bid", now)
				}
			}
		}
		o.resolveBids(s, now)
		return true

	case game.StatusKomiBidReveal:
		if !deadlinePassed(s, now) {
			return false
		}
		s.Status = game.StatusBaseGameStartConfirmation
		o.setDeadline(s, now, s.Settings.ConfirmationTimeout)
		for slot, p := range s.Players {
			if p.AI {
				_ = modes.Confirm(s.Ext.Base, slot)
			}
		}
		return true

	case game.StatusBaseGameStartConfirmation:
		b := s.Ext.Base
		if !modes.BothConfirmed(b) {
			if !deadlinePassed(s, now) {
				return false
			}
			for slot := range s.Players {
				if !b.Confirmed[slot] {
					b.Confirmed[slot] = true
					o.fallback(s, slot, "start confirmed by deadline", now)
				}
			}
		}
		o.beginPlaying(s, now)
		return true

	case game.StatusPlaying:
		if c := s.Ext.Clock; c != nil && modes.TimedOut(c, s.CurrentPlayer, now) {
			o.finish(s, s.CurrentPlayer.Opponent(), game.ResultReasonTimeout, nil, now)
			return true
		}
		return false

	case game.StatusHiddenPlacing, game.StatusScanning, game.StatusMissileSelecting:
		if !deadlinePassed(s, now) {
			return false
		}
		color := s.ItemUse.Player
		o.consumeItem(s, color, s.Status)
		for slot, p := range s.Players {
			if p.Color == color {
				o.fallback(s, slot, fmt.Sprintf("%s expired, item forfeited", s.Status), now)
			}
		}
		o.finishItem(s, now)
		return true

	case game.StatusScoring:
		o.score(s, now)
		return true
	}
	return false
}

func (o *Orchestrator) setDeadline(s *game.Session, now time.Time, d time.Duration) {
	deadline := now.Add(d)
	s.PhaseDeadline = &deadline
}

func deadlinePassed(s *game.Session, now time.Time) bool {
	return s.PhaseDeadline != nil && !now.Before(*s.PhaseDeadline)
}

func (o *Orchestrator) fallback(s *game.Session, slot int, detail string, now time.Time) {
	f := game.Fallback{
		Code:   game.FallbackDeadlineDefault,
		Status: s.Status,
		Player: s.Players[slot].ID,
		Detail: detail,
		At:     now,
	}
	s.Fallbacks = append(s.Fallbacks, f)
	o.log.Warnf("session %s: %s for player %s in %s: %s", s.ID, f.Code, f.Player, f.Status, detail)
}
