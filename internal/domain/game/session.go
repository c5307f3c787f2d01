package game

import "time"

type Player struct {
	ID    string `json:"id" bson:"id"`
	AI    bool   `json:"ai" bson:"ai"`
	Color Color  `json:"color" bson:"color"`
}

type Result struct {
	Winner     Color              `json:"winner" bson:"winner"`
	Reason     string             `json:"reason" bson:"reason"`
	Score      *PerColor[float64] `json:"score,omitempty" bson:"score,omitempty"`
	FinishedAt time.Time          `json:"finished_at" bson:"finished_at"`
}

const (
	ResultReasonScore         = "score"
	ResultReasonResign        = "resign"
	ResultReasonTimeout       = "timeout"
	ResultReasonCaptureTarget = "capture_target"
	ResultReasonAbandoned     = "abandoned"
)

// FallbackDeadlineDefault: код записи о подставленном по дедлайну значении.
const FallbackDeadlineDefault = "deadline_default_applied"

type Fallback struct {
	Code   string     `json:"code" bson:"code"`
	Status GameStatus `json:"status" bson:"status"`
	Player string     `json:"player" bson:"player"`
	Detail string     `json:"detail" bson:"detail"`
	At     time.Time  `json:"at" bson:"at"`
}

// ActionRecord описывает последний применённый переход для рассылки клиентам.
type ActionRecord struct {
	Type     ActionType `json:"type" bson:"type"`
	Player   Color      `json:"player" bson:"player"`
	Point    Point      `json:"point" bson:"point"`
	From     *Point     `json:"from,omitempty" bson:"from,omitempty"`
	Captured []Point    `json:"captured,omitempty" bson:"captured,omitempty"`
	Revealed []Point    `json:"revealed,omitempty" bson:"revealed,omitempty"`
}

// Session: полный снимок партии. Всё состояние, нужное для
// восстановления после переподключения, хранится здесь.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	PublicKey string    `json:"public_key" bson:"public_key"`
	Mode      ModeName  `json:"mode" bson:"mode"`
	Settings  Settings  `json:"settings" bson:"settings"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	Players       [2]Player  `json:"players" bson:"players"`
	Board         Board      `json:"board" bson:"board"`
	Moves         []Move     `json:"moves" bson:"moves"`
	Ko            *KoState   `json:"ko,omitempty" bson:"ko,omitempty"`
	Captures      Captures   `json:"captures" bson:"captures"`
	CurrentPlayer Color      `json:"current_player" bson:"current_player"`
	Komi          float64    `json:"komi" bson:"komi"`
	Status        GameStatus `json:"status" bson:"status"`

	PhaseDeadline *time.Time `json:"phase_deadline,omitempty" bson:"phase_deadline,omitempty"`
	ItemUse       *ItemUse   `json:"item_use,omitempty" bson:"item_use,omitempty"`

	Ext Extensions `json:"ext" bson:"ext"`

	Seed        int64 `json:"seed" bson:"seed"`
	RandCounter int64 `json:"rand_counter" bson:"rand_counter"`

	LastAction *ActionRecord `json:"last_action,omitempty" bson:"last_action,omitempty"`
	Fallbacks  []Fallback    `json:"fallbacks,omitempty" bson:"fallbacks,omitempty"`
	Result     *Result       `json:"result,omitempty" bson:"result,omitempty"`
}

type ItemUse struct {
	Player   Color      `json:"player" bson:"player"`
	Status   GameStatus `json:"status" bson:"status"`
	Deadline time.Time  `json:"deadline" bson:"deadline"`
}

// SlotOf возвращает индекс участника (0 у создателя) по ID.
func (s *Session) SlotOf(playerID string) (int, bool) {
	for i, p := range s.Players {
		if p.ID != "" && p.ID == playerID {
			return i, true
		}
	}
	return -1, false
}

func (s *Session) PlayerByColor(c Color) (Player, bool) {
	for _, p := range s.Players {
		if p.Color == c && c != Empty {
			return p, true
		}
	}
	return Player{}, false
}

func (s *Session) IsFull() bool {
	return s.Players[0].ID != "" && s.Players[1].ID != ""
}

func (s *Session) HasAI() bool {
	return s.Players[0].AI || s.Players[1].AI
}

// Clone делает глубокую копию, оркестратор работает только с копиями.
func (s Session) Clone() Session {
	c := s
	c.Settings.MixModes = append([]ModeName(nil), s.Settings.MixModes...)
	c.Board = s.Board.Clone()
	c.Moves = append([]Move(nil), s.Moves...)
	if s.Ko != nil {
		ko := *s.Ko
		c.Ko = &ko
	}
	if s.PhaseDeadline != nil {
		d := *s.PhaseDeadline
		c.PhaseDeadline = &d
	}
	if s.ItemUse != nil {
		iu := *s.ItemUse
		c.ItemUse = &iu
	}
	c.Ext = s.Ext.Clone()
	if s.LastAction != nil {
		la := *s.LastAction
		if s.LastAction.From != nil {
			from := *s.LastAction.From
			la.From = &from
		}
		la.Captured = append([]Point(nil), s.LastAction.Captured...)
		la.Revealed = append([]Point(nil), s.LastAction.Revealed...)
		c.LastAction = &la
	}
	c.Fallbacks = append([]Fallback(nil), s.Fallbacks...)
	if s.Result != nil {
		r := *s.Result
		if s.Result.Score != nil {
			sc := *s.Result.Score
			r.Score = &sc
		}
		c.Result = &r
	}
	return c
}
