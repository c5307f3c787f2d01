package game

import "time"

// Extensions: состояние модификаторов режима. Поле заполнено тогда и
// только тогда, когда режим включает соответствующий модификатор.
type Extensions struct {
	CaptureTarget *CaptureTargetState `json:"capture_target,omitempty" bson:"capture_target,omitempty"`
	Clock         *ClockState         `json:"clock,omitempty" bson:"clock,omitempty"`
	Concealment   *ConcealmentState   `json:"concealment,omitempty" bson:"concealment,omitempty"`
	Relocation    *RelocationState    `json:"relocation,omitempty" bson:"relocation,omitempty"`
	Base          *BasePlacementState `json:"base,omitempty" bson:"base,omitempty"`
}

type CaptureTargetState struct {
	Target int `json:"target" bson:"target"`
}

type ClockState struct {
	Kind       TimeControlKind         `json:"kind" bson:"kind"`
	Remaining  PerColor[time.Duration] `json:"remaining" bson:"remaining"`
	Periods    PerColor[int]           `json:"periods" bson:"periods"`
	PeriodTime time.Duration           `json:"period_time,omitempty" bson:"period_time,omitempty"`
	Increment  time.Duration           `json:"increment,omitempty" bson:"increment,omitempty"`

	TurnStartedAt time.Time  `json:"turn_started_at" bson:"turn_started_at"`
	PausedAt      *time.Time `json:"paused_at,omitempty" bson:"paused_at,omitempty"`
}

type HiddenStone struct {
	Point    Point `json:"point" bson:"point"`
	Owner    Color `json:"owner" bson:"owner"`
	Revealed bool  `json:"revealed" bson:"revealed"`
	// Scanned: камень виден сопернику после сканирования, но не раскрыт всем.
	Scanned bool `json:"scanned" bson:"scanned"`
}

type ConcealmentState struct {
	HiddenLeft PerColor[int] `json:"hidden_left" bson:"hidden_left"`
	ScansLeft  PerColor[int] `json:"scans_left" bson:"scans_left"`
	StoneValue int           `json:"stone_value" bson:"stone_value"`
	Stones     []HiddenStone `json:"stones,omitempty" bson:"stones,omitempty"`
}

// Find возвращает индекс скрытого камня в точке или -1.
func (c *ConcealmentState) Find(p Point) int {
	for i, hs := range c.Stones {
		if hs.Point == p {
			return i
		}
	}
	return -1
}

type RelocationState struct {
	MissilesLeft PerColor[int] `json:"missiles_left" bson:"missiles_left"`
}

type BasePlacementState struct {
	PerPlayer  int        `json:"per_player" bson:"per_player"`
	StoneValue int        `json:"stone_value" bson:"stone_value"`
	Stones     [2][]Point `json:"stones" bson:"stones"`
	Sanitized  bool       `json:"sanitized" bson:"sanitized"`

	// Initial: расстановка после чистки, дальше не меняется
	Initial [2][]Point `json:"initial,omitempty" bson:"initial,omitempty"`

	Round        int         `json:"round" bson:"round"`
	Bids         [2]*KomiBid `json:"bids" bson:"bids"`
	PreviousBids [2]*KomiBid `json:"previous_bids,omitempty" bson:"previous_bids,omitempty"`
	CoinFlip     bool        `json:"coin_flip" bson:"coin_flip"`
	Confirmed    [2]bool     `json:"confirmed" bson:"confirmed"`
}

func (e Extensions) Clone() Extensions {
	var c Extensions
	if e.CaptureTarget != nil {
		ct := *e.CaptureTarget
		c.CaptureTarget = &ct
	}
	if e.Clock != nil {
		clock := *e.Clock
		if e.Clock.PausedAt != nil {
			p := *e.Clock.PausedAt
			clock.PausedAt = &p
		}
		c.Clock = &clock
	}
	if e.Concealment != nil {
		con := *e.Concealment
		con.Stones = append([]HiddenStone(nil), e.Concealment.Stones...)
		c.Concealment = &con
	}
	if e.Relocation != nil {
		rel := *e.Relocation
		c.Relocation = &rel
	}
	if e.Base != nil {
		base := *e.Base
		for i := range base.Stones {
			base.Stones[i] = append([]Point(nil), e.Base.Stones[i]...)
			base.Initial[i] = append([]Point(nil), e.Base.Initial[i]...)
			base.Bids[i] = cloneBid(e.Base.Bids[i])
			base.PreviousBids[i] = cloneBid(e.Base.PreviousBids[i])
		}
		c.Base = &base
	}
	return c
}

func cloneBid(b *KomiBid) *KomiBid {
	if b == nil {
		return nil
	}
	bid := *b
	return &bid
}
