package game

import (
	"fmt"
	"time"
)

type ModeName string

const (
	ModeStandard ModeName = "standard"
	ModeCapture  ModeName = "capture"
	ModeSpeed    ModeName = "speed"
	ModeHidden   ModeName = "hidden"
	ModeMissile  ModeName = "missile"
	ModeBase     ModeName = "base"
	ModeMix      ModeName = "mix"
)

type Modifier string

const (
	ModifierCaptureTarget Modifier = "capture_target"
	ModifierTimeControl   Modifier = "time_control"
	ModifierConcealment   Modifier = "concealment"
	ModifierRelocation    Modifier = "relocation"
	ModifierBasePlacement Modifier = "base_placement"
)

type TimeControlKind string

const (
	TimeControlNone    TimeControlKind = ""
	TimeControlByoyomi TimeControlKind = "byoyomi"
	TimeControlFischer TimeControlKind = "fischer"
)

type TimeControl struct {
	Kind           TimeControlKind `json:"kind" bson:"kind"`
	MainTime       time.Duration   `json:"main_time" bson:"main_time"`
	ByoyomiTime    time.Duration   `json:"byoyomi_time,omitempty" bson:"byoyomi_time,omitempty"`
	ByoyomiPeriods int             `json:"byoyomi_periods,omitempty" bson:"byoyomi_periods,omitempty"`
	Increment      time.Duration   `json:"increment,omitempty" bson:"increment,omitempty"`
}

type Settings struct {
	BoardSize int     `json:"board_size" bson:"board_size"`
	Komi      float64 `json:"komi" bson:"komi"`
	MaxTurns  int     `json:"max_turns,omitempty" bson:"max_turns,omitempty"`

	TimeControl TimeControl `json:"time_control" bson:"time_control"`

	CaptureTarget int `json:"capture_target,omitempty" bson:"capture_target,omitempty"`

	HiddenStones      int `json:"hidden_stones,omitempty" bson:"hidden_stones,omitempty"`
	Scans             int `json:"scans,omitempty" bson:"scans,omitempty"`
	HiddenStoneValue  int `json:"hidden_stone_value,omitempty" bson:"hidden_stone_value,omitempty"`
	Missiles          int `json:"missiles,omitempty" bson:"missiles,omitempty"`
	BaseStonesPerSide int `json:"base_stones_per_player,omitempty" bson:"base_stones_per_player,omitempty"`
	BaseStoneValue    int `json:"base_stone_value,omitempty" bson:"base_stone_value,omitempty"`
	MaxKomiBid        int `json:"max_komi_bid,omitempty" bson:"max_komi_bid,omitempty"`

	PlacementTimeout    time.Duration `json:"placement_timeout,omitempty" bson:"placement_timeout,omitempty"`
	BiddingTimeout      time.Duration `json:"bidding_timeout,omitempty" bson:"bidding_timeout,omitempty"`
	RevealDuration      time.Duration `json:"reveal_duration,omitempty" bson:"reveal_duration,omitempty"`
	ConfirmationTimeout time.Duration `json:"confirmation_timeout,omitempty" bson:"confirmation_timeout,omitempty"`

	// только для mix
	MixModes []ModeName `json:"mix_modes,omitempty" bson:"mix_modes,omitempty"`
}

// ItemUseTimeout: фиксированный таймер подсостояний предметов.
const ItemUseTimeout = 30 * time.Second

func DefaultSettings(mode ModeName) Settings {
	s := Settings{
		BoardSize:           19,
		Komi:                6.5,
		HiddenStoneValue:    5,
		BaseStoneValue:      5,
		MaxKomiBid:          50,
		PlacementTimeout:    60 * time.Second,
		BiddingTimeout:      30 * time.Second,
		RevealDuration:      5 * time.Second,
		ConfirmationTimeout: 30 * time.Second,
	}
	switch mode {
	case ModeCapture:
		s.BoardSize = 9
		s.Komi = 0
		s.CaptureTarget = 20
	case ModeSpeed:
		s.TimeControl = TimeControl{Kind: TimeControlFischer, MainTime: 5 * time.Minute, Increment: 5 * time.Second}
	case ModeHidden:
		s.BoardSize = 13
		s.HiddenStones = 2
		s.Scans = 3
	case ModeMissile:
		s.BoardSize = 13
		s.Missiles = 3
	case ModeBase:
		s.BoardSize = 13
		s.Komi = 0.5
		s.BaseStonesPerSide = 4
	case ModeMix:
		s.BoardSize = 13
		s.CaptureTarget = 20
		s.HiddenStones = 2
		s.Scans = 3
		s.Missiles = 3
		s.MixModes = []ModeName{ModeCapture, ModeHidden, ModeMissile}
	}
	return s
}

// Modifiers возвращает набор модификаторов режима.
// Контроль времени подключается для любого режима, если он задан в настройках.
func Modifiers(mode ModeName, s Settings) ([]Modifier, error) {
	var mods []Modifier
	switch mode {
	case ModeStandard:
	case ModeSpeed:
		if s.TimeControl.Kind == TimeControlNone {
			return nil, fmt.Errorf("speed mode needs a time control")
		}
	case ModeCapture:
		mods = append(mods, ModifierCaptureTarget)
	case ModeHidden:
		mods = append(mods, ModifierConcealment)
	case ModeMissile:
		mods = append(mods, ModifierRelocation)
	case ModeBase:
		mods = append(mods, ModifierBasePlacement)
	case ModeMix:
		if len(s.MixModes) < 2 {
			return nil, fmt.Errorf("mix mode needs at least two modes, got %d", len(s.MixModes))
		}
		for _, m := range s.MixModes {
			if m == ModeMix || m == ModeBase {
				return nil, fmt.Errorf("mode %q cannot be mixed", m)
			}
			sub, err := Modifiers(m, s)
			if err != nil {
				return nil, err
			}
			mods = appendUnique(mods, sub...)
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if s.TimeControl.Kind != TimeControlNone {
		mods = appendUnique(mods, ModifierTimeControl)
	}
	return mods, nil
}

func appendUnique(mods []Modifier, add ...Modifier) []Modifier {
	for _, m := range add {
		found := false
		for _, existing := range mods {
			if existing == m {
				found = true
				break
			}
		}
		if !found {
			mods = append(mods, m)
		}
	}
	return mods
}

func (s Settings) Validate() error {
	if s.BoardSize < 5 || s.BoardSize > 19 {
		return fmt.Errorf("board size %d out of range 5..19", s.BoardSize)
	}
	switch s.TimeControl.Kind {
	case TimeControlNone:
	case TimeControlByoyomi:
		if s.TimeControl.ByoyomiTime <= 0 || s.TimeControl.ByoyomiPeriods <= 0 {
			return fmt.Errorf("byoyomi needs positive period time and count")
		}
	case TimeControlFischer:
		if s.TimeControl.MainTime <= 0 {
			return fmt.Errorf("fischer needs positive main time")
		}
	default:
		return fmt.Errorf("unknown time control %q", s.TimeControl.Kind)
	}
	if s.BaseStonesPerSide < 0 || s.BaseStonesPerSide*2 > s.BoardSize*s.BoardSize {
		return fmt.Errorf("base stones per player %d does not fit the board", s.BaseStonesPerSide)
	}
	return nil
}
