package game

type ActionType string

const (
	ActionPlace          ActionType = "place"
	ActionPass           ActionType = "pass"
	ActionResign         ActionType = "resign"
	ActionPlaceBaseStone ActionType = "place_base_stone"
	ActionSubmitKomiBid  ActionType = "submit_komi_bid"
	ActionConfirmStart   ActionType = "confirm_base_start"
	ActionStartHidden    ActionType = "start_hidden"
	ActionPlaceHidden    ActionType = "place_hidden"
	ActionStartScan      ActionType = "start_scan"
	ActionScan           ActionType = "scan"
	ActionStartMissile   ActionType = "start_missile"
	ActionLaunchMissile  ActionType = "launch_missile"
)

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Delta: смещение по доске, y растёт вниз.
func (d Direction) Delta() (dx, dy int, ok bool) {
	switch d {
	case DirectionUp:
		return 0, -1, true
	case DirectionDown:
		return 0, 1, true
	case DirectionLeft:
		return -1, 0, true
	case DirectionRight:
		return 1, 0, true
	}
	return 0, 0, false
}

type KomiBid struct {
	Color Color `json:"color" bson:"color"`
	Komi  int   `json:"komi" bson:"komi"`
}

// Action: единственный вход оркестратора от клиента.
type Action struct {
	Type      ActionType `json:"type"`
	Point     Point      `json:"point"`
	From      Point      `json:"from"`
	Direction Direction  `json:"direction,omitempty"`
	Bid       KomiBid    `json:"bid"`
}
