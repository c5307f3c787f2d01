package game

type CreateGameRequest struct {
	Mode        ModeName  `json:"mode"`
	Settings    *Settings `json:"settings,omitempty"`
	VsAI        bool      `json:"vs_ai"`
	CreatorSide Color     `json:"creator_side"`
}

type GameCreateResponse struct {
	ID        string `json:"id"`
	UniqueKey string `json:"unique_key"`
}

type GameJoinRequest struct {
	GameKey string `json:"game_key"`
}

// ActionResponse отправляется по HTTP и в websocket после каждого действия.
type ActionResponse struct {
	OK      bool         `json:"ok"`
	Error   string       `json:"error,omitempty"`
	Session *SessionView `json:"session,omitempty"`
}

// SessionView: снимок партии глазами конкретного участника.
type SessionView struct {
	ID            string         `json:"id"`
	PublicKey     string         `json:"public_key"`
	Mode          ModeName       `json:"mode"`
	Status        GameStatus     `json:"status"`
	Board         Board          `json:"board"`
	CurrentPlayer Color          `json:"current_player"`
	You           Color          `json:"you"`
	Players       [2]Player      `json:"players"`
	Captures      Captures       `json:"captures"`
	Komi          float64        `json:"komi"`
	MoveCount     int            `json:"move_count"`
	Ko            *KoState       `json:"ko,omitempty"`
	PhaseDeadline *int64         `json:"phase_deadline,omitempty"`
	ItemUse       *ItemUse       `json:"item_use,omitempty"`
	Clock         *ClockState    `json:"clock,omitempty"`
	Items         map[string]int `json:"items,omitempty"`
	BaseStones    []Point        `json:"base_stones,omitempty"`
	Bids          []*KomiBid     `json:"bids,omitempty"`
	LastAction    *ActionRecord  `json:"last_action,omitempty"`
	Result        *Result        `json:"result,omitempty"`
}
