package game

// Position: то, что видит ИИ перед ходом: доска без чужих скрытых
// камней и минимум истории.
type Position struct {
	Board          Board    `json:"board"`
	Player         Color    `json:"player"`
	Ko             *KoState `json:"ko,omitempty"`
	Turn           int      `json:"turn"`
	OpponentPassed bool     `json:"opponent_passed"`
	Seed           int64    `json:"seed"`
}
