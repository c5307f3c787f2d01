package game

type GameStatus string

const (
	// партия создана, второй игрок ещё не подключился
	StatusWaitingOpponent GameStatus = "waiting_opponent"

	StatusBasePlacement             GameStatus = "base_placement"
	StatusKomiBidding               GameStatus = "komi_bidding"
	StatusKomiBidReveal             GameStatus = "komi_bid_reveal"
	StatusBaseGameStartConfirmation GameStatus = "base_game_start_confirmation"
	StatusPlaying                   GameStatus = "playing"
	StatusScoring                   GameStatus = "scoring"
	StatusEnded                     GameStatus = "ended"
	StatusNoContest                 GameStatus = "no_contest"

	// подсостояния использования предметов, основные часы стоят
	StatusHiddenPlacing    GameStatus = "hidden_placing"
	StatusScanning         GameStatus = "scanning"
	StatusMissileSelecting GameStatus = "missile_selecting"
)

func (s GameStatus) IsTerminal() bool {
	return s == StatusEnded || s == StatusNoContest
}

func (s GameStatus) IsItemUsage() bool {
	return s == StatusHiddenPlacing || s == StatusScanning || s == StatusMissileSelecting
}

// IsPreGame: фазы до начала обычной игры.
func (s GameStatus) IsPreGame() bool {
	switch s {
	case StatusWaitingOpponent, StatusBasePlacement, StatusKomiBidding, StatusKomiBidReveal, StatusBaseGameStartConfirmation:
		return true
	}
	return false
}
