package component

import "strconv"

// ScoreText mirrors the player's coin count for the HUD.
type ScoreText struct {
	Coins        int
	RenderedText string
}

var ScoreTextComponent = NewComponent[ScoreText]()

// Set updates the count and re-renders the label when it changed.
func (s *ScoreText) Set(coins int) {
	if s.RenderedText != "" && s.Coins == coins {
		return
	}
	s.Coins = coins
	s.RenderedText = "Coins: " + strconv.Itoa(coins)
}
