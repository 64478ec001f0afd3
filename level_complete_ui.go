package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
)

// NewLevelCompleteUI builds the dialog shown once the presents are delivered
// and the player is back on the roof.
func NewLevelCompleteUI(g *Game) *ebitenui.UI {
	s := g.controller.Session()
	var lines []string
	last := true
	if s != nil {
		lines = append(lines, fmt.Sprintf("%s delivered", s.Level.Name))
		if jolly := s.Jolly(); jolly != nil {
			lines = append(lines, fmt.Sprintf("jolly left: %d", jolly.Value))
		}
		last = s.Index >= g.controller.LevelCount()-1
	}

	var buttons []dialogButton
	if !last {
		buttons = append(buttons, dialogButton{label: "Next house", onClick: g.controller.Advance})
	} else {
		lines = append(lines, "That was the last house. Merry Christmas!")
	}
	buttons = append(buttons,
		dialogButton{label: "Replay", onClick: g.controller.Restart},
		dialogButton{label: "Level select", onClick: g.controller.ReturnToMenu},
	)
	return newDialog("Level complete!", lines, buttons...)
}
