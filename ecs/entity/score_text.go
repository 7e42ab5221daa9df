package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/ecs"
)

func NewScoreText(w *ecs.World) (ecs.Entity, error) {
	e, err := BuildEntity(w, "score_text.yaml")
	if err != nil {
		return 0, err
	}
	if err := TagLevelEntity(w, e); err != nil {
		return 0, fmt.Errorf("score text: tag level entity: %w", err)
	}
	return e, nil
}
