package systems

import (
	"fmt"
	"math/rand"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

// World - общее состояние, с которым работают все системы:
// арена акторов, генератор случайных чисел и приёмник сообщений.
type World struct {
	Reg    *domain.Registry
	Rng    *rand.Rand
	Events domain.EventSink

	nextEffectID int
	log          *logrus.Entry
}

func NewWorld(reg *domain.Registry, rng *rand.Rand, events domain.EventSink) *World {
	if events == nil {
		events = domain.NopSink{}
	}
	return &World{
		Reg:    reg,
		Rng:    rng,
		Events: events,
		log:    logger.For("systems"),
	}
}

// Emit отправляет игровое сообщение и дублирует его в лог.
func (w *World) Emit(category enums.MessageCategory, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	w.Events.Emit(category, text)
	w.log.WithField("category", category.String()).Debug(text)
}

func (w *World) newEffectID() int {
	w.nextEffectID++
	return w.nextEffectID
}
