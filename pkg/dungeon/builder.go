package dungeon

import (
	"context"
	"math/rand"
	"time"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/telemetry"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Builder предоставляет fluent API для генерации карт
type Builder struct {
	archetype  enums.Archetype
	width      int
	height     int
	difficulty int
	room       *domain.Area
	textures   bool
	rng        *rand.Rand
}

// NewBuilder создает builder карты заданного архетипа
func NewBuilder(archetype enums.Archetype, rng *rand.Rand) *Builder {
	return &Builder{
		archetype:  archetype,
		width:      MapWidth,
		height:     MapHeight,
		difficulty: 1,
		textures:   true,
		rng:        rng,
	}
}

// WithSize устанавливает размер карты
func (b *Builder) WithSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

func (b *Builder) WithDifficulty(difficulty int) *Builder {
	b.difficulty = difficulty
	return b
}

// WithRoom задаёт прямоугольник SingleRoom. По умолчанию - вся карта.
func (b *Builder) WithRoom(area domain.Area) *Builder {
	b.room = &area
	return b
}

// Build генерирует карту. Ошибка возможна только из-за размеров.
func (b *Builder) Build(ctx context.Context) (*domain.Map, error) {
	_, span := telemetry.Tracer("dungeon").Start(ctx, "map.generate")
	defer span.End()

	start := time.Now()
	if b.rng == nil {
		b.rng = utils.NewRand(start.UnixNano())
	}
	m := domain.NewMap(b.width, b.height, b.archetype)
	m.Difficulty = b.difficulty

	var err error
	switch b.archetype {
	case enums.ArchetypeDungeon:
		err = b.generateDungeon(m)
	case enums.ArchetypeTown:
		err = b.generateTown(m)
	case enums.ArchetypeCave:
		err = b.generateCave(m)
	case enums.ArchetypeSingleRoom:
		err = b.generateSingleRoom(m)
	default:
		err = &domain.GenerationError{Archetype: b.archetype, Width: b.width, Height: b.height, Reason: "unknown archetype"}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.For("dungeon").WithError(err).Warn("Map generation failed")
		return nil, err
	}

	if b.textures && b.archetype == enums.ArchetypeDungeon {
		applyTextures(m, b.rng)
	}

	span.SetAttributes(
		attribute.String("map.archetype", b.archetype.String()),
		attribute.Int("map.width", b.width),
		attribute.Int("map.height", b.height),
		attribute.Int("map.areas", len(m.Areas)),
		attribute.Int64("map.generation_ms", time.Since(start).Milliseconds()),
	)

	logger.For("dungeon").WithFields(logrus.Fields{
		"archetype": b.archetype.String(),
		"width":     b.width,
		"height":    b.height,
		"areas":     len(m.Areas),
	}).Debug("Map generated")

	return m, nil
}
