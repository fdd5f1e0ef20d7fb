package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/internal/telemetry"
	"github.com/Frostlock/Warrens-II/pkg/dungeon"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	townName = "Town"
	caveName = "Cave of the Cannibal"

	caveDifficulty   = 2
	caveMaxMonsters  = 4 // [0, 4)
	quickStartChestX = 2
	quickStartChestY = 2
)

var npcNames = []string{"John", "Jake", "Jacob", "Jeremy", "Mr J"}

// WorldLayout - результат построения мира.
type WorldLayout struct {
	Library *dungeon.Library
	Town    *domain.Level
	Player  *domain.Actor

	// Levels - корневые уровни в порядке создания. Дома - вложенные уровни города.
	Levels []*domain.Level
}

type worldBuilder struct {
	ctx context.Context
	cfg Config
	w   *systems.World
	lib *dungeon.Library
	log *logrus.Entry

	levels []*domain.Level
}

// BuildWorld создает все начальные уровни, их население и игрока.
// Карты засеваются от мастер-зерна и имени уровня, население - генератором мира.
func BuildWorld(ctx context.Context, cfg Config, w *systems.World) (*WorldLayout, error) {
	ctx, span := telemetry.Tracer("engine").Start(ctx, "world.build")
	defer span.End()

	lib, err := dungeon.LoadLibrary(utils.NewRand(utils.DeriveSeed(cfg.Seed, "library")))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load library: %w", err)
	}

	b := &worldBuilder{
		ctx: ctx,
		cfg: cfg,
		w:   w,
		lib: lib,
		log: logger.For("world_builder"),
	}

	layout, err := b.build()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("world.seed", cfg.Seed),
		attribute.Int("world.levels", len(w.Reg.Levels())),
		attribute.Int("world.actors", w.Reg.Count()),
	)
	return layout, nil
}

func (b *worldBuilder) build() (*WorldLayout, error) {
	// 1. Город с домами
	town, err := b.addTown()
	if err != nil {
		return nil, err
	}

	// 2. Подземелья под городом, соединены последовательно
	prev := town
	for i := 1; i <= b.cfg.DungeonLevels; i++ {
		lvl, err := b.addDungeon(i)
		if err != nil {
			return nil, err
		}
		if err := b.connect(prev, lvl, dungeon.StairsDown, dungeon.StairsUp); err != nil {
			return nil, err
		}
		prev = lvl
	}

	// 3. Пещеры: вход из города и из последнего подземелья (дальше - из случайного уровня)
	for i := 0; i < b.cfg.CaveLevels; i++ {
		other := prev
		if i > 0 {
			other = b.levels[b.w.Rng.Intn(len(b.levels))]
		}
		if _, err := b.addCave(town, other); err != nil {
			return nil, err
		}
	}

	// 4. Игрок
	player, err := b.addPlayer(town)
	if err != nil {
		return nil, err
	}

	b.w.Emit(enums.MessageGame, "You are %s, a young and fearless adventurer. It is time to begin your "+
		"legendary and without doubt heroic expedition into the unknown. Good luck!", player.Name)

	b.log.WithFields(logrus.Fields{
		"seed":   b.cfg.Seed,
		"levels": len(b.w.Reg.Levels()),
		"actors": b.w.Reg.Count(),
	}).Info("World built")

	return &WorldLayout{
		Library: b.lib,
		Town:    town,
		Player:  player,
		Levels:  b.levels,
	}, nil
}

// newLevel генерирует карту и регистрирует корневой уровень.
func (b *worldBuilder) newLevel(name string, archetype enums.Archetype, difficulty int) (*domain.Level, error) {
	b.log.WithFields(logrus.Fields{"level": name, "difficulty": difficulty}).Debug("Creating level")

	m, err := dungeon.NewMap(b.ctx, b.cfg.MapWidth, b.cfg.MapHeight, archetype, difficulty,
		dungeon.WithRand(b.levelRand(name)))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	lvl := domain.NewLevel(name, difficulty, m)
	b.w.Reg.AddLevel(lvl)
	b.levels = append(b.levels, lvl)
	return lvl, nil
}

func (b *worldBuilder) levelRand(name string) *rand.Rand {
	return utils.NewRand(utils.DeriveSeed(b.cfg.Seed, name))
}

// --- ГОРОД ---

func (b *worldBuilder) addTown() (*domain.Level, error) {
	town, err := b.newLevel(townName, enums.ArchetypeTown, 1)
	if err != nil {
		return nil, err
	}
	for i, house := range town.Map.Areas {
		if err := b.addHouse(town, house, i); err != nil {
			return nil, err
		}
	}
	return town, nil
}

// addHouse строит интерьер дома вложенным уровнем и прорезает дверь в обеих картах.
func (b *worldBuilder) addHouse(town *domain.Level, house domain.Area, idx int) error {
	rng := b.levelRand(fmt.Sprintf("house/%d", idx))

	m, err := dungeon.NewMap(b.ctx, town.Map.Width, town.Map.Height, enums.ArchetypeSingleRoom, town.Difficulty,
		dungeon.WithArea(house), dungeon.WithRand(rng))
	if err != nil {
		return fmt.Errorf("build house %d: %w", idx, err)
	}
	interior := domain.NewLevel("house", town.Difficulty, m)
	town.AddSubLevel(interior)
	b.w.Reg.AddLevel(interior)

	// Дверь в стене, углы исключены
	locations := doorLocations(house)
	door := locations[rng.Intn(len(locations))]
	for _, dm := range []*domain.Map{town.Map, m} {
		dm.Tile(door.X, door.Y).Paint(false, enums.MaterialDoor, dungeon.DoorColor)
	}

	in := dungeon.CreatePortal(dungeon.DoorIn)
	out := dungeon.CreatePortal(dungeon.DoorOut)
	if err := b.put(in, town, town.Map.Tile(door.X, door.Y)); err != nil {
		return err
	}
	if err := b.put(out, interior, m.Tile(door.X, door.Y)); err != nil {
		return err
	}
	dungeon.ConnectPortals(in, out)

	npc := dungeon.CreateNPC(npcNames[rng.Intn(len(npcNames))], "A friendly villager.")
	return b.put(npc, interior, m.RandomEmptyTile(rng))
}

func doorLocations(house domain.Area) []domain.Position {
	var out []domain.Position
	for x := house.X1 + 1; x < house.X2-1; x++ {
		out = append(out, domain.Position{X: x, Y: house.Y1}, domain.Position{X: x, Y: house.Y2})
	}
	for y := house.Y1 + 1; y < house.Y2-1; y++ {
		out = append(out, domain.Position{X: house.X1, Y: y}, domain.Position{X: house.X2, Y: y})
	}
	return out
}

// --- ПОДЗЕМЕЛЬЯ И ПЕЩЕРЫ ---

func (b *worldBuilder) addDungeon(difficulty int) (*domain.Level, error) {
	lvl, err := b.newLevel(fmt.Sprintf("Dungeon level %d", difficulty), enums.ArchetypeDungeon, difficulty)
	if err != nil {
		return nil, err
	}
	b.populateRooms(lvl)
	return lvl, nil
}

// populateRooms раскладывает монстров и предметы по комнатам.
// Занятые клетки пропускаются, поэтому реальное число может быть меньше.
func (b *worldBuilder) populateRooms(lvl *domain.Level) {
	rng := b.w.Rng
	d := lvl.Difficulty

	for _, room := range lvl.Map.Areas {
		n := utils.RandRange(rng, 0, dungeon.MaxMonstersPerRoom(d))
		for i := 0; i <= n; i++ {
			tile := roomTile(lvl.Map, room, rng)
			if tile == nil {
				continue
			}
			monster, err := b.lib.RandomMonster(d)
			if err != nil {
				b.log.WithError(err).WithField("level", lvl.Name).Warn("Skipping monster")
				continue
			}
			if err := b.put(monster, lvl, tile); err != nil {
				b.log.WithError(err).Warn("Failed to place monster")
			}
		}

		n = utils.RandRange(rng, 0, dungeon.MaxItemsPerRoom(d))
		for i := 0; i <= n; i++ {
			tile := roomTile(lvl.Map, room, rng)
			if tile == nil {
				continue
			}
			item, err := b.lib.RandomItem(d)
			if err != nil {
				b.log.WithError(err).WithField("level", lvl.Name).Warn("Skipping item")
				continue
			}
			if err := b.put(item, lvl, tile); err != nil {
				b.log.WithError(err).Warn("Failed to place item")
			}
		}
	}
}

// roomTile - случайная внутренняя клетка комнаты, если она свободна.
func roomTile(m *domain.Map, room domain.Area, rng *rand.Rand) *domain.Tile {
	x := utils.RandRange(rng, room.X1+1, room.X2-1)
	y := utils.RandRange(rng, room.Y1+1, room.Y2-1)
	t := m.Tile(x, y)
	if t == nil || t.Blocked() || !t.Empty() {
		return nil
	}
	return t
}

func (b *worldBuilder) addCave(entrances ...*domain.Level) (*domain.Level, error) {
	cave, err := b.newLevel(caveName, enums.ArchetypeCave, caveDifficulty)
	if err != nil {
		return nil, err
	}

	n := utils.RandRange(b.w.Rng, 0, caveMaxMonsters)
	for i := 0; i < n; i++ {
		aberration := b.lib.GenerateMonster(caveDifficulty)
		if err := b.put(aberration, cave, cave.Map.RandomEmptyTile(b.w.Rng)); err != nil {
			return nil, err
		}
	}

	for _, lvl := range entrances {
		if err := b.connect(lvl, cave, dungeon.PitDown, dungeon.PitUp); err != nil {
			return nil, err
		}
	}
	return cave, nil
}

// connect ставит пару связанных порталов: down на from, up на to.
func (b *worldBuilder) connect(from, to *domain.Level, down, up dungeon.PortalSpec) error {
	downPortal := dungeon.CreatePortal(down)
	upPortal := dungeon.CreatePortal(up)
	if err := b.put(downPortal, from, from.Map.RandomEmptyTile(b.w.Rng)); err != nil {
		return err
	}
	if err := b.put(upPortal, to, to.Map.RandomEmptyTile(b.w.Rng)); err != nil {
		return err
	}
	dungeon.ConnectPortals(downPortal, upPortal)
	return nil
}

// put регистрирует актора и ставит его на тайл.
func (b *worldBuilder) put(a *domain.Actor, lvl *domain.Level, tile *domain.Tile) error {
	if tile == nil {
		return &domain.StateError{Op: "place " + a.Name, Reason: "no free tile on " + lvl.Name}
	}
	b.w.Reg.Spawn(a)
	return b.w.Reg.Place(a.ID, lvl, tile.X, tile.Y)
}

// --- ИГРОК ---

func (b *worldBuilder) addPlayer(town *domain.Level) (*domain.Actor, error) {
	player := dungeon.CreatePlayer(b.cfg.PlayerName)
	if err := b.put(player, town, town.Map.RandomEmptyTile(b.w.Rng)); err != nil {
		return nil, err
	}

	gear, err := b.lib.StartingGear()
	if err != nil {
		return nil, fmt.Errorf("starting gear: %w", err)
	}
	if err := b.give(player, gear); err != nil {
		return nil, err
	}

	if b.cfg.QuickStart {
		if err := b.quickStart(town, player); err != nil {
			return nil, err
		}
	}

	systems.UpdateFieldOfView(b.w.Reg, town, player.Pos)
	return player, nil
}

// quickStart собирает выходы из города у левого края, ставит рядом игрока
// и сундук с добычей и выдаёт набор свитков.
func (b *worldBuilder) quickStart(town *domain.Level, player *domain.Actor) error {
	y := 1
	for _, p := range b.w.Reg.Resolve(town.Portals) {
		dest := b.w.Reg.Get(p.Portal.Destination)
		if dest == nil || isSubLevel(town, b.w.Reg.LevelOf(dest)) {
			continue
		}
		if err := b.moveNear(p, town, 1, y); err != nil {
			return err
		}
		y++
	}
	if err := b.moveNear(player, town, 2, 1); err != nil {
		return err
	}

	gear, err := b.lib.QuickStartGear()
	if err != nil {
		return fmt.Errorf("quick start gear: %w", err)
	}
	if err := b.give(player, gear); err != nil {
		return err
	}

	chest := dungeon.CreateChest("Chest", "A sturdy wooden chest.", false)
	b.w.Reg.Spawn(chest)
	if err := b.moveNear(chest, town, quickStartChestX, quickStartChestY); err != nil {
		return err
	}
	for _, item := range b.lib.ChestLoot() {
		b.w.Reg.Spawn(item)
		if _, err := systems.AddToInventory(b.w, chest, item); err != nil {
			return err
		}
	}
	return nil
}

// moveNear ставит уже заспавненного актора на ближайшую к (x, y) свободную клетку.
func (b *worldBuilder) moveNear(a *domain.Actor, lvl *domain.Level, x, y int) error {
	tile := freeTileNear(lvl.Map, x, y, a)
	if tile == nil {
		return &domain.StateError{Op: "place " + a.Name, Reason: "no free tile on " + lvl.Name}
	}
	return b.w.Reg.Place(a.ID, lvl, tile.X, tile.Y)
}

// freeTileNear обходит кольца вокруг (x, y) и возвращает первый проходимый тайл,
// на котором нет никого, кроме самого self.
func freeTileNear(m *domain.Map, x, y int, self *domain.Actor) *domain.Tile {
	free := func(t *domain.Tile) bool {
		if t == nil || t.Blocked() {
			return false
		}
		ids := t.Actors()
		return len(ids) == 0 || (len(ids) == 1 && ids[0] == self.ID)
	}

	maxR := max(m.Width, m.Height)
	for r := 0; r < maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				if t := m.Tile(x+dx, y+dy); free(t) {
					return t
				}
			}
		}
	}
	return nil
}

func (b *worldBuilder) give(owner *domain.Actor, items []*domain.Actor) error {
	for _, item := range items {
		b.w.Reg.Spawn(item)
		if _, err := systems.AddToInventory(b.w, owner, item); err != nil {
			return fmt.Errorf("give %s: %w", item.Name, err)
		}
	}
	return nil
}

func isSubLevel(parent, lvl *domain.Level) bool {
	return lvl != nil && lvl.Parent == parent
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
