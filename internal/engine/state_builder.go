package engine

import (
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/pkg/api"
)

// Snapshot создает "снимок" текущего уровня глазами игрока.
// Снимок не ссылается на доменные объекты, его можно отдавать другим горутинам.
func (g *Game) Snapshot() *api.Snapshot {
	return buildSnapshot(g, ModeTurn, g.Turn)
}

// Snapshot для реального времени: Tick - число шагов уровней.
func (r *Realm) Snapshot() *api.Snapshot {
	return buildSnapshot(r.Game, ModeRealtime, r.steps)
}

func buildSnapshot(g *Game, mode string, tick int64) *api.Snapshot {
	snap := &api.Snapshot{
		Type: "UPDATE",
		Tick: tick,
		Mode: mode,
	}

	// Копия сообщений
	for _, m := range g.Buffer.Messages() {
		snap.Messages = append(snap.Messages, api.MessageView{
			Text:      m.Text,
			Category:  m.Category.String(),
			Timestamp: m.Timestamp,
		})
	}
	snap.Player = g.playerView()

	lvl := g.CurrentLevel()
	if lvl == nil {
		return snap
	}

	snap.Level = api.LevelView{
		ID:         lvl.ID,
		Name:       lvl.Name,
		Archetype:  lvl.Archetype().String(),
		Difficulty: lvl.Difficulty,
	}
	if lvl.Parent != nil {
		snap.Level.Parent = lvl.Parent.Name
	}
	snap.Grid = &api.GridMeta{Width: lvl.Map.Width, Height: lvl.Map.Height}

	// 1. Карта: только исследованные тайлы
	// 2. Акторы: только на видимых тайлах
	lvl.Map.Each(func(t *domain.Tile) {
		if !t.Explored {
			return
		}
		snap.Map = append(snap.Map, tileView(t))
		if !t.InView {
			return
		}
		for _, a := range g.World.Reg.ActorsAt(t) {
			snap.Actors = append(snap.Actors, actorView(a))
		}
	})

	// Себя видим всегда
	if !g.containsActor(snap.Actors, g.Player) {
		snap.Actors = append(snap.Actors, actorView(g.Player))
	}

	// 3. Эффекты уровня
	for _, e := range lvl.ActiveEffects {
		ev := api.EffectView{
			ID:        e.ID,
			Kind:      e.Kind.String(),
			State:     e.State.String(),
			Source:    e.Source.Name,
			Remaining: e.Remaining,
		}
		for _, p := range e.Tiles {
			ev.Tiles = append(ev.Tiles, api.PositionPayload{X: p.X, Y: p.Y})
		}
		snap.Effects = append(snap.Effects, ev)
	}
	return snap
}

func tileView(t *domain.Tile) api.TileView {
	return api.TileView{
		X:          t.X,
		Y:          t.Y,
		Explored:   t.Explored,
		InView:     t.InView,
		Blocked:    t.Blocked(),
		Material:   t.Material.String(),
		Color:      t.Color.Hex(),
		TextureSet: t.TextureSet,
		TextureID:  t.TextureID,
	}
}

// actorView конвертирует доменного актора в DTO для отправки клиенту.
func actorView(a *domain.Actor) api.ActorView {
	view := api.ActorView{
		ID:       a.ID,
		Kind:     a.Kind.String(),
		Name:     a.DisplayName(),
		X:        a.Pos.X,
		Y:        a.Pos.Y,
		Char:     string(a.Char),
		Color:    a.Color.Hex(),
		SpriteID: a.SpriteID,
		Alive:    a.IsAlive(),
		Status: api.StatusView{
			OnFire:      a.Status.OnFire,
			Electrified: a.Status.Electrified,
			EarthDamage: a.Status.EarthDamage,
			Confused:    a.Status.Confused,
		},
	}
	if a.Stats != nil {
		view.HP = a.Stats.HP
		view.MaxHP = a.Stats.MaxHP
	}
	return view
}

// playerView - подробности, которые видит только сам игрок.
func (g *Game) playerView() *api.PlayerView {
	p := g.Player
	if p == nil || p.Player == nil {
		return nil
	}
	s := systems.EffectiveStats(g.World, p)
	view := &api.PlayerView{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Player.Level,
		XP:          p.Player.XP,
		NextLevelXP: p.Player.NextLevelXP,
		ActionTaken: p.Player.ActionTaken,
		Stats: api.StatsView{
			HP:       s.HP,
			MaxHP:    s.MaxHP,
			Accuracy: s.Accuracy,
			Dodge:    s.Dodge,
			Damage:   s.Damage,
			Armor:    s.Armor,
			Body:     s.Body,
			Mind:     s.Mind,
			Alive:    s.Alive,
		},
		Items: make([]api.ItemView, 0),
	}
	for _, item := range systems.InventoryItems(g.World, p) {
		view.Items = append(view.Items, itemView(item))
	}
	return view
}

func itemView(a *domain.Actor) api.ItemView {
	view := api.ItemView{
		ID:    a.ID,
		Name:  a.DisplayName(),
		Char:  string(a.Char),
		Color: a.Color.Hex(),
	}
	if a.Item == nil {
		return view
	}
	view.Category = a.Item.Category.String()
	view.Equipped = a.Item.Equipped
	if a.Item.Stackable {
		view.StackSize = a.Item.StackSize
	}
	if a.Item.Effect.Kind != enums.EffectKindNone {
		view.Effect = a.Item.Effect.Kind.String()
		view.Targeted = a.Item.Effect.Targeted
	}
	return view
}

func (g *Game) containsActor(views []api.ActorView, a *domain.Actor) bool {
	for _, v := range views {
		if v.ID == a.ID {
			return true
		}
	}
	return false
}
