package api

import (
	"encoding/json"

	"github.com/Frostlock/Warrens-II/internal/core/types"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Snapshot это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" текущего уровня игрока.
// Снимок неизменяем: после публикации его читают только горутины сервера.
type Snapshot struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Tick номер хода (turn) или шага реального времени (realtime).
	Tick int64  `json:"tick"`
	Mode string `json:"mode"`

	Level LevelView `json:"level"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез исследованных тайлов. Видимые сейчас помечены InView.
	Map []TileView `json:"map,omitempty"`

	// Actors срез видимых акторов (игрок входит всегда).
	Actors []ActorView `json:"actors,omitempty"`

	Player *PlayerView `json:"player,omitempty"`

	Effects []EffectView `json:"effects,omitempty"`

	// Messages последние игровые сообщения, от старых к новым.
	Messages []MessageView `json:"messages,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// LevelView - уровень, на котором стоит игрок.
type LevelView struct {
	ID         types.LevelID `json:"id"`
	Name       string        `json:"name"`
	Archetype  string        `json:"archetype"`
	Difficulty int           `json:"difficulty"`
	Parent     string        `json:"parent,omitempty"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
// Содержит всю необходимую информацию для его рендеринга.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Explored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	// Если InView=false, а Explored=true, рендерится тускло.
	Explored bool `json:"explored"`

	// InView true, если тайл находится в текущем поле зрения. Рендерится ярко.
	InView bool `json:"inView"`

	// Blocked true, если тайл является непроходимым препятствием.
	Blocked bool `json:"blocked"`

	Material   string `json:"material"`
	Color      string `json:"color"`
	TextureSet int    `json:"textureSet"`
	TextureID  int    `json:"textureId"`
}

// ActorView это DTO для актора на карте.
type ActorView struct {
	ID   types.ActorID `json:"id"`
	Kind string        `json:"kind"` // PLAYER, MONSTER, NPC, ITEM, PORTAL, CHEST
	Name string        `json:"name"`

	X int `json:"x"`
	Y int `json:"y"`

	Char     string `json:"char"`
	Color    string `json:"color"`
	SpriteID int    `json:"spriteId"`

	// HP есть только у персонажей.
	HP    int  `json:"hp,omitempty"`
	MaxHP int  `json:"maxHp,omitempty"`
	Alive bool `json:"alive"`

	Status StatusView `json:"status"`
}

// StatusView - стихийные состояния актора.
type StatusView struct {
	OnFire      bool `json:"onFire,omitempty"`
	Electrified bool `json:"electrified,omitempty"`
	EarthDamage bool `json:"earthDamage,omitempty"`
	Confused    bool `json:"confused,omitempty"`
}

// PlayerView - подробности об игроке. Видны только ему.
type PlayerView struct {
	ID   types.ActorID `json:"id"`
	Name string        `json:"name"`

	Level       int  `json:"level"`
	XP          int  `json:"xp"`
	NextLevelXP int  `json:"nextLevelXp"`
	ActionTaken bool `json:"actionTaken"`

	Stats StatsView  `json:"stats"`
	Items []ItemView `json:"items"`
}

// StatsView это DTO для характеристик персонажа с учётом экипировки.
type StatsView struct {
	HP       int  `json:"hp"`
	MaxHP    int  `json:"maxHp"`
	Accuracy int  `json:"accuracy"`
	Dodge    int  `json:"dodge"`
	Damage   int  `json:"damage"`
	Armor    int  `json:"armor"`
	Body     int  `json:"body"`
	Mind     int  `json:"mind"`
	Alive    bool `json:"alive"`
}

// ItemView представляет предмет для клиента
type ItemView struct {
	ID        types.ActorID `json:"id"`
	Name      string        `json:"name"`
	Char      string        `json:"char"`
	Color     string        `json:"color"`
	Category  string        `json:"category"`
	StackSize int           `json:"stackSize,omitempty"`
	Equipped  bool          `json:"equipped,omitempty"`
	Effect    string        `json:"effect,omitempty"`
	Targeted  bool          `json:"targeted,omitempty"`
}

// EffectView - активный эффект на уровне.
type EffectView struct {
	ID        int               `json:"id"`
	Kind      string            `json:"kind"`
	State     string            `json:"state"`
	Source    string            `json:"source"`
	Remaining int               `json:"remaining"`
	Tiles     []PositionPayload `json:"tiles,omitempty"`
}

// MessageView представляет одну запись в игровом логе.
type MessageView struct {
	Text      string `json:"text"`
	Category  string `json:"category"`  // GAME, COMBAT
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для действий, нацеленных на точку на карте.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload используется для действий с предметами (DROP, EQUIP, UNEQUIP).
type ItemPayload struct {
	ItemID types.ActorID `json:"itemId"`
	Count  int           `json:"count,omitempty"` // Для DROP - количество предметов в стаке
}

// UsePayload - применение предмета. Без цели предмет применяется к себе.
// Указывается либо TargetID, либо Tile.
type UsePayload struct {
	ItemID   types.ActorID    `json:"itemId"`
	TargetID types.ActorID    `json:"targetId,omitempty"`
	Tile     *PositionPayload `json:"tile,omitempty"`
}

// TakePayload - взять предмет из сундука.
type TakePayload struct {
	ChestID types.ActorID `json:"chestId"`
	ItemID  types.ActorID `json:"itemId"`
}

// PortalPayload - пройти через портал под игроком ("up" или "down").
type PortalPayload struct {
	Direction string `json:"direction"`
}
