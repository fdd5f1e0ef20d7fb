package domain

// Радиусы обзора
const (
	TorchRadius    = 10
	DaylightRadius = 30
)

// Персонажи
const (
	BaseStat             = 10
	PlayerHitpointFactor = 5

	XPBase   = 300
	XPFactor = 1.3

	PlayerLevelAccuracy = 10
	PlayerLevelDodge    = 10
	PlayerLevelDamage   = 10
	PlayerLevelArmor    = 10
	PlayerLevelBody     = 10
	PlayerLevelMind     = 10
)

// Параметры восприятия монстров
const (
	MonsterSightRange  = 8
	MonsterAttackRange = 2
)

// MessageBufferLength - сколько игровых сообщений хранит буфер по умолчанию.
const MessageBufferLength = 5

// Спрайты порталов и трупов
const (
	SpritePortal     = 0
	SpriteStairsDown = 1
	SpriteStairsUp   = 2
	SpriteMonsterRIP = 3
	SpritePlayerRIP  = 4

	// SpriteNone - спрайт выбирается по ключу шаблона.
	SpriteNone = -1
)
