package types

import (
	"fmt"
	"strconv"
)

// ActorID - 64-битный хэндл актора в арене Registry.
//
// Формат битов (от старших к младшим):
//
//	[ reserved (8) | Kind (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Kind - вид актора (Player, Monster, Item и т.д.)
//   - Generation - версия слота (защита от устаревших ссылок)
//   - Index - индекс слота в арене
//
// Тайл хранит хэндлы своих акторов, актор хранит координаты тайла.
// Взаимных указателей нет, устаревший хэндл распознаётся по поколению.
type ActorID uint64

// NilActorID - отсутствующий актор.
const NilActorID ActorID = 0

const (
	bitsIndex = 32
	bitsGen   = 16
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PackActorID собирает хэндл. Поколение слота начинается с 1,
// поэтому валидный хэндл никогда не равен NilActorID.
func PackActorID(kind uint8, gen uint16, index uint32) ActorID {
	return ActorID(
		(uint64(kind) << shiftKind) |
			(uint64(gen) << shiftGen) |
			uint64(index),
	)
}

// Index возвращает индекс слота в арене.
func (id ActorID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id ActorID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Kind возвращает вид актора (значение enums.ActorKind).
func (id ActorID) Kind() uint8 {
	return uint8((id >> shiftKind) & maskKind)
}

func (id ActorID) IsNil() bool {
	return id == NilActorID
}

// String предназначен для логов.
func (id ActorID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[kind=%d gen=%d idx=%d]", id.Kind(), id.Generation(), id.Index())
}

// MarshalJSON сериализует хэндл строкой, чтобы JavaScript не терял точность uint64.
func (id ActorID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *ActorID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilActorID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = ActorID(v)
	return nil
}

// LevelID - индекс уровня в Registry.
type LevelID int

// NoLevel - актор не находится ни на одном уровне (лежит в инвентаре).
const NoLevel LevelID = -1
