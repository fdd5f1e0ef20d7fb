package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	mrand "math/rand"
	"strconv"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed превращает строку в детерминированное зерно.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// DeriveSeed выводит зерно подсистемы из мастер-зерна.
// Level N Seed = hash(master, salt), чтобы уровни не зависели от порядка генерации.
func DeriveSeed(master int64, salt string) int64 {
	return StringToSeed(strconv.FormatInt(master, 10) + "/" + salt)
}

// NewRand создает генератор с заданным зерном.
func NewRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// RandRange возвращает число из полуинтервала [lo, hi).
// При пустом интервале возвращает lo.
func RandRange(rng *mrand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// RandInt возвращает число из отрезка [lo, hi] включительно.
func RandInt(rng *mrand.Rand, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
