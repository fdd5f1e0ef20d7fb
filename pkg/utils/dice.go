package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// HitDie описывает бросок вида "XdY": X костей по Y граней.
type HitDie struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// ParseHitDie разбирает строку "2d6". Пустая строка даёт нулевой кубик.
func ParseHitDie(s string) (HitDie, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return HitDie{}, nil
	}
	parts := strings.Split(s, "d")
	if len(parts) != 2 {
		return HitDie{}, fmt.Errorf("invalid hit die %q", s)
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 0 {
		return HitDie{}, fmt.Errorf("invalid hit die count in %q", s)
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil || sides < 1 {
		return HitDie{}, fmt.Errorf("invalid hit die sides in %q", s)
	}
	return HitDie{Count: count, Sides: sides}, nil
}

// MustParseHitDie как ParseHitDie, но паникует. Только для констант.
func MustParseHitDie(s string) HitDie {
	d, err := ParseHitDie(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Roll бросает все кости, каждая даёт 1..Sides.
func (d HitDie) Roll(rng *rand.Rand) int {
	total := 0
	for i := 0; i < d.Count; i++ {
		total += rng.Intn(d.Sides) + 1
	}
	return total
}

// Max - максимально возможный результат броска.
func (d HitDie) Max() int {
	return d.Count * d.Sides
}

// IsZero - кубик не задан.
func (d HitDie) IsZero() bool {
	return d.Count == 0 || d.Sides == 0
}

// WithExtra возвращает кубик с дополнительными костями (модификаторы предметов).
func (d HitDie) WithExtra(count int) HitDie {
	d.Count += count
	if d.Count < 0 {
		d.Count = 0
	}
	return d
}

func (d HitDie) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// MarshalText хранит кубик в шаблонах как "2d6".
func (d HitDie) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *HitDie) UnmarshalText(text []byte) error {
	parsed, err := ParseHitDie(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
