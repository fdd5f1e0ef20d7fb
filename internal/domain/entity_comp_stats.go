package domain

// Stats - боевые характеристики персонажа.
type Stats struct {
	Accuracy int `json:"accuracy"`
	Dodge    int `json:"dodge"`
	Damage   int `json:"damage"`
	Armor    int `json:"armor"`
	Body     int `json:"body"`
	Mind     int `json:"mind"`

	HP    int  `json:"hp"`
	MaxHP int  `json:"maxHp"`
	Alive bool `json:"alive"`
}

// NewBaseStats - все характеристики по BaseStat, HP из тела.
func NewBaseStats() *Stats {
	s := &Stats{
		Accuracy: BaseStat,
		Dodge:    BaseStat,
		Damage:   BaseStat,
		Armor:    BaseStat,
		Body:     BaseStat,
		Mind:     BaseStat,
		Alive:    true,
	}
	s.MaxHP = s.Body * PlayerHitpointFactor
	s.HP = s.MaxHP
	return s
}

// TakeDamage наносит урон. Возвращает true, если цель погибла именно сейчас.
func (s *Stats) TakeDamage(amount int) bool {
	if !s.Alive || amount <= 0 {
		return false
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.Alive = false
		return true
	}
	return false
}

// Heal лечит не выше MaxHP. Возвращает реально восстановленное количество.
func (s *Stats) Heal(amount int) int {
	if !s.Alive || amount <= 0 {
		return 0
	}
	before := s.HP
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP - before
}
