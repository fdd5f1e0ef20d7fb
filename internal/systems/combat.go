package systems

import (
	"strings"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
)

var toHitDie = utils.HitDie{Count: 1, Sides: 100}

// EffectiveStats - базовые характеристики плюс бонусы надетой экипировки.
func EffectiveStats(w *World, a *domain.Actor) domain.Stats {
	if a.Stats == nil {
		return domain.Stats{}
	}
	s := *a.Stats
	if a.Inventory == nil {
		return s
	}

	var b domain.Bonuses
	for _, item := range w.Reg.Resolve(a.Inventory.Items) {
		if item.Item != nil && item.Item.Equipped {
			b = b.Add(item.Item.TotalBonuses())
		}
	}
	s.Accuracy += b.Accuracy
	s.Dodge += b.Dodge
	s.Damage += b.Damage
	s.Armor += b.Armor
	s.Body += b.Body
	s.Mind += b.Mind
	return s
}

// Attack - рукопашная атака. Бросок 1d100 против 100-(50+меткость-уклонение):
// при равных меткости и уклонении шанс попасть 50%.
// Чем сильнее перебросили, тем больше множитель урона. Броня цели вычитается.
// Возвращает нанесённый урон (0 при промахе).
func Attack(w *World, attacker, target *domain.Actor) int {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
	})

	// --- Проверка граничных условий ---

	if target.Stats == nil {
		combatLogger.Warn("Attack failed: target has no stats.")
		return 0
	}
	if !target.Stats.Alive {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return 0
	}

	att := EffectiveStats(w, attacker)
	def := EffectiveStats(w, target)

	hitRoll := toHitDie.Roll(w.Rng)
	toHit := 100 - (50 + att.Accuracy - def.Dodge)
	w.Emit(enums.MessageDebug, "%s attacks %s: %d vs %d", title(attacker.Name), target.Name, hitRoll, toHit)

	if hitRoll < toHit {
		combatLogger.WithFields(logrus.Fields{"roll": hitRoll, "to_hit": toHit}).Debug("Attack missed.")
		w.Emit(enums.MessageCombat, "%s attacks %s but misses!", title(attacker.Name), target.Name)
		return 0
	}

	// --- Расчёт урона ---

	factor := 1 + float64(hitRoll-toHit)/100
	damage := int(factor*float64(att.Damage)) - def.Armor

	combatLogger.WithFields(logrus.Fields{
		"roll":          hitRoll,
		"to_hit":        toHit,
		"damage_factor": factor,
		"armor":         def.Armor,
		"final_damage":  damage,
		"hp_before":     target.Stats.HP,
	}).Info("Attack resolved.")

	if damage <= 0 {
		w.Emit(enums.MessageCombat, "%s attacks %s and hits but it has no effect.", title(attacker.Name), target.Name)
		return 0
	}

	w.Emit(enums.MessageCombat, "%s attacks %s and hits for %d Damage (%.2f damage factor)", title(attacker.Name), target.Name, damage, factor)
	TakeDamage(w, target, damage, attacker)
	return damage
}

// TakeDamage наносит урон персонажу. attacker может быть nil.
// Возвращает true, если удар оказался смертельным.
func TakeDamage(w *World, target *domain.Actor, amount int, attacker *domain.Actor) bool {
	if target.Stats == nil || !target.Stats.Alive {
		return false
	}
	if !target.Stats.TakeDamage(amount) {
		return false
	}
	w.Emit(enums.MessageCombat, "%s is killed!", title(target.Name))
	kill(w, target, attacker)
	return true
}

// kill превращает персонажа в труп и раздаёт награду.
func kill(w *World, victim, attacker *domain.Actor) {
	if attacker != nil {
		switch {
		case attacker.Player != nil && victim.Monster != nil:
			w.Emit(enums.MessageGame, "%s gains %d XP.", attacker.Name, victim.Monster.XPValue)
			GainXP(w, attacker, victim.Monster.XPValue)
		case attacker.Monster != nil && attacker.Monster.KilledByText != "":
			w.Emit(enums.MessageGame, "%s", attacker.Monster.KilledByText)
		}
	}

	origName := victim.Name
	victim.Char = '%'
	victim.SpriteID = domain.SpriteMonsterRIP
	victim.AI = nil
	victim.Status = domain.Status{}
	victim.Name = origName + " corpse"

	if victim.Player != nil {
		victim.SpriteID = domain.SpritePlayerRIP
		victim.Color = types.RGB{R: 255, G: 0, B: 0}
		victim.Name = "The remains of " + origName
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"victim":    origName,
		"victim_id": victim.ID,
	}).Info("Character killed.")
}

// GainXP начисляет опыт и повышает уровень, пока опыта хватает.
func GainXP(w *World, player *domain.Actor, amount int) {
	p := player.Player
	if p == nil || amount <= 0 {
		return
	}
	p.XP += amount
	for p.XP >= p.NextLevelXP {
		levelUp(w, player)
	}
}

func levelUp(w *World, player *domain.Actor) {
	w.Emit(enums.MessageGame, "You feel stronger!")

	p := player.Player
	p.Level++
	p.NextLevelXP = domain.NextLevelXP(p.Level)

	s := player.Stats
	s.Accuracy += domain.PlayerLevelAccuracy
	s.Dodge += domain.PlayerLevelDodge
	s.Damage += domain.PlayerLevelDamage
	s.Armor += domain.PlayerLevelArmor
	s.Body += domain.PlayerLevelBody
	s.Mind += domain.PlayerLevelMind
	s.MaxHP = s.Body * domain.PlayerHitpointFactor

	logger.For("combat_system").WithFields(logrus.Fields{
		"player":     player.Name,
		"level":      p.Level,
		"next_level": p.NextLevelXP,
	}).Info("Player leveled up.")
}

// title - первая буква заглавная, остальное как есть.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
