package dungeon

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// --- ШАБЛОНЫ ---

// MonsterTemplate - запись monsters.json.
type MonsterTemplate struct {
	Key    string       `json:"key"`
	Name   string       `json:"name"`
	Char   string       `json:"char"`
	Color  [3]uint8     `json:"color"`
	HitDie utils.HitDie `json:"hitDie"`

	Accuracy int `json:"accuracy"`
	Dodge    int `json:"dodge"`
	Damage   int `json:"damage"`
	Armor    int `json:"armor"`
	Body     int `json:"body"`
	Mind     int `json:"mind"`

	XP              int    `json:"xp"`
	Unique          bool   `json:"unique"`
	ChallengeRating int    `json:"challengeRating"`
	AI              string `json:"ai"`
	Flavor          string `json:"flavor"`
	KilledBy        string `json:"killedBy"`

	ai enums.AIKind
}

// ItemTemplate - запись items.json.
type ItemTemplate struct {
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	Char      string         `json:"char"`
	Color     [3]uint8       `json:"color"`
	Type      string         `json:"type"`
	ItemLevel int            `json:"itemLevel"`
	Stackable *bool          `json:"stackable,omitempty"`
	Flavor    string         `json:"flavor"`
	Bonuses   domain.Bonuses `json:"bonuses"`

	Targeted       bool         `json:"targeted"`
	Effect         string       `json:"effect"`
	EffectRadius   int          `json:"effectRadius"`
	EffectHitDie   utils.HitDie `json:"effectHitDie"`
	EffectDuration int          `json:"effectDuration"`
	EffectElement  string       `json:"effectElement"`

	category enums.ItemCategory
	effect   enums.EffectKind
	element  enums.Element
}

// ModifierTemplate - запись modifiers.json.
type ModifierTemplate struct {
	Key            string         `json:"key"`
	Name           string         `json:"name"`
	Position       string         `json:"position"`
	Level          int            `json:"level"`
	Type           string         `json:"type"`
	Radius         int            `json:"radius"`
	HitDieCount    int            `json:"hitDieCount"`
	DurationFactor float64        `json:"durationFactor"`
	Element        string         `json:"element"`
	Bonuses        domain.Bonuses `json:"bonuses"`

	category enums.ItemCategory
	modifier domain.Modifier
}

// Category - тип предметов, к которым подходит модификатор.
func (t *ModifierTemplate) Category() enums.ItemCategory {
	return t.category
}

// Modifier возвращает копию готового модификатора.
func (t *ModifierTemplate) Modifier() domain.Modifier {
	return t.modifier
}

// --- БИБЛИОТЕКА ---

// Library создаёт монстров и предметы из шаблонов.
// Имена AI, эффектов и стихий превращаются в enum при загрузке,
// поэтому незнакомое имя ломает загрузку, а не игру.
type Library struct {
	monsters       map[string]*MonsterTemplate
	challenge      map[int][]*MonsterTemplate
	items          map[string]*ItemTemplate
	itemLevels     map[int][]*ItemTemplate
	modifiers      map[string]*ModifierTemplate
	modifierLevels map[int][]*ModifierTemplate

	// Уникальные монстры создаются один раз за игру
	uniques mapset.Set[string]

	rng *rand.Rand
	log *logrus.Entry
}

// LoadLibrary читает вшитые monsters.json, items.json и modifiers.json.
func LoadLibrary(rng *rand.Rand) (*Library, error) {
	monsters, err := Load[[]MonsterTemplate]("monsters.json")
	if err != nil {
		return nil, err
	}
	items, err := Load[[]ItemTemplate]("items.json")
	if err != nil {
		return nil, err
	}
	modifiers, err := Load[[]ModifierTemplate]("modifiers.json")
	if err != nil {
		return nil, err
	}
	return NewLibrary(rng, monsters, items, modifiers)
}

// MustLoadLibrary как LoadLibrary, но паникует.
func MustLoadLibrary(rng *rand.Rand) *Library {
	lib, err := LoadLibrary(rng)
	if err != nil {
		panic(err)
	}
	return lib
}

// NewLibrary индексирует шаблоны по ключу, рейтингу опасности и уровню.
func NewLibrary(rng *rand.Rand, monsters []MonsterTemplate, items []ItemTemplate, modifiers []ModifierTemplate) (*Library, error) {
	l := &Library{
		monsters:       make(map[string]*MonsterTemplate),
		challenge:      make(map[int][]*MonsterTemplate),
		items:          make(map[string]*ItemTemplate),
		itemLevels:     make(map[int][]*ItemTemplate),
		modifiers:      make(map[string]*ModifierTemplate),
		modifierLevels: make(map[int][]*ModifierTemplate),
		uniques:        mapset.New[string](),
		rng:            rng,
		log:            logger.For("library"),
	}

	for i := range monsters {
		t := &monsters[i]
		kind, ok := enums.ParseAIKind(t.AI)
		if !ok {
			return nil, fmt.Errorf("monster %s: %w", t.Key, &domain.LookupError{Kind: "ai", Key: t.AI})
		}
		t.ai = kind
		l.monsters[t.Key] = t
		l.challenge[t.ChallengeRating] = append(l.challenge[t.ChallengeRating], t)
	}

	for i := range items {
		t := &items[i]
		t.category = enums.ParseItemCategory(t.Type)
		if t.category == enums.ItemCategoryUnknown {
			return nil, fmt.Errorf("item %s: %w", t.Key, &domain.LookupError{Kind: "item type", Key: t.Type})
		}
		effect, ok := enums.ParseEffectKind(t.Effect)
		if !ok {
			return nil, fmt.Errorf("item %s: %w", t.Key, &domain.LookupError{Kind: "effect", Key: t.Effect})
		}
		t.effect = effect
		if t.EffectElement != "" {
			element, ok := enums.ParseElement(t.EffectElement)
			if !ok {
				return nil, fmt.Errorf("item %s: %w", t.Key, &domain.LookupError{Kind: "element", Key: t.EffectElement})
			}
			t.element = element
		}
		l.items[t.Key] = t
		l.itemLevels[t.ItemLevel] = append(l.itemLevels[t.ItemLevel], t)
	}

	for i := range modifiers {
		t := &modifiers[i]
		t.category = enums.ParseItemCategory(t.Type)
		if t.category == enums.ItemCategoryUnknown {
			return nil, fmt.Errorf("modifier %s: %w", t.Key, &domain.LookupError{Kind: "item type", Key: t.Type})
		}
		t.modifier = domain.Modifier{
			Key:            t.Key,
			Name:           t.Name,
			Position:       enums.ParseModifierPosition(t.Position),
			Level:          t.Level,
			Radius:         t.Radius,
			HitDieCount:    t.HitDieCount,
			DurationFactor: t.DurationFactor,
			Bonuses:        t.Bonuses,
		}
		if t.Element != "" {
			element, ok := enums.ParseElement(t.Element)
			if !ok {
				return nil, fmt.Errorf("modifier %s: %w", t.Key, &domain.LookupError{Kind: "element", Key: t.Element})
			}
			t.modifier.Element = &element
		}
		l.modifiers[t.Key] = t
		l.modifierLevels[t.Level] = append(l.modifierLevels[t.Level], t)
	}

	l.log.WithFields(logrus.Fields{
		"monsters":  len(l.monsters),
		"items":     len(l.items),
		"modifiers": len(l.modifiers),
	}).Info("Template library loaded")

	return l, nil
}

// MaxMonstersPerRoom - сколько монстров может появиться в одной комнате.
func MaxMonstersPerRoom(difficulty int) int {
	return max(difficulty/2, 1)
}

// MaxItemsPerRoom - сколько предметов может появиться в одной комнате.
func MaxItemsPerRoom(difficulty int) int {
	return max(difficulty/2, 1)
}

// MonsterKeys и ItemKeys возвращают отсортированные ключи шаблонов.
func (l *Library) MonsterKeys() []string {
	keys := make([]string, 0, len(l.monsters))
	for k := range l.monsters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (l *Library) ItemKeys() []string {
	keys := make([]string, 0, len(l.items))
	for k := range l.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- МОНСТРЫ ---

// CreateMonster создаёт монстра по ключу шаблона.
// Повторное создание уникального монстра - StateError.
func (l *Library) CreateMonster(key string) (*domain.Actor, error) {
	t, ok := l.monsters[key]
	if !ok {
		return nil, &domain.LookupError{Kind: "monster", Key: key}
	}
	if t.Unique {
		if l.uniques.Has(key) {
			return nil, &domain.StateError{Op: "create monster " + key, Reason: "unique monster already exists"}
		}
		l.uniques.Put(key)
	}

	stats := &domain.Stats{
		Accuracy: t.Accuracy,
		Dodge:    t.Dodge,
		Damage:   t.Damage,
		Armor:    t.Armor,
		Body:     t.Body,
		Mind:     t.Mind,
		Alive:    true,
	}
	stats.MaxHP = t.HitDie.Roll(l.rng)
	if stats.MaxHP < 1 {
		stats.MaxHP = max(t.Body*domain.PlayerHitpointFactor, 1)
	}
	stats.HP = stats.MaxHP

	monster := &domain.Actor{
		Kind:      enums.ActorKindMonster,
		Key:       t.Key,
		Name:      t.Name,
		Flavor:    t.Flavor,
		Char:      firstChar(t.Char, 'M'),
		Color:     rgb(t.Color),
		SpriteID:  domain.SpriteNone,
		Stats:     stats,
		Inventory: &domain.InventoryComponent{},
		Monster: &domain.MonsterComponent{
			XPValue:         t.XP,
			KilledByText:    t.KilledBy,
			ChallengeRating: t.ChallengeRating,
			Unique:          t.Unique,
		},
	}
	if t.ai == enums.AIKindBasic {
		monster.AI = domain.NewBasicAI()
	}

	l.log.WithFields(logrus.Fields{"key": key, "hp": stats.MaxHP}).Debug("Monster created")
	return monster, nil
}

// RandomMonster выбирает монстра с наибольшим доступным рейтингом не выше maxChallenge.
// Уже созданные уникальные монстры в выборку не попадают.
func (l *Library) RandomMonster(maxChallenge int) (*domain.Actor, error) {
	for cr := maxChallenge; cr > 0; cr-- {
		candidates := make([]*MonsterTemplate, 0, len(l.challenge[cr]))
		for _, t := range l.challenge[cr] {
			if t.Unique && l.uniques.Has(t.Key) {
				continue
			}
			candidates = append(candidates, t)
		}
		if len(candidates) == 0 {
			continue
		}
		return l.CreateMonster(candidates[l.rng.Intn(len(candidates))].Key)
	}
	return nil, &domain.LookupError{Kind: "monster", Key: fmt.Sprintf("challenge rating <= %d", maxChallenge)}
}

// GenerateMonster создаёт аберрацию без шаблона, сила растёт со сложностью.
func (l *Library) GenerateMonster(difficulty int) *domain.Actor {
	difficulty = max(difficulty, 1)
	stat := difficulty * 10
	stats := &domain.Stats{
		Accuracy: stat,
		Dodge:    stat,
		Damage:   stat,
		Armor:    stat,
		Body:     stat,
		Mind:     stat,
		Alive:    true,
	}
	stats.MaxHP = utils.HitDie{Count: difficulty, Sides: 8}.Roll(l.rng)
	stats.HP = stats.MaxHP

	return &domain.Actor{
		Kind:      enums.ActorKindMonster,
		Key:       "random",
		Name:      "Unrecognizable aberration",
		Flavor:    "An unrecognizable aberration approaches",
		Char:      'M',
		Color:     types.RGB{R: 65, G: 255, B: 85},
		SpriteID:  domain.SpriteNone,
		Stats:     stats,
		AI:        domain.NewBasicAI(),
		Inventory: &domain.InventoryComponent{},
		Monster: &domain.MonsterComponent{
			XPValue:         difficulty * difficulty * 50,
			KilledByText:    "The aberration wanders around your remains.",
			ChallengeRating: difficulty,
		},
	}
}

// --- ПРЕДМЕТЫ ---

// CreateItem создаёт предмет с модификаторами.
// Модификатор другого типа предметов - StateError.
func (l *Library) CreateItem(key string, modifierKeys ...string) (*domain.Actor, error) {
	t, ok := l.items[key]
	if !ok {
		return nil, &domain.LookupError{Kind: "item", Key: key}
	}

	stackable := t.category == enums.ItemCategoryConsumable
	if t.Stackable != nil {
		stackable = *t.Stackable
	}

	item := &domain.Actor{
		Kind:     enums.ActorKindItem,
		Key:      t.Key,
		Name:     t.Name,
		Flavor:   t.Flavor,
		Char:     firstChar(t.Char, '?'),
		Color:    rgb(t.Color),
		SpriteID: domain.SpriteNone,
		Item: &domain.ItemComponent{
			Category:  t.category,
			BaseLevel: t.ItemLevel,
			Stackable: stackable,
			StackSize: 1,
			Effect: domain.EffectSpec{
				Kind:     t.effect,
				HitDie:   t.EffectHitDie,
				Radius:   t.EffectRadius,
				Duration: t.EffectDuration,
				Element:  t.element,
				Targeted: t.Targeted,
			},
			Bonuses: t.Bonuses,
		},
	}

	for _, mk := range modifierKeys {
		mod, ok := l.modifiers[mk]
		if !ok {
			return nil, &domain.LookupError{Kind: "modifier", Key: mk}
		}
		if mod.category != t.category {
			return nil, &domain.StateError{
				Op:     fmt.Sprintf("apply modifier %s to %s", mk, key),
				Reason: fmt.Sprintf("modifier is for %s items", mod.category),
			}
		}
		item.Item.Modifiers = append(item.Item.Modifiers, mod.modifier)
	}

	return item, nil
}

// RandomItem выбирает предмет около уровня maxLevel.
// Разница между maxLevel и найденным уровнем уходит в случайный модификатор.
func (l *Library) RandomItem(maxLevel int) (*domain.Actor, error) {
	level := maxLevel
	for len(l.itemLevels[level]) == 0 {
		level--
		if level <= 0 {
			return nil, &domain.LookupError{Kind: "item", Key: fmt.Sprintf("item level <= %d", maxLevel)}
		}
	}

	var candidates []*ItemTemplate
	for _, lv := range []int{level, level + 1, level - 1, level - 2} {
		candidates = append(candidates, l.itemLevels[lv]...)
	}
	pick := candidates[l.rng.Intn(len(candidates))]

	item, err := l.CreateItem(pick.Key)
	if err != nil {
		return nil, err
	}

	if modLevel := maxLevel - level + 1; modLevel > 0 {
		mod, err := l.RandomModifier(modLevel)
		if err == nil && mod.category == pick.category {
			item.Item.Modifiers = append(item.Item.Modifiers, mod.modifier)
		}
	}
	return item, nil
}

// RandomModifier выбирает модификатор около уровня maxLevel.
// Модификаторы с уровнем <= 0 (ухудшения) возможны всегда.
func (l *Library) RandomModifier(maxLevel int) (*ModifierTemplate, error) {
	level := maxLevel
	for len(l.modifierLevels[level]) == 0 {
		level--
		if level <= 0 {
			return nil, &domain.LookupError{Kind: "modifier", Key: fmt.Sprintf("modifier level <= %d", maxLevel)}
		}
	}

	var candidates []*ModifierTemplate
	for _, lv := range []int{level, level + 1, level - 1, level - 2} {
		if lv > 0 {
			candidates = append(candidates, l.modifierLevels[lv]...)
		}
	}
	levels := make([]int, 0, len(l.modifierLevels))
	for lv := range l.modifierLevels {
		if lv <= 0 {
			levels = append(levels, lv)
		}
	}
	sort.Ints(levels)
	for _, lv := range levels {
		candidates = append(candidates, l.modifierLevels[lv]...)
	}

	return candidates[l.rng.Intn(len(candidates))], nil
}

// ModifiersFor - ключи модификаторов, подходящих предмету.
func (l *Library) ModifiersFor(itemKey string) ([]string, error) {
	t, ok := l.items[itemKey]
	if !ok {
		return nil, &domain.LookupError{Kind: "item", Key: itemKey}
	}
	var keys []string
	for k, mod := range l.modifiers {
		if mod.category == t.category {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func rgb(c [3]uint8) types.RGB {
	return types.RGB{R: c[0], G: c[1], B: c[2]}
}

func firstChar(s string, fallback byte) byte {
	if s == "" {
		return fallback
	}
	return s[0]
}
