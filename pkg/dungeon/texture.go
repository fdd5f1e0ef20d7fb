package dungeon

import (
	"math/rand"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/ojrac/opensimplex-go"
	"github.com/sirupsen/logrus"
)

// TextureSandstone - единственный набор текстур подземелья.
const TextureSandstone = 1

// Номера текстур набора
const (
	TextureEmpty      = 4
	TextureLined      = 5
	TextureCracked    = 6
	TextureSubtiles   = 7
	TexturePortalUp   = 8
	TexturePortalDown = 9

	TexturePillar     = 10
	TextureNSWallWCap = 11
	TextureNSWall     = 12
	TextureNSWallECap = 13
	TextureEWWallNCap = 14
	TextureEWWall     = 15
	TextureEWWallSCap = 64
	TextureNWWall     = 17
	TextureNEWall     = 18
	TextureSWWall     = 19
	TextureSEWall     = 20
	TextureCross      = 21
	TextureTSouth     = 22
	TextureTWest      = 23
	TextureTEast      = 24
	TextureTNorth     = 25
)

const (
	textureNoiseScale  = 0.15
	textureNoiseCutoff = 0.55
	textureSubtileRate = 0.05
)

// wallTextures: хэш окрестности 3x3 -> текстура стены.
var wallTextures = buildWallTextures(map[int][]int{
	TexturePillar:     {16, 511},
	TextureNSWallWCap: {24, 89},
	TextureNSWall:     {56, 57, 60, 63, 120, 121, 124, 125, 127, 312, 313, 316, 317, 319, 377, 380, 381, 383, 504, 505, 508, 509},
	TextureNSWallECap: {48, 308},
	TextureEWWallNCap: {18, 23},
	TextureEWWall:     {146, 147, 150, 151, 210, 214, 215, 219, 223, 402, 403, 407, 438, 439, 466, 467, 470, 471, 475, 479, 502, 503},
	TextureEWWallSCap: {144, 464},
	TextureNWWall:     {27, 30, 31, 90, 91, 94, 95, 510},
	TextureNEWall:     {51, 54, 55, 306, 307, 310, 311, 507},
	TextureSWWall:     {153, 216, 217, 408, 409, 447, 472, 473},
	TextureSEWall:     {180, 240, 244, 255, 432, 436, 496, 500},
	TextureCross:      {186},
	TextureTSouth:     {58, 59, 62, 122, 123, 126, 314, 318, 378, 379, 382},
	TextureTWest:      {178, 179, 182, 183, 242, 243, 246, 247, 434, 435, 498},
	TextureTEast:      {154, 155, 158, 159, 218, 222, 410, 411, 414, 415, 474},
	TextureTNorth:     {184, 185, 188, 189, 248, 249, 252, 253, 440, 441, 444},
})

func buildWallTextures(byTexture map[int][]int) map[int]int {
	out := make(map[int]int)
	for texture, hashes := range byTexture {
		for _, h := range hashes {
			out[h] = texture
		}
	}
	return out
}

// NeighbourhoodHash кодирует окрестность 3x3 в 9 бит: старший бит - северо-запад,
// младший - юго-восток. Непрозрачная клетка или клетка за картой даёт 1.
func NeighbourhoodHash(m *domain.Map, x, y int) int {
	hash := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			hash <<= 1
			t := m.Tile(x+dx, y+dy)
			if t == nil || t.BlockSight() {
				hash |= 1
			}
		}
	}
	return hash
}

// applyTextures выбирает текстуру каждому тайлу.
// Пол варьируется шумом, стены подбираются по хэшу соседей.
func applyTextures(m *domain.Map, rng *rand.Rand) {
	log := logger.For("dungeon")
	noise := opensimplex.New(rng.Int63())

	m.Each(func(t *domain.Tile) {
		t.TextureSet = TextureSandstone

		if !t.BlockSight() {
			t.TextureID = TextureEmpty
			n := noise.Eval2(float64(t.X)*textureNoiseScale, float64(t.Y)*textureNoiseScale)
			switch {
			case rng.Float64() < textureSubtileRate:
				t.TextureID = TextureSubtiles
			case n > textureNoiseCutoff:
				t.TextureID = TextureCracked
			case n < -textureNoiseCutoff:
				t.TextureID = TextureLined
			}
			return
		}

		hash := NeighbourhoodHash(m, t.X, t.Y)
		if texture, ok := wallTextures[hash]; ok {
			t.TextureID = texture
			return
		}
		t.TextureID = TexturePillar
		log.WithFields(logrus.Fields{"x": t.X, "y": t.Y, "hash": hash}).Debug("No texture for wall hash")
	})
}
