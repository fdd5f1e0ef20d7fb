package types

import (
	"fmt"
)

// RGB - цвет тайла или актора.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Packed возвращает цвет в формате 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex возвращает "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06X", c.Packed())
}

// Glyph представляет упакованное представление цветного символа.
// Использует 32 бита (uint32) для хранения в формате:
//
//	[0:8] - символ (8 бит = 1 байт) - маска 0xFF
//	[8:32] - RGB-цвет (24 бита = 3 байта) - маска 0xFFFFFF
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph создает новый Glyph из RGB-цвета и символа.
//
// Пример:
//
//	glyph := MakeGlyph(RGB{255, 165, 0}, 'A') // 0xFFA50041
func MakeGlyph(color RGB, char byte) Glyph {
	return Glyph((color.Packed()&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color извлекает цвет из Glyph.
func (g Glyph) Color() RGB {
	packed := uint32(g>>shiftColor) & maskColor
	return RGB{R: uint8(packed >> 16), G: uint8(packed >> 8), B: uint8(packed)}
}

// Char извлекает символ из Glyph.
func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// String реализует fmt.Stringer. Формат: "Glyph{char='A', color=#FFA500}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})

	// Для непечатаемых символов показываем hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}

	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.Color().Hex())
}
