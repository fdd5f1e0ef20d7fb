package dungeon

import (
	"embed"
	"encoding/json"
	"fmt"
)

// dataFS - шаблоны монстров, предметов и модификаторов, вшитые при сборке.
//
//go:embed data/*.json
var dataFS embed.FS

// Load читает и разбирает JSON файл из вшитых данных.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile("data/" + filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad как Load, но паникует. Без этих данных игра не запустится.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
