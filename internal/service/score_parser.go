package service

import (
	"regexp"
	"strconv"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

// scorePattern — контракт к свободному тексту модели: фиксированные имена
// параметров, двоеточие, целое число. Никакой семантики сверх этого.
var scorePattern = regexp.MustCompile(`(Clarity|Structure|Originality|Grammar|Relevance):\s*(\d+)`)

// ParseScores собирает все совпадения из ответа модели. Если параметр
// встречается несколько раз, побеждает последнее вхождение. Значения
// не валидируются по диапазону.
func ParseScores(reply string) models.ScoreSet {
	scores := make(models.ScoreSet)

	for _, match := range scorePattern.FindAllStringSubmatch(reply, -1) {
		value, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		scores[match[1]] = value
	}

	return scores
}
