package game

import (
	"strings"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// CheckWordMeanings проставляет isCorrect там, где клиент его не прислал.
// Пока правило простое: непустое значение считается верным.
// TODO: сверять с словарем, когда исследователи выберут источник определений
func CheckWordMeanings(meanings []domain.WordMeaning) []domain.WordMeaning {
	out := make([]domain.WordMeaning, len(meanings))
	for i, m := range meanings {
		if m.IsCorrect == nil {
			correct := strings.TrimSpace(m.ProvidedMeaning) != ""
			m.IsCorrect = &correct
		}
		out[i] = m
	}
	return out
}
