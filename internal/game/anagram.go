package game

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

var ErrAnagramNotFound = errors.New("Anagram not found")

// результат проверки слова
type WordResult struct {
	IsValid bool `json:"isValid"`
	Reward  int  `json:"reward"`
}

// ищет решения анаграммы: сначала среди анаграмм основной игры, потом туториал.
// совпадение слова точное
func FindSolutions(cfg *domain.GameConfig, anagram string) (domain.Solutions, error) {
	for _, a := range cfg.GameAnagrams {
		if a.Word == anagram {
			if len(a.Solutions) > 0 {
				return a.Solutions, nil
			}
			break
		}
	}
	if t := cfg.TutorialAnagram; t != nil && t.Word == anagram && len(t.Solutions) > 0 {
		return t.Solutions, nil
	}
	return nil, ErrAnagramNotFound
}

// ключ корзины решений: длина слова в символах строкой
func LengthKey(word string) string {
	return strconv.Itoa(utf8.RuneCountInString(word))
}

// награда за слово длины key, 0 если не настроено
func RewardFor(rewards map[string]int, key string) int {
	return rewards[key]
}

// ValidateWord проверяет слово по корзине его длины без учета регистра
func ValidateWord(cfg *domain.GameConfig, word, anagram string) (WordResult, error) {
	solutions, err := FindSolutions(cfg, anagram)
	if err != nil {
		return WordResult{}, err
	}

	key := LengthKey(word)
	upper := strings.ToUpper(word)
	for _, s := range solutions[key] {
		if strings.ToUpper(s) == upper {
			return WordResult{IsValid: true, Reward: RewardFor(cfg.Rewards, key)}, nil
		}
	}
	return WordResult{IsValid: false, Reward: 0}, nil
}
