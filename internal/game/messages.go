package game

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

var ErrNoMessages = errors.New("No messages found")

// SecureIntn returns a cryptographically secure random int in [0, n)
func SecureIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// выбирает сообщение с минимальным shown_count, среди равных - случайно
func PickLeastShown(messages []domain.AntiCheatingMessage, intn func(int) int) (domain.AntiCheatingMessage, error) {
	if len(messages) == 0 {
		return domain.AntiCheatingMessage{}, ErrNoMessages
	}
	if intn == nil {
		intn = SecureIntn
	}

	minShown := messages[0].ShownCount
	for _, m := range messages[1:] {
		if m.ShownCount < minShown {
			minShown = m.ShownCount
		}
	}

	var eligible []domain.AntiCheatingMessage
	for _, m := range messages {
		if m.ShownCount == minShown {
			eligible = append(eligible, m)
		}
	}
	return eligible[intn(len(eligible))], nil
}
