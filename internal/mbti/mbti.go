package mbti

import (
	"errors"
	"strings"
)

var ErrInvalidAnswer = errors.New("answers must be MBTI trait letters")

// dimensions in result order. A tied dimension resolves to its first letter.
var dimensions = [4][2]byte{
	{'E', 'I'},
	{'S', 'N'},
	{'T', 'F'},
	{'J', 'P'},
}

// Score turns a list of per-question trait letters into a four-letter type.
// Each answer votes for one side of its dimension; the side with more votes
// wins and ties go to the first letter (E, S, T, J).
func Score(answers []string) (string, error) {
	if len(answers) == 0 {
		return "", ErrInvalidAnswer
	}
	counts := make(map[byte]int)
	for _, a := range answers {
		a = strings.ToUpper(strings.TrimSpace(a))
		if len(a) != 1 || !isTrait(a[0]) {
			return "", ErrInvalidAnswer
		}
		counts[a[0]]++
	}

	var b strings.Builder
	for _, dim := range dimensions {
		if counts[dim[1]] > counts[dim[0]] {
			b.WriteByte(dim[1])
		} else {
			b.WriteByte(dim[0])
		}
	}
	return b.String(), nil
}

func isTrait(c byte) bool {
	for _, dim := range dimensions {
		if c == dim[0] || c == dim[1] {
			return true
		}
	}
	return false
}
