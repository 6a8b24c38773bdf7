package textnorm

import (
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Romanizer converts Han characters to toneless pinyin so that Chinese
// vocabulary can be played with Latin letters.
type Romanizer struct {
	args gopinyin.Args
}

// NewRomanizer creates a romanizer using the first reading of each character.
func NewRomanizer() *Romanizer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal // zhong, no tone marks
	args.Heteronym = false
	return &Romanizer{args: args}
}

// Romanize replaces every Han character in s with its pinyin reading.
// Other characters pass through. Characters without a reading are dropped.
func (r *Romanizer) Romanize(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if !unicode.Is(unicode.Han, c) {
			sb.WriteRune(c)
			continue
		}
		readings := gopinyin.SinglePinyin(c, r.args)
		if len(readings) > 0 {
			sb.WriteString(readings[0])
		}
	}
	return sb.String()
}

// ContainsHan reports whether s has at least one Han character.
func ContainsHan(s string) bool {
	for _, c := range s {
		if unicode.Is(unicode.Han, c) {
			return true
		}
	}
	return false
}
