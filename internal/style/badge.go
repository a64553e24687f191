package style

import (
	"crypto/md5"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Badge is the round letter icon drawn for a shortcut without an icon file.
type Badge struct {
	Letter string
	Color  RGBA
}

// NewBadge derives the badge for a shortcut name. The colour is stable for a
// name: each channel is taken from the name's MD5 digest and kept in [55,254].
func NewBadge(name string) Badge {
	sum := md5.Sum([]byte(name))
	h := new(big.Int).SetBytes(sum[:])

	channel := func(shift uint) uint8 {
		v := new(big.Int).Rsh(h, shift)
		v.Mod(v, big.NewInt(200))
		return uint8(v.Int64() + 55)
	}

	return Badge{
		Letter: badgeLetter(name),
		Color:  RGBA{R: channel(0), G: channel(8), B: channel(16), A: 255},
	}
}

func badgeLetter(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
