package security

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const slugMaxLength = 100

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Slugify converts a wishlist title into a URL-safe slug: lowercase ASCII
// letters and digits separated by single dashes. Titles with no usable
// characters fall back to "wishlist".
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
		if b.Len() >= slugMaxLength {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "wishlist"
	}
	return slug
}

// SlugSuffix returns a 4-character random suffix used to disambiguate slug
// collisions.
func SlugSuffix() string {
	buf := make([]byte, 4)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = suffixAlphabet[0]
			continue
		}
		buf[i] = suffixAlphabet[n.Int64()]
	}
	return string(buf)
}
