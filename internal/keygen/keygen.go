// Package keygen derives surrogate keys from text.
//
// Keys are the lowercase hex MD5 digest of the exact input bytes, so the same
// skill name or job title yields the same key in every file and every run.
// Files processed independently can later be joined on these keys.
package keygen

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Size is the length of every generated key.
const Size = md5.Size * 2

// Key returns the generated key for text. No normalization is applied.
func Key(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// FoldedKey lower-cases text before hashing. Only the skills-importance
// consolidator keys this way; changing the folding rule changes its keys.
func FoldedKey(text string) string {
	return Key(strings.ToLower(text))
}
