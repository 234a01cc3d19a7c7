package utils

import (
	"math/rand"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

func Min(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

// RandomAlphabetString returns a random lower-case string of the given
// length, used for temp DB names.
func RandomAlphabetString(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}
