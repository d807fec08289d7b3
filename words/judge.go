/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package words holds the letter judge and the solution dictionary.
package words

import (
	"strings"
)

// Length is the number of letters in every guess and solution.
const Length = 5

// Status is the verdict for a single letter of a guess.
type Status string

const (
	Correct Status = "correct"
	Present Status = "present"
	Absent  Status = "absent"
)

// Judge compares guess against solution, both uppercase and Length letters long.
//
// Exact matches are attributed first, so a repeated guess letter is only
// marked Present while unmatched copies of it remain in the solution.
func Judge(guess, solution string) []Status {
	out := make([]Status, Length)
	if len(guess) != Length || len(solution) != Length {
		for i := range out {
			out[i] = Absent
		}
		return out
	}

	remaining := make(map[byte]int, Length)
	for i := 0; i < Length; i++ {
		remaining[solution[i]]++
	}

	for i := 0; i < Length; i++ {
		if guess[i] == solution[i] {
			out[i] = Correct
			remaining[guess[i]]--
		}
	}

	for i := 0; i < Length; i++ {
		if out[i] == Correct {
			continue
		}
		if remaining[guess[i]] > 0 {
			out[i] = Present
			remaining[guess[i]]--
		} else {
			out[i] = Absent
		}
	}

	return out
}

// Solved reports whether every status is Correct.
func Solved(result []Status) bool {
	if len(result) != Length {
		return false
	}
	for _, s := range result {
		if s != Correct {
			return false
		}
	}
	return true
}

// Normalize trims and uppercases a word.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Valid reports whether word is exactly Length uppercase ASCII letters.
func Valid(word string) bool {
	if len(word) != Length {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return false
		}
	}
	return true
}
