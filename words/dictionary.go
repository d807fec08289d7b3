/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"io"
	"math/big"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

// ErrEmpty is returned when a word list contains no usable words.
var ErrEmpty = errors.New("words: list contains no five-letter words")

// Dictionary is an immutable list of candidate solutions.
type Dictionary struct {
	list []string
	set  map[string]struct{}
}

// New builds a Dictionary from words, keeping only valid entries.
func New(words []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.add(w)
	}
	if len(d.list) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Load reads one word per line. Blank lines and lines starting with '#' are
// skipped; duplicates keep their first position.
func Load(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{})}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(d.list) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Default returns the embedded solution list.
func Default() (*Dictionary, error) {
	return Load(strings.NewReader(embeddedWords))
}

// Open loads a word list from path.
func Open(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func (d *Dictionary) add(word string) {
	w := Normalize(word)
	if !Valid(w) {
		return
	}
	if _, ok := d.set[w]; ok {
		return
	}
	d.set[w] = struct{}{}
	d.list = append(d.list, w)
}

// Random returns a uniformly chosen word using crypto/rand.
func (d *Dictionary) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.list))))
	if err != nil {
		return d.list[0]
	}
	return d.list[n.Int64()]
}

// Contains reports whether word (in any case) is in the list.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[Normalize(word)]
	return ok
}

// Len is the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.list)
}
