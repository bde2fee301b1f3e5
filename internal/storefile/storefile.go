// Package storefile gathers facts about storefront files on disk.
package storefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"creator-store-check/internal/model"
)

// ErrNotUTF8 is returned by ReadText for content that is not valid UTF-8.
var ErrNotUTF8 = errors.New("content is not valid UTF-8")

// Stat reports whether path exists and its size. A path that cannot be
// stat'ed for any reason counts as absent.
func Stat(path string) model.FileFact {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileFact{}
	}
	return model.FileFact{Exists: true, Size: info.Size()}
}

// Exists is Stat(path).Exists.
func Exists(path string) bool {
	return Stat(path).Exists
}

// ReadText reads a UTF-8 text file. ok is false when the file does not exist;
// any other failure is returned as an error.
func ReadText(path string) (text string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	if !utf8.Valid(data) {
		return "", false, fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(data), true, nil
}

// StatAll stats join(name) for every name. Duplicates are reported once, in
// first-seen order.
func StatAll(join func(string) string, names []string) ([]string, map[string]model.FileFact) {
	facts := make(map[string]model.FileFact, len(names))
	order := make([]string, 0, len(names))
	for _, n := range names {
		if _, seen := facts[n]; !seen {
			order = append(order, n)
		}
		facts[n] = Stat(join(n))
	}
	return order, facts
}
