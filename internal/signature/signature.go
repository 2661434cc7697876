// Package signature allocates archive signatures and derives their prefixes
// from categories.
package signature

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/user/aktdoclix/internal/model"
)

// Width is the minimum number of digits in an allocated signature number.
const Width = 5

var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// Source finds the stored signature with the given prefix that sorts widest,
// then lexicographically largest.
type Source interface {
	WidestSignature(prefix string) (string, bool, error)
}

// Allocator proposes the next free signature for a prefix.
type Allocator struct {
	Source Source
}

// NewAllocator creates an allocator reading existing signatures from src.
func NewAllocator(src Source) *Allocator {
	return &Allocator{Source: src}
}

// Next returns prefix followed by the successor of the number ending the
// widest existing signature, zero-padded to Width digits.
//
// The widest-then-largest choice is a string heuristic, not a numeric
// maximum: with mixed digit widths "Gem.00012" outranks "Gem.123".
func (a *Allocator) Next(prefix string) (string, error) {
	if prefix == "" {
		prefix = model.FallbackPrefix
	}

	widest, found, err := a.Source.WidestSignature(prefix)
	if err != nil {
		return "", err
	}
	if !found {
		return first(prefix), nil
	}

	digits := trailingDigits.FindString(widest)
	if digits == "" {
		return first(prefix), nil
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return first(prefix), nil
	}
	n.Add(n, big.NewInt(1))
	return prefix + pad(n.String()), nil
}

func first(prefix string) string {
	return fmt.Sprintf("%s%0*d", prefix, Width, 1)
}

func pad(digits string) string {
	if len(digits) >= Width {
		return digits
	}
	return strings.Repeat("0", Width-len(digits)) + digits
}

// MappedPrefix is the prefix used when a known category is selected.
// Unmapped categories and empty prefixes fall back to "Div.".
func MappedPrefix(categories *orderedmap.OrderedMap[string, string], name string) string {
	if prefix, ok := categories.Get(name); ok && prefix != "" {
		return prefix
	}
	return model.FallbackPrefix
}

// LivePrefix is the prefix used while a category name is being typed:
// the mapped prefix if the name is known, otherwise SuggestPrefix.
func LivePrefix(categories *orderedmap.OrderedMap[string, string], typed string) string {
	if prefix, ok := categories.Get(typed); ok {
		return prefix
	}
	return SuggestPrefix(typed)
}

// SuggestPrefix proposes a prefix for a new category: its first three
// characters and a dot, or "Div." for names shorter than three characters.
func SuggestPrefix(name string) string {
	runes := []rune(name)
	if len(runes) < 3 {
		return model.FallbackPrefix
	}
	return string(runes[:3]) + "."
}

// Reprefix swaps the prefix of sig for prefix, keeping its trailing digits
// unpadded. A signature without trailing digits is returned unchanged.
func Reprefix(sig, prefix string) string {
	digits := trailingDigits.FindString(sig)
	if digits == "" {
		return sig
	}
	return prefix + digits
}
