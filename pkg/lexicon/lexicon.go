// Package lexicon holds the static tables the wordlist pipeline draws from:
// the leet substitution table, suffix and prefix affixes, and the keyboard
// walks / common passwords seeded into every wordlist.
package lexicon

import (
	"slices"

	"github.com/getcreddy/wordforge/pkg/leet"
)

// suffixes are appended to every intermediate candidate. The empty suffix
// keeps the bare candidate.
var suffixes = []string{
	"", "!", "@", "#", "$", "%", "^", "&", "*", "?",
	"123", "1234", "00", "01", "007",
	"1", "2", "3", "4", "5", "69", "88", "99", "000",
}

// prefixes are prepended only when prefix decoration is enabled.
var prefixes = []string{"", "!", "#", "$", "~", "^", "&", "*"}

// keyboardWalks doubles as the common-password seed list.
var keyboardWalks = []string{
	"qwerty", "asdfgh", "zxcvbn", "123456", "1qaz2wsx", "1q2w3e4r",
	"qazwsx", "password", "letmein", "admin", "welcome", "monkey",
}

// Catalog bundles the tables used by one generation run. A Catalog handed to
// the pipeline must not be modified afterwards.
type Catalog struct {
	Leet          leet.Table
	Suffixes      []string
	Prefixes      []string
	KeyboardWalks []string
}

// Default returns a fresh catalog of the built-in tables.
func Default() *Catalog {
	return &Catalog{
		Leet:          leet.DefaultTable(),
		Suffixes:      slices.Clone(suffixes),
		Prefixes:      slices.Clone(prefixes),
		KeyboardWalks: slices.Clone(keyboardWalks),
	}
}

// Clone returns a deep copy of c.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Leet:          c.Leet.Clone(),
		Suffixes:      slices.Clone(c.Suffixes),
		Prefixes:      slices.Clone(c.Prefixes),
		KeyboardWalks: slices.Clone(c.KeyboardWalks),
	}
}

// IsCommon reports whether pw is one of the catalog's keyboard walks.
func (c *Catalog) IsCommon(pw string) bool {
	return slices.Contains(c.KeyboardWalks, pw)
}
