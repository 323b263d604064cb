// Package profile turns the personal facts known about an audit target into
// the base words every wordlist candidate is built from.
package profile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned when a profile carries no usable fields.
var ErrInvalidProfile = errors.New("invalid profile: at least one field is required")

// Profile is the fixed set of facts known about a target. Empty fields are ignored.
type Profile struct {
	First   string `yaml:"first" json:"first,omitempty"`
	Last    string `yaml:"last" json:"last,omitempty"`
	Nick    string `yaml:"nick" json:"nick,omitempty"`
	Birth   string `yaml:"birth" json:"birth,omitempty"`
	Pet     string `yaml:"pet" json:"pet,omitempty"`
	Company string `yaml:"company" json:"company,omitempty"`
}

// Load reads a YAML profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// Merge returns p with every non-empty field of o applied on top.
func (p Profile) Merge(o Profile) Profile {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&p.First, o.First)
	set(&p.Last, o.Last)
	set(&p.Nick, o.Nick)
	set(&p.Birth, o.Birth)
	set(&p.Pet, o.Pet)
	set(&p.Company, o.Company)
	return p
}

// Fields returns the trimmed non-empty field values in declaration order.
func (p Profile) Fields() []string {
	var out []string
	for _, v := range []string{p.First, p.Last, p.Nick, p.Birth, p.Pet, p.Company} {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Empty reports whether the profile has no usable fields.
func (p Profile) Empty() bool {
	return len(p.Fields()) == 0
}

// Validate returns ErrInvalidProfile for an empty profile.
func (p Profile) Validate() error {
	if p.Empty() {
		return ErrInvalidProfile
	}
	return nil
}

// Normalize derives the sorted, deduplicated base words for p.
//
// Each field contributes its lowercase and capitalized forms. Every ordered
// pair of distinct values (i, j) contributes i+j, j+i, Capitalize(i)+j,
// i+Capitalize(j), i+"."+j and i+"_"+j. Values are lowercased before pairing.
func Normalize(p Profile) ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var values []string
	seenValue := make(map[string]struct{})
	for _, v := range p.Fields() {
		v = strings.ToLower(v)
		if _, ok := seenValue[v]; ok {
			continue
		}
		seenValue[v] = struct{}{}
		values = append(values, v)
	}

	words := make(map[string]struct{})
	for _, v := range values {
		words[v] = struct{}{}
		words[Capitalize(v)] = struct{}{}
	}
	for x, i := range values {
		for y, j := range values {
			if x == y {
				continue
			}
			for _, w := range []string{
				i + j,
				j + i,
				Capitalize(i) + j,
				i + Capitalize(j),
				i + "." + j,
				i + "_" + j,
			} {
				words[w] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
