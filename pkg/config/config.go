package config

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/getcreddy/wordforge/pkg/leet"
	"github.com/getcreddy/wordforge/pkg/lexicon"
	"gopkg.in/yaml.v3"
)

// Config represents the catalog overrides file
type Config struct {
	Suffixes      []string            `yaml:"suffixes"`
	Prefixes      []string            `yaml:"prefixes"`
	KeyboardWalks []string            `yaml:"keyboard_walks"`
	Leet          map[string][]string `yaml:"leet"`
}

// Load reads config from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.leetTable(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Catalog overlays the non-empty sections of c onto a copy of base.
// A leet section replaces the whole substitution table.
func (c *Config) Catalog(base *lexicon.Catalog) (*lexicon.Catalog, error) {
	cat := base.Clone()
	if len(c.Suffixes) > 0 {
		cat.Suffixes = append([]string(nil), c.Suffixes...)
	}
	if len(c.Prefixes) > 0 {
		cat.Prefixes = append([]string(nil), c.Prefixes...)
	}
	if len(c.KeyboardWalks) > 0 {
		cat.KeyboardWalks = append([]string(nil), c.KeyboardWalks...)
	}
	if len(c.Leet) > 0 {
		table, err := c.leetTable()
		if err != nil {
			return nil, err
		}
		cat.Leet = table
	}
	return cat, nil
}

// leetTable converts the YAML leet section. Keys and alternatives must each be
// a single character; keys are folded to lowercase.
func (c *Config) leetTable() (leet.Table, error) {
	table := make(leet.Table, len(c.Leet))
	for key, alts := range c.Leet {
		k, err := singleRune(key)
		if err != nil {
			return nil, fmt.Errorf("leet key %q: %w", key, err)
		}
		var rs []rune
		for _, a := range alts {
			r, err := singleRune(a)
			if err != nil {
				return nil, fmt.Errorf("leet alternative %q for %q: %w", a, key, err)
			}
			rs = append(rs, r)
		}
		table[unicode.ToLower(k)] = rs
	}
	return table, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("must be exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
