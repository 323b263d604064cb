// Package strength estimates how resistant a password is to guessing.
//
// Oracle is the contract the rest of the tool consumes. Zxcvbn implements it
// with the zxcvbn pattern matcher, which models crack time as offline slow
// hashing at 10^4 guesses per second.
package strength

import (
	"math"
	"strings"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
	"github.com/ccojocar/zxcvbn-go/match"
)

// userInputsDict is the dictionary zxcvbn reports for matches on user inputs,
// with a suffix added for their leet forms.
const userInputsDict = "user_inputs"

// Result is an oracle verdict.
type Result struct {
	Password     string   `json:"password"`
	Score        int      `json:"score"` // 0 (weakest) to 4
	CrackTime    string   `json:"crack_time"`
	CrackSeconds float64  `json:"crack_seconds"`
	Warning      string   `json:"warning,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Oracle scores a single password.
type Oracle interface {
	Analyze(password string) Result
}

// Zxcvbn scores passwords with zxcvbn. Hints are personal facts (names,
// pets) fed to the matcher as user inputs; common passwords always score 0.
type Zxcvbn struct {
	hints  []string
	common map[string]struct{}
}

// NewZxcvbn creates an oracle.
func NewZxcvbn(hints, common []string) *Zxcvbn {
	z := &Zxcvbn{common: make(map[string]struct{}, len(common))}
	for _, hint := range hints {
		if hint = strings.ToLower(strings.TrimSpace(hint)); hint != "" {
			z.hints = append(z.hints, hint)
		}
	}
	for _, c := range common {
		z.common[strings.ToLower(c)] = struct{}{}
	}
	return z
}

// Analyze implements Oracle.
func (z *Zxcvbn) Analyze(password string) Result {
	m := zxcvbn.PasswordStrength(password, z.hints)
	res := Result{
		Password:     password,
		Score:        m.Score,
		CrackTime:    m.CrackTimeDisplay,
		CrackSeconds: m.CrackTime,
	}

	if _, ok := z.common[strings.ToLower(password)]; ok {
		res.Score = 0
		res.Warning = "This is a commonly used password."
		res.Suggestions = []string{"Avoid common passwords and keyboard patterns."}
		return res
	}

	personal := z.usesHint(password, m.MatchSequence)
	if res.Score > 2 && !personal {
		return res
	}

	res.Warning, res.Suggestions = feedback(m.MatchSequence)
	if personal {
		res.Warning = "Contains personal information that is easy to guess."
		res.Suggestions = append(res.Suggestions, "Avoid names, dates and other facts about yourself.")
	}
	return res
}

func (z *Zxcvbn) usesHint(password string, seq []match.Match) bool {
	for _, m := range seq {
		if strings.HasPrefix(m.DictionaryName, userInputsDict) {
			return true
		}
	}
	lower := strings.ToLower(password)
	for _, hint := range z.hints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// feedback explains a weak score from the longest pattern zxcvbn found.
func feedback(seq []match.Match) (string, []string) {
	suggestions := []string{"Add another word or two. Uncommon words are better."}

	var longest *match.Match
	for i := range seq {
		m := &seq[i]
		if m.Pattern == "bruteforce" {
			continue
		}
		if longest == nil || len(m.Token) > len(longest.Token) {
			longest = m
		}
	}
	if longest == nil {
		return "", append(suggestions, "Use a longer password with mixed character types.")
	}

	switch longest.Pattern {
	case "dictionary":
		if strings.HasSuffix(longest.DictionaryName, "_3117") {
			suggestions = append(suggestions, "Predictable substitutions like '@' instead of 'a' don't help very much.")
		}
		return "This is similar to a commonly used password.", suggestions
	case "spatial":
		return "Straight rows of keys are easy to guess.", append(suggestions, "Use a longer keyboard pattern with more turns.")
	case "repeat":
		return `Repeats like "aaa" are easy to guess.`, append(suggestions, "Avoid repeated words and characters.")
	case "sequence":
		return "Sequences like abc or 6543 are easy to guess.", append(suggestions, "Avoid sequences.")
	case "date":
		return "Dates are often easy to guess.", append(suggestions, "Avoid dates and years that are associated with you.")
	}
	return "", suggestions
}

// Entropy returns length * log2(distinct characters), the pool-size estimate
// used for quick comparisons. It ignores structure, so it flatters passwords
// built from words.
func Entropy(password string) float64 {
	runes := []rune(password)
	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
	}
	if len(distinct) == 0 {
		return 0
	}
	return float64(len(runes)) * math.Log2(float64(len(distinct)))
}

// Band names the strength category for an entropy value.
func Band(entropy float64) string {
	switch {
	case entropy < 28:
		return "Very Weak"
	case entropy < 36:
		return "Weak"
	case entropy < 60:
		return "Moderate"
	case entropy < 128:
		return "Strong"
	}
	return "Very Strong"
}
