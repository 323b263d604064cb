package strength

import (
	"math"
	"testing"
)

func TestZxcvbnScores(t *testing.T) {
	z := NewZxcvbn(nil, nil)
	tests := []struct {
		pw      string
		want    int
		warning bool
	}{
		{"qwerty", 0, true},
		{"password", 0, true},
		{"zxcvbn", 0, true},
		{"correcthorsebatterystaple", 4, false},
		{"xK9#mQ2$vL7&pW4!zR", 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			got := z.Analyze(tt.pw)
			if got.Score != tt.want {
				t.Errorf("Analyze(%q).Score = %d, want %d", tt.pw, got.Score, tt.want)
			}
			if (got.Warning != "") != tt.warning {
				t.Errorf("Analyze(%q).Warning = %q", tt.pw, got.Warning)
			}
			if got.CrackTime == "" {
				t.Errorf("Analyze(%q) has no crack time", tt.pw)
			}
		})
	}
}

func TestZxcvbnWeakCrackTime(t *testing.T) {
	got := NewZxcvbn(nil, nil).Analyze("qwerty")
	if got.CrackTime != "instant" {
		t.Errorf("CrackTime = %q, want instant", got.CrackTime)
	}
	if len(got.Suggestions) == 0 {
		t.Error("weak password has no suggestions")
	}
}

func TestZxcvbnCommon(t *testing.T) {
	z := NewZxcvbn(nil, []string{"Hunter2"})
	for _, pw := range []string{"hunter2", "HUNTER2"} {
		got := z.Analyze(pw)
		if got.Score != 0 {
			t.Errorf("Analyze(%q).Score = %d, want 0", pw, got.Score)
		}
		if got.Warning != "This is a commonly used password." {
			t.Errorf("Analyze(%q).Warning = %q", pw, got.Warning)
		}
	}
}

func TestZxcvbnHints(t *testing.T) {
	plain := NewZxcvbn(nil, nil).Analyze("janerex2024")
	hinted := NewZxcvbn([]string{" Jane ", "REX"}, nil).Analyze("janerex2024")
	if hinted.Score > plain.Score {
		t.Errorf("hints raised the score: plain %d, hinted %d", plain.Score, hinted.Score)
	}
	if hinted.CrackSeconds > plain.CrackSeconds {
		t.Errorf("hints raised the crack time: plain %v, hinted %v", plain.CrackSeconds, hinted.CrackSeconds)
	}
	if hinted.Warning != "Contains personal information that is easy to guess." {
		t.Errorf("hinted Warning = %q", hinted.Warning)
	}
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		pw   string
		want float64
	}{
		{"", 0},
		{"aaaa", 0},
		{"ab", 2},
		{"abcd", 8},
	}
	for _, tt := range tests {
		if got := Entropy(tt.pw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Entropy(%q) = %v, want %v", tt.pw, got, tt.want)
		}
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		e    float64
		want string
	}{
		{0, "Very Weak"},
		{27.9, "Very Weak"},
		{28, "Weak"},
		{36, "Moderate"},
		{60, "Strong"},
		{128, "Very Strong"},
	}
	for _, tt := range tests {
		if got := Band(tt.e); got != tt.want {
			t.Errorf("Band(%v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestZxcvbnImplementsOracle(t *testing.T) {
	var _ Oracle = NewZxcvbn(nil, nil)
}
