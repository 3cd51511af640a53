package common

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Position
	}{
		{"Outright leader", "1", Position{Rank: 1, Status: StatusActive}},
		{"Tied leader", "T1", Position{Rank: 1, Tied: true, Status: StatusActive}},
		{"Tied fifth", "T5", Position{Rank: 5, Tied: true, Status: StatusActive}},
		{"Plain rank", "42", Position{Rank: 42, Status: StatusActive}},
		{"Lowercase tied", "t12", Position{Rank: 12, Tied: true, Status: StatusActive}},
		{"Cut", "CUT", Position{Status: StatusCut}},
		{"Missed cut", "MC", Position{Status: StatusCut}},
		{"Withdrawn", "WD", Position{Status: StatusWithdrawn}},
		{"Withdrawn with slash", "W/D", Position{Status: StatusWithdrawn}},
		{"Disqualified", "DQ", Position{Status: StatusWithdrawn}},
		{"Finished", "F", Position{Status: StatusFinished}},
		{"Empty", "", Position{Status: StatusActive}},
		{"Dash placeholder", "-", Position{Status: StatusActive}},
		{"Garbage", "??", Position{Status: StatusActive}},
		{"Whitespace around rank", " T3 ", Position{Rank: 3, Tied: true, Status: StatusActive}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePosition(tc.input)
			if got != tc.expected {
				t.Errorf("ParsePosition(%q) = %+v, expected %+v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestPositionIsFinal(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"T5", false},
		{"1", false},
		{"", false},
		{"CUT", true},
		{"MC", true},
		{"WD", true},
		{"DQ", true},
		{"F", true},
	}

	for _, tc := range tests {
		if got := ParsePosition(tc.input).IsFinal(); got != tc.expected {
			t.Errorf("ParsePosition(%q).IsFinal() = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}
