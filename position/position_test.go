package position

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		pos   Position
		valid bool
	}{
		{Position{0, 0}, true},
		{Position{MaxRows - 1, MaxCols - 1}, true},
		{Position{-1, 0}, false},
		{Position{0, -1}, false},
		{Position{MaxRows, 0}, false},
		{Position{0, MaxCols}, false},
	}
	for _, c := range cases {
		if got := c.pos.IsValid(); got != c.valid {
			t.Errorf("Position%+v.IsValid() = %v, want %v", c.pos, got, c.valid)
		}
	}
}

func TestLess(t *testing.T) {
	if !(Position{0, 1}).Less(Position{1, 0}) {
		t.Errorf("row 0 should sort before row 1 regardless of column")
	}
	if !(Position{2, 0}).Less(Position{2, 1}) {
		t.Errorf("same row should order by column")
	}
	if (Position{1, 0}).Less(Position{0, 5}) {
		t.Errorf("higher row should not sort first")
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []struct {
		pos  Position
		text string
	}{
		{Position{0, 0}, "A1"},
		{Position{0, 25}, "Z1"},
		{Position{0, 26}, "AA1"},
		{Position{9, 26}, "AA10"},
		{Position{99, 701}, "ZZ100"},
	}
	for _, c := range cases {
		if got := c.pos.String(); got != c.text {
			t.Errorf("Position%+v.String() = %q, want %q", c.pos, got, c.text)
		}
		got, err := Parse(c.text)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", c.text, err)
		}
		if got != c.pos {
			t.Errorf("Parse(%q) = %+v, want %+v", c.text, got, c.pos)
		}
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	got, err := Parse("aa10")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if want := (Position{9, 26}); got != want {
		t.Errorf("Parse(\"aa10\") = %+v, want %+v", got, want)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "1A", "A", "A0", "A-1", "1", "A1B"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should have failed", s)
		}
	}
}
