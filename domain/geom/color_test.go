package geom

import "testing"

func TestColorChannels(t *testing.T) {
	c := NewColor(0x12, 0x34, 0x56, 0x78)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 || c.A() != 0x78 {
		t.Errorf("channels = %02x %02x %02x %02x", c.R(), c.G(), c.B(), c.A())
	}
	if c.String() != "#12345678" {
		t.Errorf("String() = %s", c.String())
	}
}

func TestColorEquality(t *testing.T) {
	if NewColor(1, 2, 3, 0) != NewColor(1, 2, 3, 0) {
		t.Error("identical channels should compare equal")
	}
	if NewColor(1, 2, 3, 0) == NewColor(1, 2, 3, 255) {
		t.Error("alpha is part of the packed value")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		wantErr  bool
	}{
		{"#fbf9f6", FieldColor, false},
		{"#2c3d51", BallColor, false},
		{"2c3d51", BallColor, false},
		{" #2c3d51 ", BallColor, false},
		{"#fff", 0, true},
		{"#zzzzzz", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestReferenceColorsHaveZeroAlpha(t *testing.T) {
	if FieldColor.A() != 0 || BallColor.A() != 0 {
		t.Error("reference colors must carry a zero alpha channel")
	}
}
