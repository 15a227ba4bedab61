package tag

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Navy Blue", "navy blue"},
		{"  Slim  Fit  ", "slim fit"},
		{"off-white", "off-white"},
		{"Black!", "black"},
		{"men's", "mens"},
		{"WOOL\tsuit", "wool suit"},
		{"café", "caf"},
		{"snake_case", "snakecase"},
		{"", ""},
		{"   ", ""},
		{"...", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Navy Blue", " Charcoal  Grey!! ", "slim-fit", "3 piece suit", "Ω wool"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Navy", " WOOL "})
	if len(got) != 2 || got[0] != "navy" || got[1] != "wool" {
		t.Errorf("NormalizeAll = %v", got)
	}
}
