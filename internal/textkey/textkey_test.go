package textkey

import "testing"

func TestFold(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{in: "Eggs", want: "eggs"},
		{in: "  OLIVE Oil ", want: "olive oil"},
		{in: "Crème", want: "crème"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Fatalf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPair_CaseInsensitive(t *testing.T) {
	t.Parallel()

	if Pair("Eggs", "Large") != Pair("eggs", "large") {
		t.Fatalf("pair must ignore case")
	}
	if Pair("eggs", "large") == Pair("eggs", "small") {
		t.Fatalf("pair must keep unit distinct")
	}
	if Pair("ab", "c") == Pair("a", "bc") {
		t.Fatalf("pair must not collide across the separator")
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	if !Contains("Extra Virgin Olive Oil", "olive oil") {
		t.Fatalf("want substring match")
	}
	if Contains("salt", "sea salt") {
		t.Fatalf("needle longer than haystack must not match")
	}
}
