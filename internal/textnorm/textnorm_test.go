package textnorm

import "testing"

func TestCleanStripsFormatRunes(t *testing.T) {
	in := "це​на" // zero-width space in the middle
	if got := Clean(in); got != "цена" {
		t.Fatalf("Clean(%q) = %q, want %q", in, got, "цена")
	}
}

func TestCleanRecomposesNFC(t *testing.T) {
	in := "йогурт" // decomposed й
	want := "йогурт"
	if got := Clean(in); got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
}

func TestFoldKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Цена  ", "цена"},
		{"Вес   нетто", "вес нетто"},
		{"IKPU", "ikpu"},
	}
	for _, c := range cases {
		if got := FoldKey(c.in); got != c.want {
			t.Errorf("FoldKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
