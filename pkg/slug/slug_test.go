package slug

import "testing"

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Tas Anyaman":          "tas-anyaman",
		"  Kerajinan  Bambu ":  "kerajinan-bambu",
		"Kopi 100% Arabika!!!": "kopi-100-arabika",
		"---":                  "",
		"Désa Wisata":          "d-sa-wisata",
	}
	for input, want := range cases {
		if got := Make(input); got != want {
			t.Errorf("Make(%q) = %q, want %q", input, got, want)
		}
	}
}
