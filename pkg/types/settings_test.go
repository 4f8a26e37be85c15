package types

import "testing"

func TestVillageSettingsRoundTrip(t *testing.T) {
	settings := VillageSettings{
		PrimaryColor: "#1B5E20",
		HeroTagline:  "Desa wisata di kaki gunung",
		Social:       &Social{Instagram: "https://instagram.com/desabayan"},
		ShowStunting: true,
	}

	value, err := settings.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded VillageSettings
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if decoded.PrimaryColor != settings.PrimaryColor {
		t.Fatalf("expected %q got %q", settings.PrimaryColor, decoded.PrimaryColor)
	}
	if decoded.Social == nil || decoded.Social.Instagram != settings.Social.Instagram {
		t.Fatalf("social mismatch: %+v", decoded.Social)
	}
	if !decoded.ShowStunting {
		t.Fatal("expected show_stunting to survive round trip")
	}
}

func TestScanJSONHandlesNilAndString(t *testing.T) {
	var hours BusinessHours
	if err := hours.Scan(nil); err != nil {
		t.Fatalf("nil scan: %v", err)
	}
	if err := hours.Scan(`{"monday":{"open":"08:00","close":"17:00"}}`); err != nil {
		t.Fatalf("string scan: %v", err)
	}
	if hours.Monday == nil || hours.Monday.Open != "08:00" {
		t.Fatalf("unexpected monday hours: %+v", hours.Monday)
	}
}

func TestScanJSONRejectsUnknownType(t *testing.T) {
	var fields PlaceFields
	if err := fields.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
}
