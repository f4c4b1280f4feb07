package domain

import "testing"

func TestInput_Merge(t *testing.T) {
	a := Input{Forward: true, Fire: 1, Weapon: 3}
	b := Input{TurnLeft: true, Fire: 2}

	got := a.Merge(b)
	want := Input{Forward: true, TurnLeft: true, Fire: 3, Weapon: 3}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}

	if got := a.Merge(Input{Weapon: 6}).Weapon; got != 6 {
		t.Errorf("later weapon should win, got %d", got)
	}
	if !(Input{}).IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestPlayer_SelectWeapon(t *testing.T) {
	p := NewPlayer(Position{})
	for _, n := range []int{0, 8, -1} {
		if p.SelectWeapon(n) {
			t.Errorf("weapon %d should be rejected", n)
		}
	}
	if !p.SelectWeapon(7) || p.Weapon != 7 {
		t.Errorf("weapon 7 should be accepted, got %d", p.Weapon)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"INPUT", ActionInput},
		{"fire", ActionFire},
		{"Weapon", ActionWeapon},
		{"PAUSE", ActionPause},
		{"reset", ActionReset},
		{"MOVE", ActionUnknown},
		{"", ActionUnknown},
	}
	for _, tt := range tests {
		if got := ParseAction(tt.input); got != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
	if ActionFire.String() != "FIRE" || ActionUnknown.String() != "UNKNOWN" {
		t.Error("String mismatch")
	}
}

func TestEntityID_JSON(t *testing.T) {
	id := PackEntityID(KindEnemy, 42)
	data, err := id.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var back EntityID
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if back != id || back.Kind() != KindEnemy || back.Index() != 42 {
		t.Errorf("got %v want %v", back, id)
	}
}
