package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModSuper | ModHyper | ModMeta, ModHyper, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.Has(ModCtrl) || !mod.Has(ModAlt) {
		t.Fatalf("With should set Ctrl and Alt, got %s", mod)
	}

	mod = mod.Without(ModAlt)
	if mod.Has(ModAlt) {
		t.Error("Without(ModAlt) should remove Alt")
	}
	if mod != ModCtrl {
		t.Errorf("mod = %s, want Ctrl", mod)
	}
}

func TestNamedCombinations(t *testing.T) {
	tests := []struct {
		name  string
		union Modifier
		parts []Modifier
	}{
		{"CONTROL_ALT", ModCtrlAlt, []Modifier{ModCtrl, ModAlt}},
		{"CONTROL_SHIFT", ModCtrlShift, []Modifier{ModCtrl, ModShift}},
		{"ALT_SHIFT", ModAltShift, []Modifier{ModAlt, ModShift}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var union Modifier
			for _, p := range tt.parts {
				union |= p
				if tt.union == p {
					t.Errorf("%s must not equal a single flag %s", tt.name, p)
				}
			}
			if union != tt.union {
				t.Errorf("%s = %d, want union %d", tt.name, tt.union, union)
			}
			if got := tt.union.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestCombinationBits(t *testing.T) {
	// The backend reports these exact bit patterns.
	if ModCtrlAlt != 0b0000_0110 {
		t.Errorf("ModCtrlAlt = %08b", ModCtrlAlt)
	}
	if ModCtrlShift != 0b0000_0011 {
		t.Errorf("ModCtrlShift = %08b", ModCtrlShift)
	}
	if ModAltShift != 0b0000_0101 {
		t.Errorf("ModAltShift = %08b", ModAltShift)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModMeta, "Meta"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift | ModSuper | ModHyper | ModMeta, "Ctrl+Alt+Shift+Super+Hyper+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierName(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, "NONE"},
		{ModCtrl, "CONTROL"},
		{ModSuper, "SUPER"},
		{ModHyper, "HYPER"},
		{ModCtrlAlt, "CONTROL_ALT"},
		{ModCtrl | ModAlt | ModShift, "CONTROL+ALT+SHIFT"},
		{ModShift | ModMeta, "SHIFT+META"},
	}

	for _, tt := range tests {
		if got := tt.mod.Name(); got != tt.want {
			t.Errorf("Modifier(%d).Name() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
		ok   bool
	}{
		{"NONE", ModNone, true},
		{"CONTROL", ModCtrl, true},
		{"control", ModCtrl, true},
		{"Ctrl", ModCtrl, true},
		{"SHIFT", ModShift, true},
		{"ALT", ModAlt, true},
		{"META", ModMeta, true},
		{"SUPER", ModSuper, true},
		{"HYPER", ModHyper, true},
		{"CONTROL_ALT", ModCtrlAlt, true},
		{"CONTROL_SHIFT", ModCtrlShift, true},
		{"ALT_SHIFT", ModAltShift, true},
		{"SHIFT_ALT", ModNone, false},
		{"cmd", ModNone, false},
		{"", ModNone, false},
	}

	for _, tt := range tests {
		got, ok := ModifierFromName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ModifierFromName(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModifierValid(t *testing.T) {
	if !(ModCtrl | ModMeta).Valid() {
		t.Error("Ctrl|Meta should be valid")
	}
	if Modifier(1 << 7).Valid() {
		t.Error("bit 7 is outside the vocabulary")
	}
}

func TestRequirementAccepts(t *testing.T) {
	all := []Modifier{
		ModNone, ModShift, ModCtrl, ModAlt, ModSuper, ModHyper, ModMeta,
		ModCtrlAlt, ModCtrlShift, ModAltShift, ModCtrl | ModAlt | ModShift,
	}

	for _, required := range all {
		req := Exactly(required)
		for _, actual := range all {
			want := actual == required
			if got := req.Accepts(actual); got != want {
				t.Errorf("Exactly(%s).Accepts(%s) = %v, want %v",
					required.Name(), actual.Name(), got, want)
			}
			if got := Matches(required, actual); got != want {
				t.Errorf("Matches(%s, %s) = %v, want %v",
					required.Name(), actual.Name(), got, want)
			}
		}
	}

	for _, actual := range all {
		if !AnyModifiers.Accepts(actual) {
			t.Errorf("AnyModifiers.Accepts(%s) = false", actual.Name())
		}
	}
}

func TestRequirementZeroValue(t *testing.T) {
	var req Requirement
	if !req.Accepts(ModNone) {
		t.Error("zero Requirement should accept ModNone")
	}
	if req.Accepts(ModCtrl) {
		t.Error("zero Requirement must not accept Ctrl")
	}
	if req.IsAny() {
		t.Error("zero Requirement is not ANY")
	}
	if req != Exactly(ModNone) {
		t.Error("zero Requirement should equal Exactly(ModNone)")
	}
}

func TestRequirementString(t *testing.T) {
	tests := []struct {
		req  Requirement
		want string
	}{
		{AnyModifiers, "ANY"},
		{Exactly(ModNone), "NONE"},
		{Exactly(ModCtrlShift), "CONTROL_SHIFT"},
	}

	for _, tt := range tests {
		if got := tt.req.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
