package domain

import "testing"

func TestActionVariants(t *testing.T) {
	cases := []struct {
		name string
		a    Action
		kind ActionKind
	}{
		{"setValue", SetValueAction{Row: 1, Col: 2, NewValue: 5}, ActionSetValue},
		{"toggleNote", ToggleNoteAction{Row: 3, Col: 4, Note: 7}, ActionToggleNote},
		{"clearCell", ClearCellAction{Row: 5, Col: 6, OldValue: 9}, ActionClearCell},
		{"hintUsed", HintUsedAction{Row: 7, Col: 8, Value: 1}, ActionHintUsed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a.Kind() != tc.kind {
				t.Fatalf("Kind() = %v, want %v", tc.a.Kind(), tc.kind)
			}
			if !tc.a.Kind().Known() {
				t.Fatalf("%v not recognized as a known kind", tc.kind)
			}
			if tc.a.Kind().String() != tc.name {
				t.Fatalf("String() = %q, want %q", tc.a.Kind().String(), tc.name)
			}
		})
	}
	if ActionKind(42).Known() {
		t.Fatal("kind 42 reported known")
	}
}

func TestInBounds(t *testing.T) {
	if !InBounds(0, 0) || !InBounds(8, 8) {
		t.Fatal("corners reported out of bounds")
	}
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}} {
		if InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d) = true", rc[0], rc[1])
		}
	}
}
