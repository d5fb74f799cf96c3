package selection

import "testing"

func TestSelection_Toggle(t *testing.T) {
	tests := []struct {
		name     string
		toggles  []int64
		wantID   int64
		wantSome bool
	}{
		{name: "nothing selected", toggles: nil, wantSome: false},
		{name: "select one", toggles: []int64{5}, wantID: 5, wantSome: true},
		{name: "same id twice clears", toggles: []int64{5, 5}, wantSome: false},
		{name: "other id replaces", toggles: []int64{5, 7}, wantID: 7, wantSome: true},
		{name: "reselect after clear", toggles: []int64{5, 5, 5}, wantID: 5, wantSome: true},
		{name: "id zero is selectable", toggles: []int64{0}, wantID: 0, wantSome: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			for _, id := range tt.toggles {
				s.Toggle(id)
			}

			id, ok := s.Selected()
			if ok != tt.wantSome {
				t.Fatalf("Selected() ok = %v, want %v", ok, tt.wantSome)
			}
			if ok && id != tt.wantID {
				t.Errorf("Selected() id = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestSelection_Clear(t *testing.T) {
	var s Selection
	s.Toggle(3)
	if !s.IsSelected(3) {
		t.Fatal("IsSelected(3) should be true")
	}

	s.Clear()
	if _, ok := s.Selected(); ok {
		t.Error("selection should be empty after Clear()")
	}
	if s.IsSelected(3) {
		t.Error("IsSelected(3) should be false after Clear()")
	}
}
