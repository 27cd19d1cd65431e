package strategy

import (
	"testing"

	"github.com/frexsdev/noq/internal/token"
)

func TestAll(t *testing.T) {
	s := All{}
	for i := 0; i < 3; i++ {
		r := s.Matched()
		if r.Action != Apply || r.State != Bail {
			t.Errorf("All.Matched()[%d] = %+v, want Apply/Bail", i, r)
		}
	}
}

func TestDeep(t *testing.T) {
	s := Deep{}
	for i := 0; i < 3; i++ {
		r := s.Matched()
		if r.Action != Apply || r.State != Cont {
			t.Errorf("Deep.Matched()[%d] = %+v, want Apply/Cont", i, r)
		}
	}
}

func TestNth(t *testing.T) {
	n := NewNth(2)

	want := []Resolution{
		{Action: Skip, State: Cont},
		{Action: Skip, State: Cont},
		{Action: Apply, State: Halt},
		{Action: Skip, State: Halt},
	}

	for i, w := range want {
		got := n.Matched()
		if got != w {
			t.Errorf("Nth.Matched()[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestResolve(t *testing.T) {
	loc := token.Loc{Row: 1, Col: 1}

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"all", false},
		{"deep", false},
		{"first", false},
		{"0", false},
		{"7", false},
		{"-1", true},
		{"banana", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.name, loc)
			if (err != nil) != tt.wantErr {
				t.Errorf("Resolve(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}
