package field

import (
	"testing"
)

func TestNext_TransitionTable(t *testing.T) {
	tests := []struct {
		state State
		event Event
		want  State
	}{
		{Untouched, EventFocus, Focused},
		{Untouched, EventChange, Blurred},
		{Untouched, EventBlur, Untouched},
		{Focused, EventFocus, Focused},
		{Focused, EventChange, Changed},
		{Focused, EventBlur, Untouched},
		{Changed, EventFocus, Changed},
		{Changed, EventChange, Changed},
		{Changed, EventBlur, Blurred},
		{Blurred, EventFocus, Changed},
		{Blurred, EventChange, Blurred},
		{Blurred, EventBlur, Blurred},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+string(tt.event), func(t *testing.T) {
			if got := Next(tt.state, tt.event); got != tt.want {
				t.Fatalf("Next(%s, %s) = %s, want %s", tt.state, tt.event, got, tt.want)
			}
		})
	}
}

func TestMachine_FireReportsChange(t *testing.T) {
	m := NewMachine("email", nil)
	if m.Current() != Untouched {
		t.Fatalf("initial state = %s, want %s", m.Current(), Untouched)
	}

	state, changed := m.Fire(EventBlur)
	if changed || state != Untouched {
		t.Fatalf("blur from untouched = (%s, %v), want (%s, false)", state, changed, Untouched)
	}

	state, changed = m.Fire(EventFocus)
	if !changed || state != Focused {
		t.Fatalf("focus from untouched = (%s, %v), want (%s, true)", state, changed, Focused)
	}
}

func TestMachine_UnknownEventIsNoop(t *testing.T) {
	m := NewMachine("email", nil)
	if state, changed := m.Fire(Event("submit")); changed || state != Untouched {
		t.Fatalf("unknown event = (%s, %v), want (%s, false)", state, changed, Untouched)
	}
}

func TestParseTiming(t *testing.T) {
	tests := []struct {
		raw     string
		want    Timing
		wantErr bool
	}{
		{"", ValidateOnRequest, false},
		{"requested", ValidateOnRequest, false},
		{"Changed", ValidateOnChange, false},
		{" blur ", ValidateOnBlur, false},
		{"submit", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTiming(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTiming(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseTiming(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
