package recorder

import "testing"

func TestDisabledIgnoresCommands(t *testing.T) {
	s := New()
	s.SetCommand(CommandResume)
	if s.Phase() != Disabled {
		t.Errorf("disabled recorder changed phase on resume")
	}
	s.SetCommand(CommandSnap)
	if s.Phase() != Disabled {
		t.Errorf("disabled recorder changed phase on snap")
	}
}

func TestPauseResumeToggle(t *testing.T) {
	s := New()
	s.Enable()
	if s.Phase() != Paused {
		t.Fatalf("expected Paused after Enable, got %v", s.Phase())
	}
	s.SetCommand(CommandResume)
	if s.Phase() != Active {
		t.Errorf("expected Active after resume, got %v", s.Phase())
	}
	s.SetCommand(CommandPause)
	if s.Phase() != Paused {
		t.Errorf("expected Paused after pause, got %v", s.Phase())
	}
}

func TestSnapFromAnyStateGoesSingleFrame(t *testing.T) {
	for _, start := range []Phase{Paused, Active} {
		s := New()
		s.Enable()
		if start == Active {
			s.SetCommand(CommandResume)
		}
		s.SetCommand(CommandSnap)
		if s.Phase() != SingleFrame {
			t.Errorf("from %v: expected SingleFrame after snap, got %v", start, s.Phase())
		}
		s.FrameEmitted()
		if s.Phase() != Paused {
			t.Errorf("expected Paused after FrameEmitted, got %v", s.Phase())
		}
	}
}

func TestCommandReadBack(t *testing.T) {
	s := New()
	s.SetCommand(CommandSnap)
	if got := s.Command(); got != CommandSnap {
		t.Errorf("Command() = %d, want %d", got, CommandSnap)
	}
}
