package voice

import "testing"

func TestFrames(t *testing.T) {
	t.Parallel()

	t.Run("exact multiple", func(t *testing.T) {
		t.Parallel()
		samples := make([]int16, 8)
		got := frames(samples, 4)
		if len(got) != 2 {
			t.Fatalf("got %d frames, want 2", len(got))
		}
		for i, f := range got {
			if len(f) != 4 {
				t.Errorf("frame %d has %d samples, want 4", i, len(f))
			}
		}
	})

	t.Run("partial final frame is zero-padded", func(t *testing.T) {
		t.Parallel()
		samples := []int16{1, 2, 3, 4, 5}
		got := frames(samples, 4)
		if len(got) != 2 {
			t.Fatalf("got %d frames, want 2", len(got))
		}
		last := got[1]
		if len(last) != 4 {
			t.Fatalf("final frame has %d samples, want 4", len(last))
		}
		want := []int16{5, 0, 0, 0}
		for i := range want {
			if last[i] != want[i] {
				t.Errorf("final frame[%d] = %d, want %d", i, last[i], want[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if got := frames(nil, 4); got != nil {
			t.Errorf("frames(nil) = %v, want nil", got)
		}
	})
}

func TestSetMuted(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0.1)
	if p.Muted("g1") {
		t.Fatal("new player should not be muted")
	}
	if !p.SetMuted("g1", true) {
		t.Error("muting an unmuted guild should report a change")
	}
	if p.SetMuted("g1", true) {
		t.Error("muting twice should report no change")
	}
	if !p.Muted("g1") {
		t.Error("guild should be muted")
	}
	if !p.SetMuted("g1", false) {
		t.Error("unmuting a muted guild should report a change")
	}
}

func TestSetMuted_GuildIsolation(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0.1)
	p.SetMuted("g1", true)

	if p.Muted("g2") {
		t.Error("muting one guild must not mute another")
	}
	if !p.Muted("g1") {
		t.Error("muted guild should stay muted")
	}
	if !p.SetMuted("g2", true) {
		t.Error("muting the other guild should still report a change")
	}
}

func TestStop_NoPlayback(t *testing.T) {
	t.Parallel()

	// Stop with nothing playing must not panic.
	NewPlayer(0.1).Stop("g1")
}
