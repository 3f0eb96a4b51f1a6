package peripheral

import "testing"

func TestKeyboardQueueAndAck(t *testing.T) {
	k := NewKeyboard()
	k.Push(0x41)
	k.Push(0x42)

	if !k.HandlesPort(KeyboardPortNext) || !k.HandlesPort(KeyboardPortAck) {
		t.Fatal("keyboard should claim both its ports")
	}
	if v := k.Read(KeyboardPortNext); v != 0x41 {
		t.Fatalf("next keycode = 0x%X, want 0x41", v)
	}
	k.Write(KeyboardPortAck, 0)
	if v := k.Read(KeyboardPortNext); v != 0x42 {
		t.Fatalf("next keycode after ack = 0x%X, want 0x42", v)
	}
	k.Write(KeyboardPortAck, 0)
	if v := k.Read(KeyboardPortNext); v != 0 {
		t.Fatalf("empty queue should read 0, got 0x%X", v)
	}
}

func TestGPUClaimsRangeAndEchoes(t *testing.T) {
	g := NewGPU()
	if !g.HandlesPort(0x2000) || !g.HandlesPort(0x20FF) || g.HandlesPort(0x1FFF) || g.HandlesPort(0x2100) {
		t.Fatal("GPU port-claim range is wrong")
	}
	g.Write(0x2050, 7)
	if v := g.Read(0x2050); v != 7 {
		t.Fatalf("GPU read-back = %d, want 7", v)
	}
}
