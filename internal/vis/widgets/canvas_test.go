package widgets

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/vis/interact"
)

func TestTranslatePointer(t *testing.T) {
	pos := f32.Pt(10, 20)

	ev, pressed, ok := translatePointer(pointer.Event{Kind: pointer.Press, Position: pos, Buttons: pointer.ButtonSecondary}, interact.ButtonPrimary)
	if !ok || ev.Kind != interact.PointerDown || ev.Button != interact.ButtonSecondary {
		t.Fatalf("press = %+v, %v", ev, ok)
	}
	if ev.Pos != core.Pt(10, 20) {
		t.Errorf("press position = %v, want (10,20)", ev.Pos)
	}
	if pressed != interact.ButtonSecondary {
		t.Errorf("pressed = %v, want secondary", pressed)
	}

	ev, pressed, ok = translatePointer(pointer.Event{Kind: pointer.Drag, Position: pos}, pressed)
	if !ok || ev.Kind != interact.PointerMove {
		t.Errorf("drag = %+v, want PointerMove", ev)
	}

	ev, pressed, ok = translatePointer(pointer.Event{Kind: pointer.Release, Position: pos}, pressed)
	if !ok || ev.Kind != interact.PointerUp || ev.Button != interact.ButtonSecondary {
		t.Errorf("release = %+v, want PointerUp with the pressed button", ev)
	}
	if pressed != interact.ButtonPrimary {
		t.Errorf("pressed not reset after release")
	}
}

func TestTranslateScroll(t *testing.T) {
	ev, _, ok := translatePointer(pointer.Event{Kind: pointer.Scroll, Position: f32.Pt(5, 5), Scroll: f32.Pt(0, 3)}, interact.ButtonPrimary)
	if !ok || ev.Kind != interact.Wheel || ev.WheelY != 3 {
		t.Errorf("scroll = %+v, want Wheel 3", ev)
	}

	if _, _, ok := translatePointer(pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(4, 0)}, interact.ButtonPrimary); ok {
		t.Error("horizontal scroll should be ignored")
	}
	if _, _, ok := translatePointer(pointer.Event{Kind: pointer.Enter}, interact.ButtonPrimary); ok {
		t.Error("enter should be ignored")
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   key.Event
		kind interact.EventKind
		key  interact.Key
		ok   bool
	}{
		{key.Event{Name: key.NameSpace, State: key.Press}, interact.KeyDown, interact.KeyPan, true},
		{key.Event{Name: key.NameSpace, State: key.Release}, interact.KeyUp, interact.KeyPan, true},
		{key.Event{Name: key.NameEscape, State: key.Press}, interact.KeyDown, interact.KeyEscape, true},
		{key.Event{Name: "A", State: key.Press}, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := translateKey(tt.in)
		if ok != tt.ok {
			t.Errorf("translateKey(%v) ok = %v, want %v", tt.in.Name, ok, tt.ok)
			continue
		}
		if ok && (got.Kind != tt.kind || got.Key != tt.key) {
			t.Errorf("translateKey(%v) = %v/%v, want %v/%v", tt.in.Name, got.Kind, got.Key, tt.kind, tt.key)
		}
	}
}
