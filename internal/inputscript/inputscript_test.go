package inputscript

import (
	"strings"
	"testing"

	"github.com/genesis-core/megacore/internal/controller"
)

func TestParseAndApplyInOrder(t *testing.T) {
	csv := "0,1,Up|Start\n10,1,\n5,2,A|B\n"
	script, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	p1, p2 := controller.NewPad(), controller.NewPad()
	ports := map[int]*controller.Pad{1: p1, 2: p2}

	script.Apply(0, ports)
	if p1.Buttons != controller.Up|controller.Start {
		t.Fatalf("frame 0: p1 buttons = %b, want Up|Start", p1.Buttons)
	}
	if p2.Buttons != 0 {
		t.Fatalf("frame 0: p2 should not have latched yet, got %b", p2.Buttons)
	}

	script.Apply(5, ports)
	if p2.Buttons != controller.A|controller.B {
		t.Fatalf("frame 5: p2 buttons = %b, want A|B", p2.Buttons)
	}

	script.Apply(10, ports)
	if p1.Buttons != 0 {
		t.Fatalf("frame 10: expected p1 released to 0, got %b", p1.Buttons)
	}
	if !script.Done() {
		t.Fatalf("expected script to be fully drained after frame 10")
	}
}

func TestParseRejectsUnknownButton(t *testing.T) {
	_, err := Parse(strings.NewReader("0,1,Banana\n"))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized button name")
	}
}

func TestParseSortsOutOfOrderRows(t *testing.T) {
	csv := "10,1,A\n0,1,Up\n"
	script, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pad := controller.NewPad()
	ports := map[int]*controller.Pad{1: pad}

	script.Apply(0, ports)
	if pad.Buttons != controller.Up {
		t.Fatalf("expected frame-0 event to apply first regardless of file order, got %b", pad.Buttons)
	}
}
