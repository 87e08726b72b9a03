package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Action
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Action{ActionPrevChannel, ActionNextChannel, ActionIncrease, ActionDecrease}},
		{"shift arrows", "\x1b[1;2C\x1b[1;2D", []Action{ActionIncreaseMore, ActionDecreaseMore}},
		{"vi keys", "hjklHL", []Action{ActionDecrease, ActionNextChannel, ActionPrevChannel, ActionIncrease, ActionDecreaseMore, ActionIncreaseMore}},
		{"channel keys", "123", []Action{ActionSelectRed, ActionSelectGreen, ActionSelectBlue}},
		{"confirm", " \r", []Action{ActionConfirm, ActionConfirm}},
		{"quit", "\x03q", []Action{ActionQuit, ActionQuit}},
		{"unknown", "z\x1bx", []Action{ActionOther, ActionOther, ActionOther}},
		{"unknown csi", "\x1b[5~", []Action{ActionOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := Decode([]byte(tt.in))
			if len(rest) != 0 {
				t.Errorf("unexpected rest %q", rest)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("action %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecode_SplitEscape(t *testing.T) {
	got, rest := Decode([]byte("l\x1b["))
	if len(got) != 1 || got[0] != ActionIncrease {
		t.Fatalf("actions = %v", got)
	}
	if string(rest) != "\x1b[" {
		t.Fatalf("rest = %q", rest)
	}

	got, rest = Decode(append(rest, 'C'))
	if len(got) != 1 || got[0] != ActionIncrease || len(rest) != 0 {
		t.Errorf("completed sequence = %v, rest %q", got, rest)
	}
}

func TestReadInput_ReportsClose(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("1l")))

	var actions []Action
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		actions = append(actions, in.Actions...)
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if len(actions) != 2 || actions[0] != ActionSelectRed || actions[1] != ActionIncrease {
		t.Errorf("actions = %v", actions)
	}
	if !ReadInput(s).Closed {
		t.Error("stream should report closed after EOF")
	}
}

func TestInput_Has(t *testing.T) {
	in := Input{Actions: []Action{ActionIncrease, ActionConfirm}}
	if !in.Has(ActionConfirm) || in.Has(ActionQuit) {
		t.Error("Has misreports actions")
	}
	if !in.Active() || (Input{}).Active() {
		t.Error("Active misreports activity")
	}
}

func TestDecode_DropsUnterminatedCSI(t *testing.T) {
	got, rest := Decode([]byte("\x1b[1;2"))
	if len(got) != 0 || string(rest) != "\x1b[1;2" {
		t.Fatalf("short pending sequence: actions %v rest %q", got, rest)
	}

	long := "l\x1b[" + strings.Repeat("1", maxPendingCSI)
	got, rest = Decode([]byte(long))
	if len(rest) != 0 {
		t.Errorf("overlong sequence kept pending: %q", rest)
	}
	if len(got) != 2 || got[0] != ActionIncrease || got[1] != ActionOther {
		t.Errorf("actions = %v, want [increase other]", got)
	}
}
