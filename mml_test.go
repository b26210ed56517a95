package mml

import (
	"strings"
	"testing"

	"github.com/mml-format/go-mml/dom"
)

func TestLoadDump(t *testing.T) {
	input := strings.Join([]string{
		`<!-- @c id="root" type="root" -->`,
		`<!-- @c id="c1" kind="section" -->`,
		`<!-- @n id="n1" -->`,
		`hello`,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
		`<!-- /@c -->`,
	}, "\n")
	d := Load(input)
	if got := Dump(d); got != input {
		t.Errorf("Dump:\n%s\nwant:\n%s", got, input)
	}
}

func TestLoadNeverFails(t *testing.T) {
	for _, input := range []string{
		"",
		"just text",
		`<!-- /@c -->`,
		`<!-- @c id="broken" -->`,
		`<!-- @n id="n1" -->` + "\nunclosed",
	} {
		d := Load(input)
		if d == nil || !d.Exists(dom.RootID) {
			t.Errorf("Load(%q) gave no usable document", input)
		}
	}
}

func TestHealFixedPoint(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unclosed container", input: `<!-- @c id="c1" -->` + "\ntext"},
		{name: "loose lines", input: "a\nb\nc"},
		{name: "stray closers", input: `<!-- /@n -->` + "\nx\n" + `<!-- /@c -->`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healed := Heal(tt.input)
			if again := Heal(healed); again != healed {
				t.Errorf("not a fixed point:\nonce:\n%s\ntwice:\n%s", healed, again)
			}
		})
	}
}

func TestHealWrapsLooseText(t *testing.T) {
	healed := Heal("orphan line")
	if !strings.Contains(healed, `<!-- @n id="n_`) {
		t.Errorf("loose text not wrapped: %s", healed)
	}
	if !strings.Contains(healed, "orphan line") {
		t.Errorf("content lost: %s", healed)
	}
}
