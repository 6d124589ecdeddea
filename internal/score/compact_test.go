package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{[]game.Input{}, []InputsCompact{}},
	{
		[]game.Input{{Pitch: "C4", At: 100}, {Pitch: "E4", At: 200}},
		[]InputsCompact{
			{Pitch: "C4", Times: []time.Duration{100}},
			{Pitch: "E4", Times: []time.Duration{200}},
		},
	},
	{
		[]game.Input{{Pitch: "D4", At: 1}, {Pitch: "C4", At: 2}, {Pitch: "D4", At: 3}},
		[]InputsCompact{
			{Pitch: "D4", Times: []time.Duration{1, 3}},
			{Pitch: "C4", Times: []time.Duration{2}},
		},
	},
}

func TestCompactInputs(t *testing.T) {
	equal := func(p, q []InputsCompact) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			pi, qi := p[i], q[i]
			if pi.Pitch != qi.Pitch {
				return false
			}
			if len(pi.Times) != len(qi.Times) {
				return false
			}
			for j := 0; j < len(pi.Times); j++ {
				if pi.Times[j] != qi.Times[j] {
					return false
				}
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !equal(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	equal := func(p, q []game.Input) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] != q[i] {
				return false
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if !equal(out, test.inputs) {
			t.Log("in      ", test.compact)
			t.Log("out     ", out)
			t.Log("expected", test.inputs)
			t.Fail()
		}
	}
}
