package money_test

import (
	"testing"

	"github.com/antonelli94/Pinguino/pkg/money"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.0}, // 1.005 is stored as 1.00499...; rounds down
		{3.14159, 3.14},
		{10.5, 10.5},
		{-0.125, -0.13},
	}
	for _, c := range cases {
		if got := money.Round(c.in); got != c.want {
			t.Fatalf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRepeatedAdditionDoesNotDrift(t *testing.T) {
	total := 0.0
	for i := 0; i < 1000; i++ {
		total = money.Add(total, 0.1)
	}
	if total != 100 {
		t.Fatalf("expected 100, got %v", total)
	}
}
