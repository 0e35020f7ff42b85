package ambient

import (
	"testing"
)

func TestFieldDeterministic(t *testing.T) {
	cfg := Config{Seed: 7, BaseTempC: 15, SwingC: 5, PeriodS: 3600}
	a := NewField(cfg)
	b := NewField(cfg)

	for s := 0.0; s < 7200; s += 60 {
		if a.At(s) != b.At(s) {
			t.Fatalf("same seed diverged at t=%.0f", s)
		}
	}
}

func TestFieldBoundedSwing(t *testing.T) {
	f := NewField(Config{Seed: 42, BaseTempC: 10, SwingC: 3, PeriodS: 600})
	for s := 0.0; s < 86400; s += 30 {
		c := f.At(s)
		if c.TempC < 7-1e-9 || c.TempC > 13+1e-9 {
			t.Fatalf("temperature %.2f outside swing band at t=%.0f", c.TempC, s)
		}
	}
}

func TestFieldZeroPeriodIsConstant(t *testing.T) {
	f := NewField(Config{Seed: 1, BaseTempC: 18, SwingC: 5})
	if got := f.At(0).TempC; got != 18 {
		t.Fatalf("TempC = %v, want 18", got)
	}
	if got := f.At(99999).TempC; got != 18 {
		t.Fatalf("TempC = %v, want 18", got)
	}
}

func TestFieldAltitudePressure(t *testing.T) {
	sea := NewField(Config{BaseTempC: 15})
	high := NewField(Config{BaseTempC: 15, AltitudeM: 2500})
	if high.At(0).PressurePa >= sea.At(0).PressurePa {
		t.Fatal("altitude must lower ambient pressure")
	}
}
