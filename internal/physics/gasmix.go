package physics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// MixFraction returns the fraction of a volume exchanged during one tick
// by an airflow of flowM3PerS through volumeM3:
//
//	min(1, Q·dt/V)
func MixFraction(flowM3PerS, dt, volumeM3 float64) float64 {
	if !finite(flowM3PerS, dt, volumeM3) || flowM3PerS <= 0 || dt <= 0 || volumeM3 <= 0 {
		return 0
	}
	return min(1, flowM3PerS*dt/volumeM3)
}

// MixToward moves each species fraction in current toward its target by
// the given mix fraction, scaled by a per-species filtration efficiency:
//
//	C' = C + (C_target − C)·mix·eff
//
// Species absent from efficiency use defaultEff. The returned changes map
// holds the applied per-species delta. Keys present in either map are
// considered; absent fractions count as zero.
func MixToward(current, target map[string]float64, mix float64, efficiency map[string]float64, defaultEff float64) (mixed, changes map[string]float64) {
	mixed = make(map[string]float64, len(current))
	changes = make(map[string]float64)
	if mix < 0 {
		mix = 0
	}
	if mix > 1 {
		mix = 1
	}

	for _, sp := range speciesUnion(current, target) {
		eff := defaultEff
		if e, ok := efficiency[sp]; ok {
			eff = e
		}
		c := current[sp]
		delta := (target[sp] - c) * mix * eff
		if v := c + delta; v > 0 {
			mixed[sp] = v
		}
		if delta != 0 {
			changes[sp] = delta
		}
	}
	return mixed, changes
}

// Renormalize scales composition fractions so they sum to exactly 1,
// preserving their ratios. An empty or all-zero composition is returned
// unchanged.
func Renormalize(comp map[string]float64) map[string]float64 {
	keys := speciesUnion(comp, nil)
	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = comp[k]
	}

	total := floats.Sum(vals)
	if total <= 0 || !finite(total) {
		return comp
	}
	floats.Scale(1/total, vals)

	out := make(map[string]float64, len(keys))
	for i, k := range keys {
		if vals[i] > 0 {
			out[k] = vals[i]
		}
	}
	return out
}

// CompositionSum returns the sum of all species fractions.
func CompositionSum(comp map[string]float64) float64 {
	vals := make([]float64, 0, len(comp))
	for _, v := range comp {
		vals = append(vals, v)
	}
	return floats.Sum(vals)
}

// speciesUnion returns the sorted union of species keys, giving map
// iteration a deterministic order.
func speciesUnion(a, b map[string]float64) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		set[k] = struct{}{}
	}
	for k := range b {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
