package physics

import "math"

// CoolingCoefficient derives the effective Newton cooling coefficient
// k (1/s) from physical parameters rather than an arbitrary constant:
//
//	k = h·A/(m·c)
//
// where h is the convective heat-transfer coefficient (W/(m²·°C)), A the
// exposed surface area (m²), m the mass (kg) and c the specific heat
// (J/(kg·°C)). Non-positive mass or specific heat yields zero.
func CoolingCoefficient(hWPerM2C, areaM2, massKg, specificHeat float64) float64 {
	if !finite(hWPerM2C, areaM2, massKg, specificHeat) || massKg <= 0 || specificHeat <= 0 {
		return 0
	}
	if hWPerM2C < 0 || areaM2 < 0 {
		return 0
	}
	return hWPerM2C * areaM2 / (massKg * specificHeat)
}

// NewtonStep advances one discrete Newtonian cooling step:
//
//	T' = T − k·(T − T_ambient)·dt
//
// The result is clamped so a large k·dt never overshoots past ambient.
func NewtonStep(tempC, ambientC, k, dt float64) float64 {
	if !finite(tempC, ambientC, k, dt) || k <= 0 || dt <= 0 {
		return tempC
	}
	next := tempC - k*(tempC-ambientC)*dt
	if tempC > ambientC && next < ambientC {
		return ambientC
	}
	if tempC < ambientC && next > ambientC {
		return ambientC
	}
	return next
}

// NewtonAt evaluates the analytic Newton cooling solution at time t:
//
//	T(t) = T_ambient + (T₀ − T_ambient)·e^(−k·t)
func NewtonAt(initialC, ambientC, k, t float64) float64 {
	if !finite(initialC, ambientC, k, t) || k <= 0 || t < 0 {
		return initialC
	}
	return ambientC + (initialC-ambientC)*math.Exp(-k*t)
}

// TimeToCool inverts the analytic solution: the seconds needed for a body
// at initialC to reach targetC while decaying toward ambientC with
// coefficient k. Returns ok=false when the target lies on the wrong side
// of ambient or cannot be reached by the decay.
func TimeToCool(initialC, targetC, ambientC, k float64) (seconds float64, ok bool) {
	if !finite(initialC, targetC, ambientC, k) || k <= 0 {
		return 0, false
	}
	d0 := initialC - ambientC
	dt := targetC - ambientC
	if d0 == 0 {
		return 0, targetC == ambientC
	}
	// The decay only moves temperature toward ambient, so the target must
	// sit between the initial temperature and ambient.
	ratio := dt / d0
	if ratio <= 0 || ratio > 1 {
		return 0, false
	}
	return -math.Log(ratio) / k, true
}
