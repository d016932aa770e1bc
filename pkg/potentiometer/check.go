// Numeric validation helpers
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package potentiometer

import (
	"math"

	"digipot-go/pkg/errors"
)

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Validationf("%s: expected a finite number, got %v", name, v)
	}
	return nil
}

func checkNotNegative(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return errors.Validationf("%s: expected a non-negative number, got %v", name, v)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return errors.Validationf("%s: expected a positive number, got %v", name, v)
	}
	return nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
