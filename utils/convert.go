// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// MinPower is the floor applied before taking a logarithm of an energy value.
const MinPower = 1e-10

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// PowerToDB converts a linear power ratio to decibels. Values below MinPower
// are floored so silence maps to a finite level.
func PowerToDB(power float64) float64 {
	return 10 * math.Log10(max(power, MinPower))
}

// DBToPower is the inverse of PowerToDB.
func DBToPower(db float64) float64 {
	return math.Pow(10, db/10)
}
