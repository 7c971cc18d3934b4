package service

import "math"

// roundTo2Decimals rounds a monetary value to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// monthlyRate converts an annual percentage rate to a monthly fraction.
func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// amortizedPayment is the level payment that repays principal over n
// months at monthly rate r.
func amortizedPayment(principal, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return principal / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return principal * (r * growth) / (growth - 1)
}

// principalForPayment inverts amortizedPayment: the largest principal a
// level payment can repay over n months at monthly rate r.
func principalForPayment(payment, r float64, n int) float64 {
	if n <= 0 || payment <= 0 {
		return 0
	}
	if r == 0 {
		return payment * float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return math.Max(0, payment*(growth-1)/(r*growth))
}
