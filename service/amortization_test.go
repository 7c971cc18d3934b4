package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmortizedPayment_ZeroRate(t *testing.T) {
	assert.Equal(t, 100.0, amortizedPayment(1200, 0, 12))
	assert.Equal(t, 0.0, amortizedPayment(1200, 0.01, 0))
}

func TestPrincipalForPayment_ZeroRate(t *testing.T) {
	assert.Equal(t, 1200.0, principalForPayment(100, 0, 12))
	assert.Equal(t, 0.0, principalForPayment(-5, 0.01, 12))
	assert.Equal(t, 0.0, principalForPayment(100, 0.01, 0))
}

func TestPrincipalForPayment_InvertsPayment(t *testing.T) {
	r := monthlyRate(6.5)
	for _, n := range []int{12, 36, 72} {
		principal := principalForPayment(450, r, n)
		assert.InDelta(t, 450, amortizedPayment(principal, r, n), 1e-6)
	}
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 10.13, roundTo2Decimals(10.125))
	assert.Equal(t, 3.14, roundTo2Decimals(3.14159))
}
