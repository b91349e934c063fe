package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDist(t *testing.T) {
	assert.Equal(t, 5.0, Dist(0, 0, 3, 4))
	assert.Equal(t, 5.0, Dist(3, 4, 0, 0), "symmetric")
	assert.Equal(t, 0.0, Dist(-2.5, 1, -2.5, 1), "coincident points")
}

func TestMultivProbPeak(t *testing.T) {
	peak := 1 / (2 * math.Pi * 0.3 * 0.3)
	assert.InDelta(t, peak, MultivProb(0.3, 0.3, 5, -2, 5, -2), 1e-12)
}

func TestMultivProbOffPeak(t *testing.T) {
	// one standard deviation away along x
	peak := 1 / (2 * math.Pi * 0.3 * 0.3)
	want := peak * math.Exp(-0.5)
	assert.InDelta(t, want, MultivProb(0.3, 0.3, 0.3, 0, 0, 0), 1e-12)
}
