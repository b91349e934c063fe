// Package particlefilter localizes a vehicle on a known landmark map
// with a particle filter: a set of weighted pose hypotheses propagated
// through a noisy motion model, re-weighted by observation likelihood
// and resampled every cycle.
package particlefilter

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/SorenRusbjerg/Kidnapped-Vehicle-Project/geo"
	"github.com/SorenRusbjerg/Kidnapped-Vehicle-Project/mapdata"
)

const (
	// yawRateEps separates curved from straight-line motion in Prediction.
	yawRateEps = 1e-4
	// weightSumEps guards the divide in weight normalization.
	weightSumEps = 1e-5
)

// PoseStd holds per-dimension standard deviations for a pose.
type PoseStd struct {
	X     float64
	Y     float64
	Theta float64
}

// LandmarkStd holds the measurement standard deviations for landmark
// observations.
type LandmarkStd struct {
	X float64
	Y float64
}

// ParticleFilter holds the particle set and the filter's one random
// generator. It is not safe for concurrent use; callers serialize
// access.
type ParticleFilter struct {
	numParticles int
	initialized  bool
	particles    []Particle
	rnd          *rand.Rand
}

// NewParticleFilter creates a filter that will hold n particles and owns
// a generator seeded with seed. The particle count is fixed for the
// filter's lifetime; the generator advances across every Init,
// Prediction and Resample call.
func NewParticleFilter(n int, seed uint64) *ParticleFilter {
	return &ParticleFilter{
		numParticles: n,
		rnd:          rand.New(rand.NewSource(seed)),
	}
}

// Init spreads the particles around an initial pose estimate, drawing
// each pose dimension from a Gaussian with the matching standard
// deviation. Every weight starts at 1.0 and ids run 0..n-1 in creation
// order. Standard deviations must be non-negative; negative values are
// a contract violation, not a checked error.
func (pf *ParticleFilter) Init(x, y, theta float64, std PoseStd) {
	distX := distuv.Normal{Mu: x, Sigma: std.X, Src: pf.rnd}
	distY := distuv.Normal{Mu: y, Sigma: std.Y, Src: pf.rnd}
	distTheta := distuv.Normal{Mu: theta, Sigma: std.Theta, Src: pf.rnd}

	pf.particles = make([]Particle, pf.numParticles)
	for i := range pf.particles {
		pf.particles[i] = Particle{
			ID:     i,
			X:      distX.Rand(),
			Y:      distY.Rand(),
			Theta:  distTheta.Rand(),
			Weight: 1.0,
		}
	}
	pf.initialized = true
}

// Initialized reports whether Init has run.
func (pf *ParticleFilter) Initialized() bool { return pf.initialized }

// NumParticles returns the fixed particle count.
func (pf *ParticleFilter) NumParticles() int { return pf.numParticles }

// Particles returns the current particle set. The slice is the filter's
// own storage and is replaced wholesale by Resample.
func (pf *ParticleFilter) Particles() []Particle { return pf.particles }

// Prediction advances every particle by the constant-turn-rate-and-
// velocity model over dt seconds, then perturbs the result with
// zero-mean Gaussian process noise. Weights are untouched.
func (pf *ParticleFilter) Prediction(dt float64, std PoseStd, velocity, yawRate float64) {
	noiseX := distuv.Normal{Mu: 0, Sigma: std.X, Src: pf.rnd}
	noiseY := distuv.Normal{Mu: 0, Sigma: std.Y, Src: pf.rnd}
	noiseTheta := distuv.Normal{Mu: 0, Sigma: std.Theta, Src: pf.rnd}

	for i := range pf.particles {
		p := &pf.particles[i]
		if math.Abs(yawRate) > yawRateEps {
			p.X += velocity / yawRate * (math.Sin(p.Theta+yawRate*dt) - math.Sin(p.Theta))
			p.Y += velocity / yawRate * (-math.Cos(p.Theta+yawRate*dt) + math.Cos(p.Theta))
		} else {
			// straight-line limit, keeps velocity/yawRate finite
			p.X += velocity * math.Cos(p.Theta) * dt
			p.Y += velocity * math.Sin(p.Theta) * dt
		}
		p.Theta += yawRate * dt

		p.X += noiseX.Rand()
		p.Y += noiseY.Rand()
		p.Theta += noiseTheta.Rand()
	}
}

// DataAssociation assigns each observation the id of the nearest
// candidate landmark. Ties keep the first candidate encountered, so the
// result is deterministic whenever the candidate order is. Observations
// keep NoAssociation when predicted is empty. Both slices are in the
// map frame.
func (pf *ParticleFilter) DataAssociation(predicted []LandmarkObs, observations []LandmarkObs) {
	for i := range observations {
		obs := &observations[i]
		obs.ID = NoAssociation
		minDist := math.Inf(1)
		for _, pred := range predicted {
			if d := geo.Dist(pred.X, pred.Y, obs.X, obs.Y); d < minDist {
				minDist = d
				obs.ID = pred.ID
			}
		}
	}
}

// UpdateWeights recomputes every particle's importance weight from the
// vehicle-frame observations: transform them into the map frame with
// the particle's pose, match them against the landmarks within
// sensorRange of the particle, store the matches on the particle, and
// take the product of the bivariate Gaussian densities of each
// observation around its matched landmark. Weights are then normalized
// across the set unless their sum is below weightSumEps, in which case
// they are left as computed.
//
// A particle with no landmark inside sensorRange gets weight 0 and
// keeps NoAssociation for every observation: a pose that puts every
// landmark out of range cannot explain a sensor that is still
// reporting returns.
func (pf *ParticleFilter) UpdateWeights(sensorRange float64, std LandmarkStd, observations []LandmarkObs, m *mapdata.Map) {
	for i := range pf.particles {
		p := &pf.particles[i]
		sinT, cosT := math.Sincos(p.Theta)

		// observations into the map frame using the particle's pose
		mapped := make([]LandmarkObs, len(observations))
		for j, obs := range observations {
			mapped[j] = LandmarkObs{
				ID: obs.ID,
				X:  p.X + cosT*obs.X - sinT*obs.Y,
				Y:  p.Y + sinT*obs.X + cosT*obs.Y,
			}
		}

		// candidate landmarks within sensor range, in map order
		var predicted []LandmarkObs
		for _, lm := range m.Landmarks {
			if geo.Dist(lm.X, lm.Y, p.X, p.Y) < sensorRange {
				predicted = append(predicted, LandmarkObs{ID: lm.ID, X: lm.X, Y: lm.Y})
			}
		}

		pf.DataAssociation(predicted, mapped)

		ids := make([]int, len(mapped))
		senseX := make([]float64, len(mapped))
		senseY := make([]float64, len(mapped))
		for j, obs := range mapped {
			ids[j] = obs.ID
			senseX[j] = obs.X
			senseY[j] = obs.Y
		}
		p.SetAssociations(ids, senseX, senseY)

		p.Weight = particleWeight(mapped, predicted, std)
	}

	pf.normalizeWeights()
}

// particleWeight multiplies the bivariate Gaussian density of each
// map-frame observation around its matched landmark. An unmatched
// observation zeroes the weight.
func particleWeight(observations, predicted []LandmarkObs, std LandmarkStd) float64 {
	weight := 1.0
	for _, obs := range observations {
		match, ok := findLandmark(predicted, obs.ID)
		if !ok {
			return 0
		}
		weight *= geo.MultivProb(std.X, std.Y, obs.X, obs.Y, match.X, match.Y)
	}
	return weight
}

func findLandmark(predicted []LandmarkObs, id int) (LandmarkObs, bool) {
	for _, lm := range predicted {
		if lm.ID == id {
			return lm, true
		}
	}
	return LandmarkObs{}, false
}

// normalizeWeights scales the weights to sum to 1. A sum below
// weightSumEps means every hypothesis is about equally unlikely; the
// weights are then left unchanged.
func (pf *ParticleFilter) normalizeWeights() {
	sum := floats.Sum(pf.weights())
	if sum <= weightSumEps {
		return
	}
	for i := range pf.particles {
		pf.particles[i].Weight /= sum
	}
}

// Resample replaces the particle set with n independent draws with
// replacement, each draw proportional to current weight (multinomial
// resampling). Particles are copied by value; ids travel with the
// copies, so identity is not preserved across a resampling step.
// Weights are not reset, the next UpdateWeights overwrites them. A set
// whose weights sum to zero is left unchanged.
func (pf *ParticleFilter) Resample() {
	if len(pf.particles) == 0 {
		return
	}
	cum := make([]float64, len(pf.particles))
	floats.CumSum(cum, pf.weights())
	total := cum[len(cum)-1]
	if total <= 0 {
		return
	}

	next := make([]Particle, len(pf.particles))
	for i := range next {
		u := pf.rnd.Float64() * total
		next[i] = pf.particles[sort.SearchFloat64s(cum, u)].clone()
	}
	pf.particles = next
}

// BestParticle returns a copy of the highest-weight particle, the
// usual single-pose estimate after a weight update. ok is false before
// Init.
func (pf *ParticleFilter) BestParticle() (p Particle, ok bool) {
	if len(pf.particles) == 0 {
		return Particle{}, false
	}
	best := 0
	for i := range pf.particles {
		if pf.particles[i].Weight > pf.particles[best].Weight {
			best = i
		}
	}
	return pf.particles[best].clone(), true
}

func (pf *ParticleFilter) weights() []float64 {
	w := make([]float64, len(pf.particles))
	for i := range pf.particles {
		w[i] = pf.particles[i].Weight
	}
	return w
}
