package particlefilter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Axis selects which sense coordinate FormatSenseCoords renders.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// FormatAssociations renders a particle's association ids as a
// space-separated list with no trailing separator.
func FormatAssociations(p Particle) string {
	parts := make([]string, len(p.associations))
	for i, id := range p.associations {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// FormatSenseCoords renders the map-frame coordinates of a particle's
// observations along one axis, space-separated with no trailing
// separator.
func FormatSenseCoords(p Particle, axis Axis) string {
	v := p.senseX
	if axis == AxisY {
		v = p.senseY
	}
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// WriteParticle writes one particle's full state to w: a blank line,
// the particle id, then labeled position, heading, weight and
// association lines.
func WriteParticle(w io.Writer, p Particle) error {
	_, err := fmt.Fprintf(w, "\nParticle %d\nXpos: %v\nYpos: %v\nTheta: %v\nWeight: %v\nAssociations: %s\n",
		p.ID, p.X, p.Y, p.Theta, p.Weight, FormatAssociations(p))
	return err
}

// WriteParticles dumps the whole particle set to w followed by a
// separator line. Reporting only; filter state is untouched.
func (pf *ParticleFilter) WriteParticles(w io.Writer) error {
	for _, p := range pf.particles {
		if err := WriteParticle(w, p); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, strings.Repeat("=", 55))
	return err
}
