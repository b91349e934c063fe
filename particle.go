package particlefilter

// NoAssociation marks an observation that has no matched landmark,
// either because association has not run yet or because the candidate
// set was empty.
const NoAssociation = -1

// Particle is one weighted pose hypothesis.
type Particle struct {
	ID     int
	X      float64
	Y      float64
	Theta  float64
	Weight float64

	associations []int
	senseX       []float64
	senseY       []float64
}

// LandmarkObs is a single landmark observation. Whether X and Y are in
// the vehicle frame or the map frame depends on the pipeline stage; the
// caller tracks the frame and must never mix the two.
type LandmarkObs struct {
	ID int
	X  float64
	Y  float64
}

// SetAssociations overwrites the particle's diagnostic data: the matched
// landmark id and the map-frame coordinates of each observation from the
// latest weight update. The three slices are index-aligned.
func (p *Particle) SetAssociations(associations []int, senseX, senseY []float64) {
	p.associations = associations
	p.senseX = senseX
	p.senseY = senseY
}

// Associations returns the landmark id matched to each observation in
// the particle's last weight update.
func (p *Particle) Associations() []int { return p.associations }

// SenseX returns the map-frame x coordinate of each observation,
// index-aligned with Associations.
func (p *Particle) SenseX() []float64 { return p.senseX }

// SenseY returns the map-frame y coordinate of each observation,
// index-aligned with Associations.
func (p *Particle) SenseY() []float64 { return p.senseY }

// clone copies the particle including its diagnostic slices, so the copy
// shares no storage with the original.
func (p *Particle) clone() Particle {
	c := *p
	c.associations = append([]int(nil), p.associations...)
	c.senseX = append([]float64(nil), p.senseX...)
	c.senseY = append([]float64(nil), p.senseY...)
	return c
}
