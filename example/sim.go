// Command example runs a closed-loop localization simulation: a ground
// truth vehicle drives constant controls across a landmark map while
// the particle filter tracks it from noisy range observations. Pass a
// gcfg config file path to override the defaults.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/gcfg.v1"

	pf "github.com/SorenRusbjerg/Kidnapped-Vehicle-Project"
	"github.com/SorenRusbjerg/Kidnapped-Vehicle-Project/geo"
	"github.com/SorenRusbjerg/Kidnapped-Vehicle-Project/mapdata"
)

type simConfig struct {
	Sim struct {
		Seed        uint64
		Particles   int
		Steps       int
		Dt          float64
		Velocity    float64
		YawRate     float64
		SensorRange float64
		MapFile     string
		PlotFile    string
	}
}

func defaultConfig() simConfig {
	var cfg simConfig
	cfg.Sim.Seed = 42
	cfg.Sim.Particles = 100
	cfg.Sim.Steps = 50
	cfg.Sim.Dt = 0.1
	cfg.Sim.Velocity = 5
	cfg.Sim.YawRate = 0.3
	cfg.Sim.SensorRange = 50
	cfg.Sim.PlotFile = "particles.png"
	return cfg
}

type pose struct {
	X, Y, Theta float64
}

// moveCTRV advances the ground truth by the same motion model the
// filter predicts with, minus the noise.
func moveCTRV(p pose, dt, v, yawRate float64) pose {
	if math.Abs(yawRate) > 1e-4 {
		p.X += v / yawRate * (math.Sin(p.Theta+yawRate*dt) - math.Sin(p.Theta))
		p.Y += v / yawRate * (-math.Cos(p.Theta+yawRate*dt) + math.Cos(p.Theta))
	} else {
		p.X += v * math.Cos(p.Theta) * dt
		p.Y += v * math.Sin(p.Theta) * dt
	}
	p.Theta += yawRate * dt
	return p
}

// observe returns noisy vehicle-frame observations of every landmark
// within sensor range of the truth pose.
func observe(truth pose, m *mapdata.Map, sensorRange float64, noise distuv.Normal) []pf.LandmarkObs {
	var obs []pf.LandmarkObs
	sinT, cosT := math.Sincos(truth.Theta)
	for _, lm := range m.Landmarks {
		if geo.Dist(lm.X, lm.Y, truth.X, truth.Y) >= sensorRange {
			continue
		}
		dx, dy := lm.X-truth.X, lm.Y-truth.Y
		obs = append(obs, pf.LandmarkObs{
			X: cosT*dx + sinT*dy + noise.Rand(),
			Y: -sinT*dx + cosT*dy + noise.Rand(),
		})
	}
	return obs
}

// gridMap builds a fallback landmark grid when no map file is given.
func gridMap() *mapdata.Map {
	m := &mapdata.Map{}
	id := 1
	for x := -40.0; x <= 40; x += 20 {
		for y := -40.0; y <= 40; y += 20 {
			m.Landmarks = append(m.Landmarks, mapdata.Landmark{ID: id, X: x, Y: y})
			id++
		}
	}
	return m
}

func main() {
	cfg := defaultConfig()
	if len(os.Args) > 1 {
		if err := gcfg.ReadFileInto(&cfg, os.Args[1]); err != nil {
			log.Fatal(err)
		}
	}

	m := gridMap()
	if cfg.Sim.MapFile != "" {
		var err error
		m, err = mapdata.Load(cfg.Sim.MapFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	posStd := pf.PoseStd{X: 0.3, Y: 0.3, Theta: 0.01}
	measStd := pf.LandmarkStd{X: 0.3, Y: 0.3}

	// the simulation keeps its own generator separate from the filter's
	simRnd := rand.New(rand.NewSource(cfg.Sim.Seed + 1))
	gpsNoise := distuv.Normal{Mu: 0, Sigma: 0.5, Src: simRnd}
	measNoise := distuv.Normal{Mu: 0, Sigma: measStd.X, Src: simRnd}

	truth := pose{}
	filter := pf.NewParticleFilter(cfg.Sim.Particles, cfg.Sim.Seed)
	filter.Init(truth.X+gpsNoise.Rand(), truth.Y+gpsNoise.Rand(), truth.Theta, posStd)

	for step := 0; step < cfg.Sim.Steps; step++ {
		truth = moveCTRV(truth, cfg.Sim.Dt, cfg.Sim.Velocity, cfg.Sim.YawRate)
		filter.Prediction(cfg.Sim.Dt, posStd, cfg.Sim.Velocity, cfg.Sim.YawRate)

		obs := observe(truth, m, cfg.Sim.SensorRange, measNoise)
		filter.UpdateWeights(cfg.Sim.SensorRange, measStd, obs, m)

		best, ok := filter.BestParticle()
		if !ok {
			log.Fatal("filter has no particles")
		}
		fmt.Printf("step %2d truth (%.2f, %.2f, %.2f) best (%.2f, %.2f, %.2f) err %.3f\n",
			step, truth.X, truth.Y, truth.Theta, best.X, best.Y, best.Theta,
			geo.Dist(best.X, best.Y, truth.X, truth.Y))

		filter.Resample()
	}

	if cfg.Sim.PlotFile != "" {
		if err := savePlot(filter.Particles(), truth, m, cfg.Sim.PlotFile); err != nil {
			log.Fatal(err)
		}
		fmt.Println("saved", cfg.Sim.PlotFile)
	}
}
