package heuristic

import (
	"math"
	"math/rand"
	"runtime"

	"github.com/tomcraven/goga"
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

const (
	defaultPopulationSize  = 200
	defaultNoImprovRounds  = 30
)

// GeneticRounding supplements the core catalogue with the teacher's
// population-based search (genetic.go), generalized from a single
// set-cover incidence bitstring to an arbitrary MIP's binary-column
// prefix. General-integer columns are held fixed at their rounded
// LP-relaxation value and continuous columns at their unrounded
// LP-relaxation value for every genome; only the NBin columns are
// evolved, so this heuristic is a no-op when a model has none.
type GeneticRounding struct {
	Timed
	population     int64
	noImprovRounds int64
}

func NewGeneticRounding() *GeneticRounding {
	return &GeneticRounding{population: defaultPopulationSize, noImprovRounds: defaultNoImprovRounds}
}

func (h *GeneticRounding) Name() string { return "GeneticRounding" }

func (h *GeneticRounding) SetParam(name string, v config.Value) error {
	switch name {
	case "PopulationSize":
		if v.Kind != config.Int64 {
			return &config.TypeError{Heuristic: h.Name(), Param: name, Got: v.Kind, Want: config.Int64}
		}
		h.population = v.Int64V
	case "NoImprovRounds":
		if v.Kind != config.Int64 {
			return &config.TypeError{Heuristic: h.Name(), Param: name, Got: v.Kind, Want: config.Int64}
		}
		h.noImprovRounds = v.Int64V
	}
	return nil
}

func fullSolutionFromBits(m *mip.MIP, rest *mat.VecDense, bits []int) *mat.VecDense {
	sol := mat.NewVecDense(m.NCols, nil)
	for c := 0; c < m.Stats.NBin; c++ {
		sol.SetVec(c, float64(bits[c]))
	}
	for c := m.Stats.NBin; c < m.NCols; c++ {
		sol.SetVec(c, rest.AtVec(c))
	}
	return sol
}

type geneticSimulator struct {
	m         *mip.MIP
	rest      *mat.VecDense
	costBound float64
}

func (s *geneticSimulator) OnBeginSimulation() {}
func (s *geneticSimulator) OnEndSimulation()    {}

func (s *geneticSimulator) Simulate(g goga.Genome) {
	sol := fullSolutionFromBits(s.m, s.rest, g.GetBits().GetAll())
	if activity.CheckFeasibility(s.m, sol, numerics.BoundTol, numerics.FeasTol, false) {
		cost := mat.Dot(s.m.Obj, sol)
		g.SetFitness(int(s.costBound+2-cost))
	} else {
		g.SetFitness(1)
	}
}

func (s *geneticSimulator) ExitFunc(g goga.Genome) bool { return true }

type geneticBitsetCreate struct{ nbin int }

func (bc *geneticBitsetCreate) Go() goga.Bitset {
	b := goga.Bitset{}
	b.Create(bc.nbin)
	for i := 0; i < bc.nbin; i++ {
		b.Set(i, rand.Intn(2))
	}
	return b
}

type geneticEliteConsumer struct {
	m    *mip.MIP
	rest *mat.VecDense
	best goga.Genome
}

func (ec *geneticEliteConsumer) OnElite(g goga.Genome) {
	sol := fullSolutionFromBits(ec.m, ec.rest, g.GetBits().GetAll())
	if (ec.best == nil || ec.best.GetFitness() < g.GetFitness()) && activity.CheckFeasibility(ec.m, sol, numerics.BoundTol, numerics.FeasTol, false) {
		ec.best = g
	}
}

func (h *GeneticRounding) Execute(ctx *Context) {
	h.Run(func() {
		m := ctx.MIP
		if m.Stats.NBin == 0 {
			return
		}

		rest := CloneSol(ctx.RootLP.PrimalSolution)
		for c := m.Stats.NBin; c < m.NInteger(); c++ {
			rest.SetVec(c, math.Round(rest.AtVec(c)))
		}

		costBound := 0.0
		for c := 0; c < m.NCols; c++ {
			b := math.Abs(m.UB.AtVec(c))
			if numerics.IsInf(b) {
				b = 1
			}
			costBound += math.Abs(m.Obj.AtVec(c)) * (b + 1)
		}

		bitFlipMutate := func(g1, g2 goga.Genome) (goga.Genome, goga.Genome) {
			bits := g1.GetBits().CreateCopy()
			i := rand.Intn(m.Stats.NBin)
			bits.Set(i, 1-bits.Get(i))
			return goga.NewGenome(bits), goga.NewGenome(*g2.GetBits())
		}

		eliteConsumer := &geneticEliteConsumer{m: m, rest: rest}

		genAlgo := goga.NewGeneticAlgorithm()
		genAlgo.Simulator = &geneticSimulator{m: m, rest: rest, costBound: costBound}
		genAlgo.BitsetCreate = &geneticBitsetCreate{nbin: m.Stats.NBin}
		genAlgo.EliteConsumer = eliteConsumer
		genAlgo.Mater = goga.NewMater([]goga.MaterFunctionProbability{
			{P: 0.9, F: goga.UniformCrossover, UseElite: true},
			{P: 0.9, F: goga.TwoPointCrossover},
			{P: 0.3, F: bitFlipMutate},
		})
		genAlgo.Selector = goga.NewSelector([]goga.SelectorFunctionProbability{
			{P: 1, F: goga.Roulette},
		})
		genAlgo.Init(int(h.population), runtime.NumCPU())

		noImprov := int64(0)
		lastFitness := math.MinInt
		genAlgo.SimulateUntil(func(g goga.Genome) bool {
			if ctx.Deadline.Expired() {
				return true
			}
			if g.GetFitness() == math.MinInt {
				return false
			}
			if g.GetFitness() == lastFitness {
				noImprov++
			} else {
				noImprov = 0
				lastFitness = g.GetFitness()
			}
			return noImprov >= h.noImprovRounds
		})

		if eliteConsumer.best == nil {
			return
		}
		sol := fullSolutionFromBits(m, rest, eliteConsumer.best.GetBits().GetAll())
		cost := mat.Dot(m.Obj, sol)
		ctx.Pool.Add(sol, cost)
	})
}
