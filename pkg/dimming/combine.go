package dimming

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

// Combination is the dimming measurement for one k-subset of the candidate
// lines: the member indices and wavelengths, the combined depth in percent,
// and its propagated uncertainty.
type Combination struct {
	Indices       []int
	Centers       []float64
	Depth         float64
	Sigma         float64
	Min           float64
	Baseline      float64
	BaselineSigma float64
	Measurable    bool
}

// Engine enumerates every k-subset of the candidate lines, sums the member
// light curves, and measures the combined dimming depth. Subsets are visited
// in the lexicographic order produced by gonum's combination generator, so
// results are deterministic. Evaluation cost is C(n,k)·exposures; the context
// bounds runaway searches for large n and k.
type Engine struct {
	Lines          *LineSeries
	K              int
	PreEventWindow int
	Workers        int // parallel subset evaluators; ≤1 evaluates sequentially
}

// Count returns the number of subsets the engine will evaluate.
func (e *Engine) Count() int {
	return combin.Binomial(len(e.Lines.Centers), e.K)
}

func (e *Engine) validate() error {
	n := len(e.Lines.Centers)
	if e.K < 1 || e.K > n {
		return fmt.Errorf("dimming: cannot combine %d of %d lines", e.K, n)
	}
	return nil
}

// Enumerate visits each combination in lexicographic order, stopping early if
// the visitor returns an error or the context is cancelled. Results are
// produced one at a time; nothing is accumulated, so peak memory stays flat
// for large n and k.
func (e *Engine) Enumerate(ctx context.Context, visit func(Combination) error) error {
	if err := e.validate(); err != nil {
		return err
	}
	gen := combin.NewCombinationGenerator(len(e.Lines.Centers), e.K)
	idx := make([]int, e.K)
	for gen.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		gen.Combination(idx)
		if err := visit(e.evaluate(idx)); err != nil {
			return err
		}
	}
	return nil
}

// Run evaluates all combinations and gathers them in generation order. With
// Workers > 1 the subsets are evaluated concurrently; each subset is
// independent, so the only synchronization is the final join.
func (e *Engine) Run(ctx context.Context) ([]Combination, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	total := e.Count()
	results := make([]Combination, total)

	if e.Workers <= 1 {
		i := 0
		err := e.Enumerate(ctx, func(c Combination) error {
			results[i] = c
			i++
			return nil
		})
		if err != nil {
			return nil, err
		}
		return results, nil
	}

	type job struct {
		seq int
		idx []int
	}
	jobs := make(chan job)

	go func() {
		defer close(jobs)
		gen := combin.NewCombinationGenerator(len(e.Lines.Centers), e.K)
		seq := 0
		for gen.Next() {
			idx := gen.Combination(nil)
			select {
			case jobs <- job{seq: seq, idx: idx}:
			case <-ctx.Done():
				return
			}
			seq++
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < e.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.seq] = e.evaluate(j.idx)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluate sums the member rows elementwise, then measures baseline and depth
// on the synthetic combined line.
func (e *Engine) evaluate(idx []int) Combination {
	nExp := len(e.Lines.JD)
	sum := make([]float64, nExp)
	centers := make([]float64, len(idx))
	for i, li := range idx {
		centers[i] = e.Lines.Centers[li]
		for j, v := range e.Lines.Counts[li] {
			sum[j] += v
		}
	}

	rows := [][]float64{sum}
	base := EstimateBaseline(rows)
	depth := ComputeDepth(rows, base, e.PreEventWindow)

	c := Combination{
		Indices:       append([]int(nil), idx...),
		Centers:       centers,
		Min:           depth.Min[0],
		Baseline:      base.Value[0],
		BaselineSigma: base.Sigma[0],
		Measurable:    depth.Measurable[0],
	}
	if c.Measurable {
		c.Depth = depth.Percent[0]
		c.Sigma = PropagateDepthSigma(depth.Sigma[0], base.Value[0], base.Sigma[0], depth.Ratio[0])
		if math.IsInf(c.Sigma, 0) || math.IsNaN(c.Sigma) {
			c.Depth, c.Sigma = 0, 0
			c.Measurable = false
		}
	}
	return c
}
