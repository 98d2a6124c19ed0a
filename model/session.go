package model

import "github.com/pkg/errors"
import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

import "github.com/neurlang/fashion/datasets"

// Session trains a network on mini-batches of a fixed size with the adam solver
type Session struct {
	net    *Network
	gr     *graph
	vm     G.VM
	solver G.Solver
	batch  int
	xs, ys []float32
	x, y   *tensor.Dense
}

// NewSession compiles the training graph. Adam runs with the library defaults.
func (n *Network) NewSession() (*Session, error) {
	var batch = n.Arch.BatchSize
	gr, err := n.build(batch, true)
	if err != nil {
		return nil, err
	}
	s := &Session{
		net:    n,
		gr:     gr,
		vm:     G.NewTapeMachine(gr.g, G.BindDualValues(gr.learnables...)),
		solver: G.NewAdamSolver(),
		batch:  batch,
		xs:     make([]float32, batch*n.Arch.InputSize()),
		ys:     make([]float32, batch*n.Arch.Classes()),
	}
	s.x = tensor.New(tensor.WithShape(batch, n.Arch.InputSize()), tensor.WithBacking(s.xs))
	s.y = tensor.New(tensor.WithShape(batch, n.Arch.Classes()), tensor.WithBacking(s.ys))
	return s, nil
}

// Batch is the number of examples consumed by Step
func (s *Session) Batch() int {
	return s.batch
}

// Step runs one forward and backward pass on exactly Batch() examples,
// updates the parameters, and returns the mean loss and the predicted
// probabilities of the batch before the update.
func (s *Session) Step(x []float32, labels []datasets.Label) (loss float32, prob []float32, err error) {
	if len(labels) != s.batch || len(x) != len(s.xs) {
		return 0, nil, errors.Errorf("batch of %d labels and %d values, want %d and %d", len(labels), len(x), s.batch, len(s.xs))
	}
	copy(s.xs, x)
	for i := range s.ys {
		s.ys[i] = 0
	}
	var classes = s.net.Arch.Classes()
	for i, l := range labels {
		s.ys[i*classes+int(l)] = 1
	}
	if err = G.Let(s.gr.x, s.x); err != nil {
		return
	}
	if err = G.Let(s.gr.y, s.y); err != nil {
		return
	}
	defer s.vm.Reset()
	if err = s.vm.RunAll(); err != nil {
		return 0, nil, errors.Wrap(err, "training pass")
	}
	if prob, err = values(s.gr.prob); err != nil {
		return
	}
	cost, ok := s.gr.cost.Data().(float32)
	if !ok {
		return 0, nil, errors.Errorf("unexpected loss type %T", s.gr.cost.Data())
	}
	if err = s.solver.Step(G.NodesToValueGrads(s.gr.learnables)); err != nil {
		return 0, nil, errors.Wrap(err, "adam step")
	}
	return cost, prob, nil
}

// Close stores the trained parameters back into the network and releases the machine
func (s *Session) Close() error {
	for i, l := range s.gr.learnables {
		t, ok := l.Value().(*tensor.Dense)
		if !ok {
			return errors.Errorf("parameter %s is %T", ParamName(i), l.Value())
		}
		s.net.params[i] = t
	}
	return s.vm.Close()
}
