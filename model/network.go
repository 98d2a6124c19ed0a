package model

import "fmt"

import "github.com/pkg/errors"
import G "gorgonia.org/gorgonia"
import "gorgonia.org/tensor"

// epsilon keeps the logarithm of a saturated softmax finite
const epsilon = 1e-7

// Network holds the parameters of an Architecture. Kernels are in x out
// matrices, biases are 1 x out rows, stored in layer order.
type Network struct {
	Arch   Architecture
	params []*tensor.Dense
}

// New creates a network with glorot uniform kernels and zero biases
func New(arch Architecture) (*Network, error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}
	var n = &Network{Arch: arch}
	var in = arch.InputSize()
	for _, l := range arch.Layers {
		kernel := G.GlorotU(1.0)(tensor.Float32, in, l.Units).([]float32)
		n.params = append(n.params,
			tensor.New(tensor.WithShape(in, l.Units), tensor.WithBacking(kernel)),
			tensor.New(tensor.WithShape(1, l.Units), tensor.WithBacking(make([]float32, l.Units))),
		)
		in = l.Units
	}
	return n, nil
}

// ParamName names the i-th parameter tensor
func ParamName(i int) string {
	if i%2 == 0 {
		return fmt.Sprintf("dense_%d/kernel", i/2)
	}
	return fmt.Sprintf("dense_%d/bias", i/2)
}

type graph struct {
	g          *G.ExprGraph
	x, y       *G.Node
	learnables G.Nodes
	prob, cost G.Value
}

// build makes the expression graph for a fixed batch. Training graphs also
// carry the labels, the loss and its gradients.
func (n *Network) build(batch int, train bool) (*graph, error) {
	var gr = &graph{g: G.NewGraph()}
	gr.x = G.NewMatrix(gr.g, tensor.Float32, G.WithShape(batch, n.Arch.InputSize()), G.WithName("x"))

	var out = gr.x
	for i, l := range n.Arch.Layers {
		w := G.NewMatrix(gr.g, tensor.Float32, G.WithShape(n.params[2*i].Shape()...), G.WithName(ParamName(2*i)), G.WithValue(n.params[2*i]))
		b := G.NewMatrix(gr.g, tensor.Float32, G.WithShape(n.params[2*i+1].Shape()...), G.WithName(ParamName(2*i+1)), G.WithValue(n.params[2*i+1]))
		gr.learnables = append(gr.learnables, w, b)

		xw, err := G.Mul(out, w)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		if out, err = G.BroadcastAdd(xw, b, nil, []byte{0}); err != nil {
			return nil, errors.Wrapf(err, "layer %d bias", i)
		}
		if out, err = activate(out, l.Activation); err != nil {
			return nil, errors.Wrapf(err, "layer %d activation", i)
		}
	}
	G.Read(out, &gr.prob)

	if !train {
		return gr, nil
	}
	gr.y = G.NewMatrix(gr.g, tensor.Float32, G.WithShape(batch, n.Arch.Classes()), G.WithName("y"))
	cost, err := crossEntropy(out, gr.y)
	if err != nil {
		return nil, errors.Wrap(err, "loss")
	}
	G.Read(cost, &gr.cost)
	if _, err = G.Grad(cost, gr.learnables...); err != nil {
		return nil, errors.Wrap(err, "gradients")
	}
	return gr, nil
}

func activate(x *G.Node, a Activation) (*G.Node, error) {
	switch a {
	case ReLU:
		return G.Rectify(x)
	case Softmax:
		return G.SoftMax(x, 1)
	case Linear:
		return x, nil
	}
	return nil, errors.Errorf("unknown activation %q", a)
}

// crossEntropy is the batch mean of -log(p[label]), y selects the label column
func crossEntropy(prob, y *G.Node) (*G.Node, error) {
	guarded, err := G.Add(prob, G.NewConstant(float32(epsilon)))
	if err != nil {
		return nil, err
	}
	logp, err := G.Log(guarded)
	if err != nil {
		return nil, err
	}
	picked, err := G.HadamardProd(y, logp)
	if err != nil {
		return nil, err
	}
	perExample, err := G.Sum(picked, 1)
	if err != nil {
		return nil, err
	}
	mean, err := G.Mean(perExample)
	if err != nil {
		return nil, err
	}
	return G.Neg(mean)
}

// Predict runs the forward pass over one or more flattened normalized images
// and returns the class probabilities, Classes() values per image.
func (n *Network) Predict(x []float32) ([]float32, error) {
	var size = n.Arch.InputSize()
	if len(x) == 0 || len(x)%size != 0 {
		return nil, errors.Errorf("input of %d values is not a multiple of %d", len(x), size)
	}
	var batch = len(x) / size
	gr, err := n.build(batch, false)
	if err != nil {
		return nil, err
	}
	vm := G.NewTapeMachine(gr.g)
	defer vm.Close()
	if err := G.Let(gr.x, tensor.New(tensor.WithShape(batch, size), tensor.WithBacking(x))); err != nil {
		return nil, err
	}
	if err := vm.RunAll(); err != nil {
		return nil, errors.Wrap(err, "forward pass")
	}
	return values(gr.prob)
}

func values(v G.Value) ([]float32, error) {
	data, ok := v.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("unexpected value type %T", v.Data())
	}
	return append([]float32(nil), data...), nil
}

// ArgMax returns the most probable class, ties go to the higher index
func ArgMax(prob []float32) int {
	var pos = -1
	var max float32
	for i, v := range prob {
		if v >= max {
			max = v
			pos = i
		}
	}
	return pos
}
