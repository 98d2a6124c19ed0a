package model

import "github.com/pkg/errors"

import "github.com/neurlang/fashion/datasets"

// Activation is the kind of nonlinearity applied after a dense layer
type Activation string

const (
	// Linear passes the weighted sum through unchanged
	Linear Activation = "linear"
	// ReLU clamps negative values to zero
	ReLU Activation = "relu"
	// Softmax turns a row into a probability distribution
	Softmax Activation = "softmax"
)

// Loss is the kind of training objective
type Loss string

// SparseCategoricalCrossentropy is the cross-entropy of a probability
// distribution against an integer class label.
const SparseCategoricalCrossentropy Loss = "sparse_categorical_crossentropy"

// Optimizer is the kind of gradient descent solver
type Optimizer string

// Adam is the adaptive moment estimation solver with the library defaults
const Adam Optimizer = "adam"

// Metric is the quantity monitored during training
type Metric string

// Accuracy is the share of examples whose most probable class is the label
const Accuracy Metric = "accuracy"

// Dense is a fully connected layer
type Dense struct {
	Units      int        `json:"units"`
	Activation Activation `json:"activation"`
}

// Architecture enumerates the network topology and its training procedure
type Architecture struct {
	Input     []int     `json:"input"` // flattened before the first layer
	Layers    []Dense   `json:"layers"`
	Loss      Loss      `json:"loss"`
	Optimizer Optimizer `json:"optimizer"`
	Metric    Metric    `json:"metric"`
	Epochs    int       `json:"epochs"`
	BatchSize int       `json:"batch_size"`
}

// Default returns the classifier trained by this module: 784 inputs, a 128 unit
// relu layer and a 10 way softmax, 5 epochs of adam on mini-batches of 32.
func Default() Architecture {
	return Architecture{
		Input: []int{datasets.ImgSize, datasets.ImgSize},
		Layers: []Dense{
			{Units: 128, Activation: ReLU},
			{Units: datasets.Classes, Activation: Softmax},
		},
		Loss:      SparseCategoricalCrossentropy,
		Optimizer: Adam,
		Metric:    Accuracy,
		Epochs:    5,
		BatchSize: 32,
	}
}

// InputSize is the length of the flattened input
func (a Architecture) InputSize() int {
	var size = 1
	for _, d := range a.Input {
		size *= d
	}
	return size
}

// Classes is the width of the output layer
func (a Architecture) Classes() int {
	if len(a.Layers) == 0 {
		return 0
	}
	return a.Layers[len(a.Layers)-1].Units
}

// Validate reports whether the architecture can be built and trained
func (a Architecture) Validate() error {
	if len(a.Input) == 0 || a.InputSize() <= 0 {
		return errors.Errorf("bad input shape %v", a.Input)
	}
	if len(a.Layers) == 0 {
		return errors.New("no layers")
	}
	for i, l := range a.Layers {
		if l.Units <= 0 {
			return errors.Errorf("layer %d has %d units", i, l.Units)
		}
		switch l.Activation {
		case Linear, ReLU, Softmax:
		default:
			return errors.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
	}
	if a.Layers[len(a.Layers)-1].Activation != Softmax {
		return errors.New("the output layer must be softmax")
	}
	if a.Loss != SparseCategoricalCrossentropy {
		return errors.Errorf("unknown loss %q", a.Loss)
	}
	if a.Optimizer != Adam {
		return errors.Errorf("unknown optimizer %q", a.Optimizer)
	}
	if a.Metric != Accuracy {
		return errors.Errorf("unknown metric %q", a.Metric)
	}
	if a.Epochs <= 0 || a.BatchSize <= 0 {
		return errors.Errorf("epochs %d and batch size %d must be positive", a.Epochs, a.BatchSize)
	}
	return nil
}
