package trainer

import "github.com/magneticio/go-common/logging"
import "github.com/pkg/errors"

import "github.com/neurlang/fashion/datasets"
import "github.com/neurlang/fashion/model"

// Epoch is the outcome of one pass over the training set
type Epoch struct {
	Loss     float64
	Accuracy float64
}

// Train fits the network to the normalized images for the given number of
// epochs. A final partial batch is topped up with examples from the start of
// the epoch order, which are not counted again for accuracy.
func Train(net *model.Network, images []float32, labels []datasets.Label, epochs int) ([]Epoch, error) {
	var n = len(labels)
	var size = net.Arch.InputSize()
	if n == 0 {
		return nil, errors.New("empty training set")
	}
	if len(images) != n*size {
		return nil, errors.Errorf("%d values for %d images of %d pixels", len(images), n, size)
	}
	s, err := net.NewSession()
	if err != nil {
		return nil, err
	}
	var batch = s.Batch()
	var classes = net.Arch.Classes()
	var x = make([]float32, batch*size)
	var y = make([]datasets.Label, batch)
	var history []Epoch

	for epoch := 0; epoch < epochs; epoch++ {
		order := Permutation(n, uint32(epoch))
		var lossSum float64
		var steps, correct int
		for start := 0; start < n; start += batch {
			for k := 0; k < batch; k++ {
				j := order[(start+k)%n]
				copy(x[k*size:(k+1)*size], images[j*size:(j+1)*size])
				y[k] = labels[j]
			}
			loss, prob, err := s.Step(x, y)
			if err != nil {
				s.Close()
				return history, errors.Wrapf(err, "epoch %d", epoch+1)
			}
			lossSum += float64(loss)
			steps++
			for k := 0; k < batch && start+k < n; k++ {
				if model.ArgMax(prob[k*classes:(k+1)*classes]) == int(y[k]) {
					correct++
				}
			}
		}
		e := Epoch{Loss: lossSum / float64(steps), Accuracy: float64(correct) / float64(n)}
		logging.Info("Epoch %d/%d - loss: %.4f - accuracy: %.4f\n", epoch+1, epochs, e.Loss, e.Accuracy)
		history = append(history, e)
	}
	return history, s.Close()
}
