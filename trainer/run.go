package trainer

import "github.com/magneticio/go-common/logging"
import "github.com/pkg/errors"

import "github.com/neurlang/fashion/datasets"
import "github.com/neurlang/fashion/model"

// Run trains the default classifier on the split and saves it into dir.
// A positive epochs overrides the architecture's epoch count.
func Run(train datasets.Split, dir string, epochs int) (*model.Network, []Epoch, error) {
	arch := model.Default()
	if epochs > 0 {
		arch.Epochs = epochs
	}
	net, err := model.New(arch)
	if err != nil {
		return nil, nil, err
	}
	logging.Info("Training on %d images for %d epochs\n", train.Len(), arch.Epochs)
	history, err := Train(net, datasets.Normalize(train.Images), train.Labels, arch.Epochs)
	if err != nil {
		return nil, history, err
	}
	logging.Info("Saving model to %s\n", dir)
	if err := net.Save(dir); err != nil {
		return nil, history, errors.Wrap(err, "saving model")
	}
	return net, history, nil
}
