// Package trainer provides the training orchestration for the fashion classifier.
// It normalizes a split, runs the fixed number of epochs over shuffled
// mini-batches, reports loss and accuracy per epoch and persists the model.
package trainer
