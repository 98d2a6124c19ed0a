// Package main provides the fashion_mnist program. Without a subcommand it dumps
// the Fashion-MNIST test images into one directory per garment class and then
// trains the dense classifier on the training images, saving it under models/.
// The dump, train and classify subcommands run the stages on their own.
package main
