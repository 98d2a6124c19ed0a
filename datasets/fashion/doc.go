// Package fashion loads the Fashion-MNIST dataset from the gzip'd idx files
// distributed by Zalando Research. The files are searched in a list of
// directories, including the cache directory used by keras, so a dataset that
// was already downloaded by other tooling is reused as is.
package fashion
