// Package dump writes a labeled image split to disk as one grayscale PNG per
// example, in a directory per class: <root>/<ClassName>/<N>.png, with N
// counting from 0 separately for every class.
package dump
