package dump

import "image"
import "image/png"
import "os"
import "path/filepath"
import "strconv"

import "github.com/magneticio/go-common/logging"
import "github.com/pkg/errors"
import "golang.org/x/image/draw"

import "github.com/neurlang/fashion/datasets"

// OutSize is the side of the written rasters
const OutSize = datasets.ImgSize

// Dump creates the class directories under root and writes every example of
// the split into the directory of its label. Files already present with the
// same names are overwritten. Labels must be valid class indices.
func Dump(s datasets.Split, root string) error {
	for _, name := range datasets.ClassNames {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating '%s'", dir)
		}
	}
	var count [datasets.Classes]int
	for i := 0; i < s.Len(); i++ {
		img, label := s.Get(i)
		filename := Path(root, label, count[label])
		if err := WriteImage(filename, img); err != nil {
			return err
		}
		count[label]++
	}
	for label, n := range count {
		logging.Info("%s: %d images\n", datasets.ClassNames[label], n)
	}
	return nil
}

// Path returns the file name of the n-th example of a class
func Path(root string, label datasets.Label, n int) string {
	return filepath.Join(root, label.Name(), strconv.Itoa(n)+".png")
}

// Image converts the example to a single channel raster, with x being the
// source column and y the source row.
func Image(img *datasets.Image) *image.Gray {
	var out = image.NewGray(image.Rect(0, 0, datasets.ImgSize, datasets.ImgSize))
	for row := 0; row < datasets.ImgSize; row++ {
		for column := 0; column < datasets.ImgSize; column++ {
			out.Pix[out.PixOffset(column, row)] = img.At(row, column)
		}
	}
	return resize(out, OutSize)
}

// resize scales to size x size with nearest neighbour sampling, an identity
// while OutSize equals the source size.
func resize(src *image.Gray, size int) *image.Gray {
	var dst = image.NewGray(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteImage encodes the example as PNG into filename
func WriteImage(filename string, img *datasets.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", filename)
	}
	err = png.Encode(f, Image(img))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "writing '%s'", filename)
}
