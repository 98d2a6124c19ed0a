// Package datasets implements the labeled image dataset types shared by the dumper and the trainer
package datasets

// ImgSize is the side of the square grayscale images
const ImgSize = 28

// Pixels is the number of pixels in one image
const Pixels = ImgSize * ImgSize

// Classes is the number of class labels
const Classes = 10

// ClassNames maps a label to its garment name. The order is fixed and index-aligned with the labels.
var ClassNames = [Classes]string{
	"Top", "Trouser", "Pullover", "Dress", "Coat",
	"Sandal", "Shirt", "Sneaker", "Bag", "Boot",
}

// Label is a class index in the range 0 to Classes-1
type Label byte

// Name returns the class name of the label. Labels out of range panic.
func (l Label) Name() string {
	return ClassNames[l]
}

// Image is a row-major 28x28 grid of intensities
type Image [Pixels]byte

// At returns the intensity at row, column
func (i *Image) At(row, column int) byte {
	return i[row*ImgSize+column]
}

// Set stores the intensity at row, column
func (i *Image) Set(row, column int, v byte) {
	i[row*ImgSize+column] = v
}

// Split is a pair of index-aligned image and label sequences
type Split struct {
	Images []Image
	Labels []Label
}

// Len returns the number of examples
func (s Split) Len() int {
	return len(s.Labels)
}

// Get returns example n
func (s Split) Get(n int) (*Image, Label) {
	return &s.Images[n], s.Labels[n]
}

// Normalize rescales every byte of every image to [0, 1] by dividing it by 255.
// The result is a new flat slice, images follow each other in order.
func Normalize(images []Image) []float32 {
	var out = make([]float32, 0, len(images)*Pixels)
	for i := range images {
		out = append(out, NormalizeImage(&images[i])...)
	}
	return out
}

// NormalizeImage rescales one image to [0, 1]
func NormalizeImage(img *Image) []float32 {
	var out = make([]float32, Pixels)
	for j, v := range img {
		out[j] = float32(v) / 255
	}
	return out
}
