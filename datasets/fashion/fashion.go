package fashion

import "bufio"
import "compress/gzip"
import "encoding/binary"
import "io"
import "os"
import "path/filepath"

import "github.com/magneticio/go-common/logging"
import "github.com/mitchellh/go-homedir"
import "github.com/pkg/errors"

import "github.com/neurlang/fashion/datasets"

const TrainSetImg = "train-images-idx3-ubyte.gz"
const TrainSetVal = "train-labels-idx1-ubyte.gz"
const InferSetImg = "t10k-images-idx3-ubyte.gz"
const InferSetVal = "t10k-labels-idx1-ubyte.gz"

const imagesMagic = 2051
const labelsMagic = 2049

const tmpDirectory = "/tmp/fashion-mnist"

// preallocate caps the capacity reserved from an untrusted header count
const preallocate = 1 << 16

// SearchDirectories returns the default directories holding the dataset files
func SearchDirectories() (dirs []string) {
	if home, err := homedir.Dir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".keras", "datasets", "fashion-mnist"))
	}
	return append(dirs, tmpDirectory)
}

// Find returns the first directory containing all four dataset files
func Find(dirs ...string) (string, error) {
	var files = []string{TrainSetImg, TrainSetVal, InferSetImg, InferSetVal}
outer:
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		dir, err := homedir.Expand(dir)
		if err != nil {
			continue
		}
		for _, name := range files {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				continue outer
			}
		}
		return dir, nil
	}
	return "", errors.Errorf("fashion-mnist files not found in %v", dirs)
}

// Load reads the train and test splits. The extra directories are searched
// before the default ones.
func Load(dirs ...string) (train, test datasets.Split, err error) {
	dir, err := Find(append(dirs, SearchDirectories()...)...)
	if err != nil {
		return
	}
	logging.Info("Loading fashion-mnist from %s\n", dir)
	train, err = LoadSplit(filepath.Join(dir, TrainSetImg), filepath.Join(dir, TrainSetVal))
	if err != nil {
		return
	}
	test, err = LoadSplit(filepath.Join(dir, InferSetImg), filepath.Join(dir, InferSetVal))
	return
}

// LoadSplit reads one split from a gzip'd images file and a gzip'd labels file
func LoadSplit(imgFile, valFile string) (s datasets.Split, err error) {
	err = readGzip(imgFile, func(r io.Reader) (err error) {
		s.Images, err = ReadImages(r)
		return
	})
	if err != nil {
		return
	}
	err = readGzip(valFile, func(r io.Reader) (err error) {
		s.Labels, err = ReadLabels(r)
		return
	})
	if err != nil {
		return
	}
	if len(s.Images) != len(s.Labels) {
		err = errors.Errorf("%d images but %d labels in '%s'", len(s.Images), len(s.Labels), valFile)
	}
	return
}

func readGzip(name string, body func(io.Reader) error) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "cannot open file '%s'", name)
	}
	defer f.Close()
	gzipReader, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gzip file '%s'", name)
	}
	defer gzipReader.Close()
	return errors.Wrapf(body(bufio.NewReader(gzipReader)), "reading file '%s'", name)
}

// ReadImages parses an uncompressed idx3 images stream
func ReadImages(r io.Reader) ([]datasets.Image, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "images header")
	}
	if header[0] != imagesMagic {
		return nil, errors.Errorf("bad images magic %d", header[0])
	}
	if header[2] != datasets.ImgSize || header[3] != datasets.ImgSize {
		return nil, errors.Errorf("images are %dx%d, want %dx%d", header[2], header[3], datasets.ImgSize, datasets.ImgSize)
	}
	var set = make([]datasets.Image, 0, min(header[1], preallocate))
	for i := uint32(0); i < header[1]; i++ {
		var img datasets.Image
		if _, err := io.ReadFull(r, img[:]); err != nil {
			return nil, errors.Wrapf(err, "image %d of %d", i, header[1])
		}
		set = append(set, img)
	}
	return set, nil
}

// ReadLabels parses an uncompressed idx1 labels stream
func ReadLabels(r io.Reader) ([]datasets.Label, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "labels header")
	}
	if header[0] != labelsMagic {
		return nil, errors.Errorf("bad labels magic %d", header[0])
	}
	raw, err := io.ReadAll(io.LimitReader(r, int64(header[1])))
	if err != nil {
		return nil, errors.Wrap(err, "labels")
	}
	if len(raw) != int(header[1]) {
		return nil, errors.Errorf("%d labels stored, header claims %d", len(raw), header[1])
	}
	var set = make([]datasets.Label, len(raw))
	for i, v := range raw {
		if v >= datasets.Classes {
			return nil, errors.Errorf("label %d of example %d out of range", v, i)
		}
		set[i] = datasets.Label(v)
	}
	return set, nil
}
