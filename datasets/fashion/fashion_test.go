package fashion

import "bytes"
import "compress/gzip"
import "encoding/binary"
import "os"
import "path/filepath"
import "testing"

import "github.com/magneticio/go-common/logging"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/fashion/datasets"

func idxImages(n int, fill func(i int) byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, [4]uint32{imagesMagic, uint32(n), datasets.ImgSize, datasets.ImgSize})
	for i := 0; i < n; i++ {
		buf.Write(bytes.Repeat([]byte{fill(i)}, datasets.Pixels))
	}
	return buf.Bytes()
}

func idxLabels(labels ...byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, [2]uint32{labelsMagic, uint32(len(labels))})
	buf.Write(labels)
	return buf.Bytes()
}

func writeGzip(t *testing.T, name string, data []byte) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, filepath.Join(dir, TrainSetImg), idxImages(3, func(i int) byte { return byte(10 * i) }))
	writeGzip(t, filepath.Join(dir, TrainSetVal), idxLabels(0, 5, 9))
	writeGzip(t, filepath.Join(dir, InferSetImg), idxImages(1, func(int) byte { return 255 }))
	writeGzip(t, filepath.Join(dir, InferSetVal), idxLabels(8))

	train, test, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, train.Len())
	assert.Equal(t, []datasets.Label{0, 5, 9}, train.Labels)
	assert.Equal(t, byte(20), train.Images[2].At(27, 27))
	assert.Equal(t, 1, test.Len())
	assert.Equal(t, byte(255), test.Images[0].At(0, 0))
}

func TestFindMissing(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, filepath.Join(dir, TrainSetImg), idxImages(1, func(int) byte { return 0 }))
	_, err := Find("", dir)
	assert.Error(t, err)
}

func TestReadImagesBadMagic(t *testing.T) {
	data := idxImages(1, func(int) byte { return 0 })
	data[3] = 0
	_, err := ReadImages(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestReadImagesTruncated(t *testing.T) {
	data := idxImages(2, func(int) byte { return 1 })
	_, err := ReadImages(bytes.NewReader(data[:len(data)-1]))
	assert.Error(t, err)
}

func TestReadLabelsOutOfRange(t *testing.T) {
	_, err := ReadLabels(bytes.NewReader(idxLabels(1, 10)))
	assert.Error(t, err)
}

func TestLoadSplitCountMismatch(t *testing.T) {
	dir := t.TempDir()
	img, val := filepath.Join(dir, "i.gz"), filepath.Join(dir, "l.gz")
	writeGzip(t, img, idxImages(2, func(int) byte { return 0 }))
	writeGzip(t, val, idxLabels(1))
	_, err := LoadSplit(img, val)
	assert.Error(t, err)
}

func TestMain(m *testing.M) {
	logging.Init(os.Stdout, os.Stderr)
	os.Exit(m.Run())
}

func TestReadImagesHugeCount(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, [4]uint32{imagesMagic, 0xffffffff, datasets.ImgSize, datasets.ImgSize})
	buf.Write(make([]byte, datasets.Pixels))
	_, err := ReadImages(&buf)
	assert.Error(t, err)
}

func TestReadLabelsHugeCount(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, [2]uint32{labelsMagic, 0xffffffff})
	buf.Write([]byte{1, 2, 3})
	_, err := ReadLabels(&buf)
	assert.Error(t, err)
}
