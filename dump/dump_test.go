package dump

import "bytes"
import "image/png"
import "io/fs"
import "os"
import "path/filepath"
import "strconv"
import "testing"

import "github.com/magneticio/go-common/logging"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/fashion/datasets"

func TestMain(m *testing.M) {
	logging.Init(os.Stdout, os.Stderr)
	os.Exit(m.Run())
}

func constant(v byte) (img datasets.Image) {
	for i := range img {
		img[i] = v
	}
	return
}

func gradient() (img datasets.Image) {
	for row := 0; row < datasets.ImgSize; row++ {
		for column := 0; column < datasets.ImgSize; column++ {
			img.Set(row, column, byte(row*datasets.ImgSize+column))
		}
	}
	return
}

func listPNG(t *testing.T, dir string) (names []string) {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return
}

func TestDumpEveryLabel(t *testing.T) {
	for l := 0; l < datasets.Classes; l++ {
		root := t.TempDir()
		s := datasets.Split{Images: []datasets.Image{constant(byte(l))}, Labels: []datasets.Label{datasets.Label(l)}}
		require.NoError(t, Dump(s, root))
		for k, name := range datasets.ClassNames {
			files := listPNG(t, filepath.Join(root, name))
			if k == l {
				assert.Equal(t, []string{"0.png"}, files, name)
			} else {
				assert.Empty(t, files, name)
			}
		}
	}
}

func TestDumpSequentialNames(t *testing.T) {
	const n = 12
	root := t.TempDir()
	var s datasets.Split
	for i := 0; i < n; i++ {
		s.Images = append(s.Images, constant(byte(i)))
		s.Labels = append(s.Labels, 6)
	}
	require.NoError(t, Dump(s, root))
	files := listPNG(t, filepath.Join(root, "Shirt"))
	assert.Len(t, files, n)
	for i := 0; i < n; i++ {
		f, err := os.Open(Path(root, 6, i))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		r, _, _, _ := img.At(5, 5).RGBA()
		assert.Equal(t, uint32(i)*0x101, r, "file %d.png holds example %d", i, i)
	}
}

func TestImageTranspose(t *testing.T) {
	src := gradient()
	path := filepath.Join(t.TempDir(), "x.png")
	require.NoError(t, WriteImage(path, &src))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, datasets.ImgSize, img.Bounds().Dx())
	assert.Equal(t, datasets.ImgSize, img.Bounds().Dy())
	for row := 0; row < datasets.ImgSize; row++ {
		for column := 0; column < datasets.ImgSize; column++ {
			y, _, _, _ := img.At(column, row).RGBA()
			if byte(y>>8) != src.At(row, column) {
				t.Fatalf("pixel (%d, %d) is %d, want %d", column, row, y>>8, src.At(row, column))
			}
		}
	}
}

func TestResizeIdentity(t *testing.T) {
	src := gradient()
	img := Image(&src)
	again := resize(img, OutSize)
	assert.Equal(t, img.Pix, again.Pix)
}

func snapshot(t *testing.T, root string) map[string][]byte {
	var tree = make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			tree[rel+"/"] = nil
			return nil
		}
		data, err := os.ReadFile(path)
		tree[rel] = data
		return err
	})
	require.NoError(t, err)
	return tree
}

func TestDumpDeterministic(t *testing.T) {
	var s datasets.Split
	for i := 0; i < 30; i++ {
		img := gradient()
		img.Set(i%datasets.ImgSize, 0, 255)
		s.Images = append(s.Images, img)
		s.Labels = append(s.Labels, datasets.Label(i%7))
	}
	a, b := t.TempDir(), t.TempDir()
	require.NoError(t, Dump(s, a))
	require.NoError(t, Dump(s, b))
	assert.Equal(t, snapshot(t, a), snapshot(t, b))
}

func TestDumpTopAndBag(t *testing.T) {
	root := filepath.Join(t.TempDir(), "images")
	s := datasets.Split{
		Images: []datasets.Image{constant(17), constant(200)},
		Labels: []datasets.Label{0, 8},
	}
	require.NoError(t, Dump(s, root))
	assert.FileExists(t, filepath.Join(root, "Top", "0.png"))
	assert.FileExists(t, filepath.Join(root, "Bag", "0.png"))
	assert.DirExists(t, filepath.Join(root, "Trouser"))
	for _, name := range datasets.ClassNames {
		if name == "Top" || name == "Bag" {
			assert.Len(t, listPNG(t, filepath.Join(root, name)), 1)
			continue
		}
		assert.Empty(t, listPNG(t, filepath.Join(root, name)), name)
	}
}

func TestDumpExistingDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Coat"), 0755))
	s := datasets.Split{Images: []datasets.Image{constant(1)}, Labels: []datasets.Label{4}}
	require.NoError(t, Dump(s, root))
	assert.FileExists(t, filepath.Join(root, "Coat", "0.png"))
}

func TestDumpUnwritableRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	s := datasets.Split{Images: []datasets.Image{constant(1)}, Labels: []datasets.Label{0}}
	assert.Error(t, Dump(s, file))
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("images", "Sneaker", strconv.Itoa(3)+".png"), Path("images", 7, 3))
}
