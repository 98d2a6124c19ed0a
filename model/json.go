package model

import "compress/lzw"
import "encoding/json"
import "io"
import "os"
import "path/filepath"

import "github.com/pkg/errors"
import "gorgonia.org/tensor"

// ArchitectureFile holds the Architecture inside a model directory
const ArchitectureFile = "architecture.json"

// WeightsFile holds the lzw compressed parameters inside a model directory
const WeightsFile = "weights.json.lzw"

type param struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// Save writes the architecture and the weights into the directory, creating it
func (n *Network) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating '%s'", dir)
	}
	arch, err := json.MarshalIndent(n.Arch, "", "\t")
	if err != nil {
		return err
	}
	name := filepath.Join(dir, ArchitectureFile)
	if err := os.WriteFile(name, append(arch, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", name)
	}
	return n.WriteCompressedWeightsToFile(filepath.Join(dir, WeightsFile))
}

// Load reads a network saved by Save
func Load(dir string) (*Network, error) {
	name := filepath.Join(dir, ArchitectureFile)
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", name)
	}
	var arch Architecture
	if err := json.Unmarshal(data, &arch); err != nil {
		return nil, errors.Wrapf(err, "decoding '%s'", name)
	}
	n, err := New(arch)
	if err != nil {
		return nil, errors.Wrapf(err, "architecture in '%s'", name)
	}
	if err := n.ReadCompressedWeightsFromFile(filepath.Join(dir, WeightsFile)); err != nil {
		return nil, err
	}
	return n, nil
}

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (n *Network) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", name)
	}
	err = n.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "writing '%s'", name)
}

// WriteCompressedWeights writes model weights to a writer
func (n *Network) WriteCompressedWeights(w io.Writer) error {
	var params = make([]param, len(n.params))
	for i, t := range n.params {
		data, ok := t.Data().([]float32)
		if !ok {
			return errors.Errorf("parameter %s is %T", ParamName(i), t.Data())
		}
		params[i] = param{Name: ParamName(i), Shape: []int(t.Shape()), Data: data}
	}
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(params); err != nil {
		lw.Close()
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (n *Network) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening '%s'", name)
	}
	defer file.Close()
	return errors.Wrapf(n.ReadCompressedWeights(file), "reading '%s'", name)
}

// ReadCompressedWeights reads model weights from a reader. The stored shapes
// must match the architecture.
func (n *Network) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var params []param
	if err := json.NewDecoder(lr).Decode(&params); err != nil {
		return err
	}
	if len(params) != len(n.params) {
		return errors.Errorf("%d parameters stored, architecture has %d", len(params), len(n.params))
	}
	for i, p := range params {
		want := n.params[i].Shape()
		if p.Name != ParamName(i) || !want.Eq(tensor.Shape(p.Shape)) || len(p.Data) != want.TotalSize() {
			return errors.Errorf("parameter %d (%s %v) does not match %s %v", i, p.Name, p.Shape, ParamName(i), want)
		}
		n.params[i] = tensor.New(tensor.WithShape(p.Shape...), tensor.WithBacking(p.Data))
	}
	return nil
}
