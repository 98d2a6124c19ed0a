package main

import "fmt"
import "image"
import _ "image/png"
import "io"
import "os"

import "github.com/pkg/errors"
import "github.com/spf13/cobra"
import "golang.org/x/image/draw"

import "github.com/neurlang/fashion/datasets"
import "github.com/neurlang/fashion/model"

var classifyFile string

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify one 28x28 png image with the saved model",
	Long: `Print the class probabilities and the most probable class of an image:
  fashion_mnist classify --file images/Bag/0.png
  `,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		net, err := model.Load(cfg.Models)
		if err != nil {
			return err
		}
		return classify(cmd.OutOrStdout(), net, classifyFile)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "png image to classify")
	classifyCmd.MarkFlagRequired("file")
}

func classify(w io.Writer, net *model.Network, file string) error {
	img, err := readImage(file)
	if err != nil {
		return err
	}
	prob, err := net.Predict(datasets.NormalizeImage(img))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, prob)
	if idx := model.ArgMax(prob); idx >= 0 && idx < datasets.Classes {
		fmt.Fprintf(w, "classified: %s\n", datasets.Label(idx).Name())
	}
	return nil
}

// readImage decodes a 28x28 image as grayscale, x being the column and y the row
func readImage(file string) (*datasets.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "opening '%s'", file)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding '%s'", file)
	}
	b := src.Bounds()
	if b.Dx() != datasets.ImgSize || b.Dy() != datasets.ImgSize {
		return nil, errors.Errorf("'%s' is %dx%d, want %dx%d", file, b.Dx(), b.Dy(), datasets.ImgSize, datasets.ImgSize)
	}
	gray := image.NewGray(image.Rect(0, 0, datasets.ImgSize, datasets.ImgSize))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	var img datasets.Image
	for row := 0; row < datasets.ImgSize; row++ {
		for column := 0; column < datasets.ImgSize; column++ {
			img.Set(row, column, gray.GrayAt(column, row).Y)
		}
	}
	return &img, nil
}
