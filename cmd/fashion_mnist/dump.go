package main

import "github.com/spf13/cobra"

import "github.com/neurlang/fashion/datasets/fashion"

var dumpTrain bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the test images as png files, one directory per class",
	Long: `Write the test images as <images>/<ClassName>/<N>.png:
  fashion_mnist dump
  fashion_mnist dump --train
  `,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		train, test, err := fashion.Load(cfg.Dataset)
		if err != nil {
			return err
		}
		if dumpTrain {
			return runDump(train, "training", cfg.Images)
		}
		return runDump(test, "test", cfg.Images)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVarP(&dumpTrain, "train", "", false, "dump the training images instead of the test images")
}
