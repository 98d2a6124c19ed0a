package main

import "github.com/spf13/cobra"

import "github.com/neurlang/fashion/datasets/fashion"

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier and save it",
	Long: `Train the classifier on the training images and save it to the models directory:
  fashion_mnist train
  `,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		train, _, err := fashion.Load(cfg.Dataset)
		if err != nil {
			return err
		}
		return runTrain(train, cfg.Models)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
