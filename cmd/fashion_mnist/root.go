package main

import "os"

import "github.com/magneticio/go-common/logging"
import "github.com/spf13/cobra"
import "github.com/spf13/viper"

import "github.com/neurlang/fashion/config"
import "github.com/neurlang/fashion/datasets"
import "github.com/neurlang/fashion/device"
import "github.com/neurlang/fashion/datasets/fashion"
import "github.com/neurlang/fashion/dump"
import "github.com/neurlang/fashion/trainer"

var cfgFile string
var verbose bool

// epochs overrides the architecture's epoch count when positive
var epochs int

// rootCmd runs the whole pipeline when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fashion_mnist",
	Short: "Dump Fashion-MNIST to png files and train a classifier on it",
	Long: `Dump the Fashion-MNIST test set and train a classifier on the train set:
  fashion_mnist
  fashion_mnist dump
  fashion_mnist train
  fashion_mnist classify --file images/Bag/0.png
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
		if err := runDump(test, "test", cfg.Images); err != nil {
			return err
		}
		return runTrain(train, cfg.Models)
	},
}

// Execute adds all child commands to the root command and runs it. It exits
// with status 1 on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("%v\n", err)
		os.Exit(1)
	}
}

func init() {
	logging.Init(os.Stdout, os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fashion/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	config.SetDefaults(viper.GetViper())
}

func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	if err := config.ReadFile(v, cfgFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logging.Verbose = verbose || cfg.Verbose
	return cfg, nil
}

func runDump(split datasets.Split, name, dir string) error {
	logging.Info("Saving %d %s images to %s\n", split.Len(), name, dir)
	if err := dump.Dump(split, dir); err != nil {
		return err
	}
	logging.Info("done\n")
	return nil
}

func runTrain(train datasets.Split, dir string) error {
	for _, line := range device.Report() {
		logging.Info("%s\n", line)
	}
	_, _, err := trainer.Run(train, dir, epochs)
	return err
}
