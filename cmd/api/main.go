package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yatube/internal/config"
	"yatube/internal/pkg"
)

var (
	configPath string
	cfg        *config.Config
)

// RootCmd 不带子命令时启动服务
var RootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube blog platform",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pkg.InitLogger(cfg.Log)
		return nil
	},
	RunE:          serve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("YATUBE_CONFIG"), "path to the YAML config file")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
