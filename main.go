package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "deckd",
		Short:         "Shared Pandemic deck tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	serveCmd := newServeCmd(&envFile)
	root.AddCommand(serveCmd, newForecastCmd(&envFile))
	// 不带子命令时直接启动服务
	root.RunE = serveCmd.RunE
	return root
}
