package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/swhawkins/LAPOK/cmd/cli/assess"
	"github.com/swhawkins/LAPOK/cmd/cli/img"
	"github.com/swhawkins/LAPOK/internal/errors"
	"io/fs"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.AppIcons, img.Splash, img.AppleIcons)
	rootCmd.AddGroup(assess.Group)
	rootCmd.AddCommand(assess.Evaluate, assess.Report)
}

var rootCmd = &cobra.Command{
	Use:          "lap-cli",
	Long:         `Command line utilities for the Oklahoma LAP assessment app`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
