package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the render cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Drop the cached output for a repository",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	root := targetDir(args)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	cache, err := openCache(root)
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.Clear(absRoot); err != nil {
		return err
	}
	fmt.Printf("Cache cleared for %s\n", absRoot)
	return nil
}
