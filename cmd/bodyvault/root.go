package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bodyvault",
	Short: "bodyvault - An encrypted local vault for body progress photos",
	Long:  "bodyvault stores progress photos encrypted on disk, organized into capture sessions, with optional AI-assisted progress comparison.",
}

func init() {
	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newNoteCmd())
	rootCmd.AddCommand(newMeasureCmd())
	rootCmd.AddCommand(newSlotsCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newStorageCmd())
	rootCmd.AddCommand(newSweepCmd())
	rootCmd.AddCommand(newResetCmd())
}
