package cmd

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about languages and detection rules",
	Long:  `Display the supported languages and the compiled detection rule of each language.`,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.AddCommand(ruleCmd)
	infoCmd.AddCommand(languagesCmd)
	infoCmd.AddCommand(schemasCmd)
}
