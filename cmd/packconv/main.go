package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "packconv",
	Short: "Convert Java Edition resource packs to Bedrock Edition",
	Long: `packconv converts Java Edition resource packs (including packs generated by
item customization plugins such as ItemsAdder) into Bedrock Edition packs plus
a Geyser item mapping file.`,
}

func main() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to packconv.toml")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
