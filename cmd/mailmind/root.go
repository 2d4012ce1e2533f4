package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikey/mailmind/internal/di"
)

// version is set at build time via -ldflags.
var version = "dev"

var flags di.CLIFlags

var rootCmd = &cobra.Command{
	Use:   "mailmind",
	Short: "Summarise the emails you received today",
	Long:  "mailmind reads the inbox view of a webmail client, keeps the rows\nreceived today and summarises them with an LLM. It can also draft a\nreply to an opened message.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&flags.ConfigFile, "config", "", "Path to config file")
	f.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	f.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	f.StringVar(&flags.InputFile, "file", "", "Read the inbox from a saved HTML page instead of a browser")
	f.StringVar(&flags.RemoteURL, "remote-url", "", "DevTools URL of a running Chrome to attach to")
	f.StringVar(&flags.URL, "url", "", "Page to open in the browser (defaults to browser.url)")
	f.BoolVar(&flags.Headless, "headless", false, "Launch Chrome without a window")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(replyCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
