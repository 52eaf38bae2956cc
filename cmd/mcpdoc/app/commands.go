// Package app provides the command-line entry points for the mcpdoc server.
package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danlester/mcpdoc/internal/httpclient"
	"github.com/danlester/mcpdoc/internal/sources"
	"github.com/danlester/mcpdoc/internal/versions"
)

var rootCmd = &cobra.Command{
	Use:   "mcpdoc",
	Short: "MCP LLMS-TXT Documentation Server",
	Long: `MCP LLMS-TXT Documentation Server exposes llms.txt documentation sources
(remote URLs or local files) as MCP tools, with an add/remove/list interface
for managing sources at runtime and a domain allow-list guarding remote
fetches.`,
	Example: `  # Directly specifying llms.txt URLs with optional names
  mcpdoc --urls LangGraph:https://langchain-ai.github.io/langgraph/llms.txt

  # Using a local file (absolute or relative path)
  mcpdoc --urls LocalDocs:/path/to/llms.txt --allowed-domains '*'

  # Using a JSON config file
  mcpdoc --json sample_config.json

  # Using SSE transport with custom host and port
  mcpdoc --json sample_config.json --transport sse --host 0.0.0.0 --port 9000

  # Allow fetching from additional domains. The domains hosting the
  # configured llms.txt files are always allowed.
  mcpdoc --json sample_config.json --allowed-domains https://example.com/

  # Allow fetching from any domain
  mcpdoc --json sample_config.json --allowed-domains '*'`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE:              runServe,
}

// NewRootCmd creates the root command for the mcpdoc server.
func NewRootCmd() *cobra.Command {
	flags := rootCmd.Flags()
	flags.StringP("json", "j", "", "Path to JSON config file with doc sources")
	flags.StringArrayP("urls", "u", nil,
		"llms.txt URLs or file paths with optional names (format: 'url_or_path' or 'name:url_or_path')")
	flags.Bool("follow-redirects", false, "Whether to follow HTTP redirects")
	flags.StringArray("allowed-domains", nil,
		"Additional allowed domains to fetch documentation from ('*' allows all domains)")
	flags.Duration("timeout", httpclient.DefaultTimeout, "HTTP request timeout")
	flags.String("transport", "stdio", "Transport protocol for the MCP server (stdio or sse)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("host", "127.0.0.1", "Host to bind the server to (sse transport only)")
	flags.Int("port", 8000, "Port to bind the server to (sse transport only)")
	flags.Int("max-tool-name-length", sources.DefaultMaxToolNameLength,
		"Maximum length for tool names (0 for no limit)")

	for _, name := range []string{
		"json", "urls", "follow-redirects", "allowed-domains", "timeout",
		"transport", "log-level", "host", "port", "max-tool-name-length",
	} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versions.GetVersionInfo()

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		if format == "json" {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format version info: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Printf("mcpdoc %s (commit %s, built %s, %s, %s)\n",
			info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
		return nil
	},
}

func init() {
	versionCmd.Flags().String("format", "", "Output format (json)")
}
