package main

import (
	"fmt"
	"os"
	"path/filepath"

	"flickrget/pkg/apikey"
	"flickrget/pkg/config"
	"flickrget/pkg/ui"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage flickrget configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (FLICKRGET_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as '.flickrget.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values

The API key is masked for security.`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = ".flickrget.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# flickrget Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with FLICKRGET_
# For example: FLICKRGET_API_KEY, FLICKRGET_OUTPUT_DIR

# Flickr API access
flickr:
  # API key (optional here)
  # Prefer 'flickrget auth login' or the FLICKRGET_API_KEY environment
  # variable over writing the key into this file
  api_key: ""

  # File holding the API key on its first line
  key_file: "key.txt"

  # Flickr REST endpoint
  endpoint: "https://api.flickr.com/services/rest"

  # User agent string (optional)
  user_agent: ""

# Search parameters
search:
  # Flickr license id to filter by
  # See https://www.flickr.com/services/api/flickr.photos.licenses.getInfo.html
  license: 4

  # Results per page
  # Range: 1-500
  per_page: 500

  # First result page to fetch
  start_page: 1

  # Walk pages up to, but not including, this page
  max_page: 8

  # Download original size instead of medium
  original_size: false

# Output configuration
output:
  # Base directory for downloads and JSON artifacts
  base_directory: "./download"

  # With a word list, give each word its own subdirectory
  word_subdirs: true

# HTTP transport
http:
  # Request timeout
  timeout: 30s

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional)
  # Leave empty to log to the console only
  file: ""
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Run 'flickrget auth login' to store your Flickr API key")
	fmt.Println("2. Run 'flickrget config validate' to check the configuration")
	fmt.Println("3. Start downloading with 'flickrget fetch <word>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Create a sanitized version for display
	displayCfg := *cfg

	// Mask the API key
	if displayCfg.Flickr.APIKey != "" {
		displayCfg.Flickr.APIKey = apikey.Mask(displayCfg.Flickr.APIKey)
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (FLICKRGET_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			".flickrget.yaml",
			".flickrget.yml",
			filepath.Join(os.Getenv("HOME"), ".flickrget.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "flickrget", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	// Perform additional validation checks
	warnings := []string{}
	errors := []string{}

	// Check key availability
	if cfg.Flickr.APIKey == "" {
		if _, err := apikey.NewResolver(cfg).Resolve(); err != nil {
			warnings = append(warnings, "no API key available; run 'flickrget auth login'")
		}
	}

	// Check paths
	if cfg.Output.BaseDirectory != "" {
		if err := os.MkdirAll(cfg.Output.BaseDirectory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create output directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	// Check page window. From page 8 on a single page is fetched and
	// max_page no longer applies.
	if cfg.Search.StartPage >= cfg.Search.MaxPage && cfg.Search.StartPage < 8 {
		warnings = append(warnings, "start_page is not below max_page; no pages will be fetched")
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:", "")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:", "")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Output directory: %s\n", cfg.Output.BaseDirectory)
	fmt.Printf("  License: %d\n", cfg.Search.License)
	fmt.Printf("  Results per page: %d\n", cfg.Search.PerPage)
	fmt.Printf("  Page window: %d to %d\n", cfg.Search.StartPage, cfg.Search.MaxPage)
	fmt.Printf("  Original size: %v\n", cfg.Search.OriginalSize)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
