package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"flickrget/pkg/apikey"
	"flickrget/pkg/config"
	"flickrget/pkg/fetcher"
	"flickrget/pkg/logger"
	"flickrget/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	// Fetch command flags
	inputFile    string
	outputDir    string
	keyFile      string
	license      int
	perPage      int
	startPage    int
	maxPage      int
	originalSize bool
	fetchTimeout int
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [word]",
	Short: "Search Flickr for a word and download the matching photos",
	Long: `Search Flickr for a word and download every photo the search returns.

The search walks result pages from --start-page up to (but not including)
--max-page, stopping early when Flickr reports the last page. Each page
leaves two JSON artifacts next to the downloaded images: the raw API
response and the extracted download list.

Provide either a single search word or a word list file with one word per
line; with --input-file every word gets its own subdirectory under the
output directory.

A Flickr API key is required. The key is resolved from the key file, the
FLICKRGET_API_KEY environment variable, the system keychain, or the
encrypted key file, in that order. Run 'flickrget auth login' to store one.`,
	Example: `  # Download medium-size photos for one word
  flickrget fetch cat

  # Download original-size photos into a specific directory
  flickrget fetch cat --original --output ./photos

  # Walk pages 2 through 5 with smaller result pages
  flickrget fetch cat --start-page 2 --max-page 6 --per-page 100

  # One word per line, each word in its own subdirectory
  flickrget fetch --input-file words.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	// Local flags for fetch command
	fetchCmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "word list file, one search word per line")
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads (default: ./download)")
	fetchCmd.Flags().StringVarP(&keyFile, "key-file", "k", "", "file holding the API key on its first line (default: key.txt)")
	fetchCmd.Flags().IntVarP(&license, "license", "l", 4, "Flickr license id to filter by")
	fetchCmd.Flags().IntVar(&perPage, "per-page", 500, "results per page (max 500)")
	fetchCmd.Flags().IntVar(&startPage, "start-page", 1, "first result page to fetch")
	fetchCmd.Flags().IntVar(&maxPage, "max-page", 8, "walk pages up to, but not including, this page")
	fetchCmd.Flags().BoolVarP(&originalSize, "original", "O", false, "download original size instead of medium")
	fetchCmd.Flags().IntVar(&fetchTimeout, "timeout", 30, "HTTP timeout in seconds")
}

func runFetch(cmd *cobra.Command, args []string) {
	var word string
	if len(args) > 0 {
		word = strings.TrimSpace(args[0])
	}

	// Exactly one input: a search word or a word list
	if word == "" && inputFile == "" {
		ui.PrintError("Nothing to fetch", "provide a search word or --input-file")
		fmt.Println()
		_ = cmd.Usage()
		os.Exit(1)
	}
	if word != "" && inputFile != "" {
		ui.PrintError("Conflicting inputs", "a search word and --input-file cannot be combined")
		os.Exit(1)
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if keyFile != "" {
		flags["key-file"] = keyFile
	}
	if license != 4 {
		flags["license"] = license
	}
	if perPage != 500 {
		flags["per-page"] = perPage
	}
	if startPage != 1 {
		flags["start-page"] = startPage
	}
	if maxPage != 8 {
		flags["max-page"] = maxPage
	}
	if originalSize {
		flags["original"] = true
	}
	if fetchTimeout != 30 {
		flags["timeout"] = time.Duration(fetchTimeout) * time.Second
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("flickrget starting")

	// Resolve the API key unless config already carries one
	if cfg.Flickr.APIKey == "" {
		key, err := apikey.NewResolver(cfg).Resolve()
		if err != nil {
			logger.WithError(err).Error("no API key available")
			ui.PrintError("No Flickr API key found", "")
			fmt.Println("\nTo store a key securely, run:")
			fmt.Println("  flickrget auth login")
			fmt.Println("\nYou can also set an environment variable:")
			fmt.Printf("  export %s=your_api_key\n", apikey.EnvKeyVariable)
			fmt.Println("\nOr put the key on the first line of key.txt (see --key-file).")
			os.Exit(1)
		}
		cfg.Flickr.APIKey = key
	}

	if inputFile != "" {
		ui.PrintInfo("Word list", inputFile)
	} else {
		ui.PrintInfo("Search word", word)
	}
	ui.PrintInfo("Output directory", cfg.Output.BaseDirectory)

	f, err := fetcher.New(cfg)
	if err != nil {
		ui.PrintError("Failed to initialize fetcher", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("[INITIATING FETCH SEQUENCE]")
	notifier := ui.NewNotifier()

	if inputFile != "" {
		err = f.RunWordList(inputFile)
	} else {
		err = f.RunWord(word)
	}
	if err != nil {
		logger.WithError(err).Error("fetch failed")
		notifier.SendError("FETCH FAILED", err.Error())
		os.Exit(1)
	}

	logger.Info("fetch completed successfully")
	notifier.SendSuccess("flickrget", "fetch completed successfully")
	ui.PrintSuccess("[FETCH COMPLETED SUCCESSFULLY]")
}
