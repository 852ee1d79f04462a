package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"flickrget/pkg/apikey"
	"flickrget/pkg/config"
	"flickrget/pkg/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Flickr API key",
	Long: `Manage the stored Flickr API key securely.

The key is stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation

At fetch time the key is resolved from the key file, the environment,
the system keychain, and the encrypted file, in that order.`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the Flickr API key securely",
	Long: `Store the Flickr API key in the system keychain or encrypted file.

You will be prompted for the key; input is hidden as you type.

To get a key:
1. Sign in at https://www.flickr.com
2. Request one at https://www.flickr.com/services/apps/create/
3. Copy the Key value from the confirmation page`,
	Example: `  # Interactive login
  flickrget auth login`,
	Args: cobra.NoArgs,
	Run:  runLogin,
}

// showCmd represents the auth show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key",
	Long:  `Show the stored Flickr API key, masked, along with the source chain.`,
	Args:  cobra.NoArgs,
	Run:   runShow,
}

// removeCmd represents the auth remove command
var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored API key",
	Long: `Remove the Flickr API key from every writable source.

Keys kept in a key file or an environment variable are owned by the user
and must be removed by hand.`,
	Args: cobra.NoArgs,
	Run:  runRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(showCmd)
	authCmd.AddCommand(removeCmd)
}

// newAuthResolver loads configuration and builds the key source chain
func newAuthResolver() *apikey.Resolver {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	return apikey.NewResolver(cfg)
}

func runLogin(cmd *cobra.Command, args []string) {
	resolver := newAuthResolver()
	reader := bufio.NewReader(os.Stdin)

	// Check for an existing key first
	if existing, err := resolver.Resolve(); err == nil {
		fmt.Printf("An API key is already available (%s). Replace it? (y/N): ", apikey.Mask(existing))
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
		fmt.Println()
	}

	// Show the setup guide first
	apikey.ShowKeySetupGuide()

	// Ask if ready to continue
	fmt.Print("Ready to enter your API key? (Y/n): ")
	ready, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(ready)) == "n" {
		fmt.Println("\nRun 'flickrget auth login' when you're ready.")
		return
	}

	fmt.Println("\n🔐 Enter your API key (it will be hidden as you type):")
	fmt.Println()

	// Get the key with validation
	var key string
	var err error
	for {
		fmt.Print("Flickr API key: ")
		key, err = readSecret()
		if err != nil {
			ui.PrintError("Failed to read API key", err.Error())
			os.Exit(1)
		}

		// Basic validation
		if !apikey.IsValidKey(key) {
			fmt.Println("\n❌ That doesn't look like a valid API key.")
			fmt.Println("   It should be a single token of at least 8 characters.")
			fmt.Println("   Example: 9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d")
			fmt.Print("\nTry again? (Y/n): ")
			retry, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(retry)) == "n" {
				os.Exit(1)
			}
			continue
		}
		break
	}

	// Show what we're about to do
	fmt.Println("\n📋 Summary:")
	fmt.Printf("   API key: %s\n", apikey.Mask(key))

	// Store the key
	fmt.Println("\n💾 Storing API key securely...")
	if err := resolver.Store(key); err != nil {
		ui.PrintError("Failed to store API key", err.Error())
		os.Exit(1)
	}

	fmt.Println("\n🎉 API key stored successfully!")
	ui.PrintSuccess("API key saved: " + apikey.Mask(key))

	// Show where the key went
	fmt.Println("\n🔒 Security Information:")
	fmt.Println("   Your API key is encrypted and stored in:")
	if apikey.IsKeyringAvailable() {
		fmt.Println("   • System keychain (primary)")
	} else {
		fmt.Println("   • Encrypted file")
	}

	// Show how to use
	fmt.Println("\n📖 Quick Start Guide:")
	fmt.Println("   Download photos for any search word:")
	fmt.Println("   $ flickrget fetch <word>")
	fmt.Println("\n   Example:")
	fmt.Println("   $ flickrget fetch cat")
	fmt.Println("\n   Show more options:")
	fmt.Println("   $ flickrget fetch --help")
}

func runShow(cmd *cobra.Command, args []string) {
	resolver := newAuthResolver()

	key, err := resolver.Resolve()
	if err != nil {
		ui.PrintInfo("No API key stored", "Use 'flickrget auth login' to add one")
		apikey.ShowQuickSetupGuide()
		return
	}

	ui.PrintHighlight("Flickr API Key")
	fmt.Println()
	fmt.Printf("   Key: %s\n", apikey.Mask(key))
	fmt.Println("\nSources checked, in order:")
	for i, name := range resolver.Sources() {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func runRemove(cmd *cobra.Command, args []string) {
	resolver := newAuthResolver()

	key, err := resolver.Resolve()
	if err != nil {
		ui.PrintError("No stored API key found", "")
		return
	}

	// Confirm deletion
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("Remove API key %s? (y/N): ", apikey.Mask(key))
	input, _ := reader.ReadString('\n')
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
		return
	}

	if err := resolver.Delete(); err != nil {
		if errors.Is(err, apikey.ErrKeyNotFound) {
			ui.PrintWarning("No key stored in a writable source",
				"keys in key files or the environment must be removed by hand")
			return
		}
		ui.PrintError("Failed to remove API key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("API key removed")
}

// readSecret reads a secret from stdin without echoing
func readSecret() (string, error) {
	// Try to read without echo
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after hidden input
		if err == nil {
			return strings.TrimSpace(string(secret)), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
