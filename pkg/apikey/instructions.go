package apikey

import (
	"fmt"
	"strings"
)

// ShowKeySetupGuide displays step-by-step instructions for obtaining a Flickr API key
func ShowKeySetupGuide() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("🔑 FLICKR API KEY SETUP GUIDE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Println("This tool needs a Flickr API key to search for photos.")
	fmt.Println("Follow these steps to get one:")
	fmt.Println()

	fmt.Println("🌐 STEP 1: Sign in to Flickr")
	fmt.Println("   - Go to https://www.flickr.com")
	fmt.Println("   - Log in or create a free account")
	fmt.Println()

	fmt.Println("📝 STEP 2: Request an API key")
	fmt.Println("   - Go to https://www.flickr.com/services/apps/create/")
	fmt.Println("   - Click 'Request an API Key'")
	fmt.Println("   - Choose 'Apply for a non-commercial key' for personal use")
	fmt.Println("   - Fill in a short name and description for your app")
	fmt.Println()

	fmt.Println("📋 STEP 3: Copy the key")
	fmt.Println("   - The confirmation page shows a Key and a Secret")
	fmt.Println("   - You only need the Key (a 32-character hex string)")
	fmt.Println("   - Example: 9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d")
	fmt.Println()

	fmt.Println("💾 STEP 4: Store it")
	fmt.Println("   • Recommended: flickrget auth login (stores it securely)")
	fmt.Printf("   • Environment:  export %s=<your key>\n", EnvKeyVariable)
	fmt.Println("   • Key file:     first line of the file passed via --key-file")
	fmt.Println()

	fmt.Println("💡 TIPS:")
	fmt.Println("   • The key identifies your app; keep it out of version control")
	fmt.Println("   • Flickr rate-limits each key to 3600 queries per hour")
	fmt.Println("   • You can view your existing keys at https://www.flickr.com/services/api/keys/")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
}

// ShowQuickSetupGuide shows a condensed version for experienced users
func ShowQuickSetupGuide() {
	fmt.Println("\n🔑 Quick guide: https://www.flickr.com/services/apps/create/ → Request an API Key → copy the Key")
	fmt.Println("   Then: flickrget auth login")
}
