// Package ui provides terminal output helpers for the flickrget CLI
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                    // Print ASCII logo
ui.PrintInfo("Search word", "cat")                // Cyan label with yellow value
ui.PrintSuccess("[FETCH COMPLETED SUCCESSFULLY]") // Green success message
ui.PrintError("FETCH FAILED", err)                // Red error message
ui.PrintWarning("No API key stored")              // Yellow warning message
ui.PrintHighlight("[INITIATING FETCH SEQUENCE]")  // Magenta highlight message

// Quiet mode (suppresses everything except errors)
ui.SetQuietMode(true)
if ui.IsQuietMode() {
    // Only PrintError output reaches the terminal now
}
ui.SetColorEnabled(false)                         // Strip ANSI codes

// Notifications (cross-platform)
notifier := ui.NewNotifier()
notifier.SendSuccess("flickrget", "Fetch completed: 140 images")
notifier.SendError("flickrget", "Fetch failed: no API key")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("Word"), ui.Yellow("cat"))
fmt.Println(ui.Green("✓ Saved"))
fmt.Println(ui.Red("✗ Failed"))
*/
