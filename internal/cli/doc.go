// Package cli builds the command line front-end shared by lux-dl and
// lux-tui.
//
// # Flow
//
// A run loads settings, applies flag overrides, sets up logging, asks the
// user what to download and then hands the confirmed plan to the download
// pipeline:
//
//	os.Exit(cli.Execute("lux-dl", cli.ViewText))
//
// The two binaries differ only in the console the pipeline writes to:
// ViewText prints plain status lines, ViewLive shows a Bubble Tea view.
//
// # Exit status
//
//   - 0: downloads processed (individual failures included) or the user
//     declined the confirmation
//   - 1: configuration error, or the extractor output could not be read
//   - 130: interrupted
package cli
