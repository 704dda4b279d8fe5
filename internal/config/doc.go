// Package config provides configuration management for lux-downloader.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a JSON file with environment overrides
//   - Saving settings back to disk
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Runs "lux" from PATH
//	// Thread count prompt defaults to "4"
//	// Status queue holds 100 messages
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // The file exists but could not be read or decoded
//	}
//
// Every key can be overridden from the environment with the LUXDL_ prefix:
//
//	LUXDL_TOOL_PATH=/opt/lux/lux LUXDL_LOG_LEVEL=debug lux-dl
//
// # Saving Settings
//
//	settings.OutputDir = "/home/user/Videos"
//	err := settings.Save("/path/to/config.json")
package config
