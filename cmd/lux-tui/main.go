package main

import (
	"os"

	"github.com/handiism/lux-downloader/internal/cli"
)

func main() {
	os.Exit(cli.Execute("lux-tui", cli.ViewLive))
}
