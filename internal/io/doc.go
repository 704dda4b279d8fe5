// Package ioutils prepares the directory downloads are written to.
//
// lux writes its files into its working directory, so the configured
// output directory is resolved and created up front and then used as the
// working directory of every lux invocation:
//
//	dir, err := ioutils.PrepareOutputDir("~/Videos/lux")
//	// dir == "/home/me/Videos/lux", created if missing
//
// An empty output directory means "stay in the current directory".
package ioutils
