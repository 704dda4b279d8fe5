// Package download runs the selected jobs through lux and reports their
// progress.
//
// # Pipeline
//
// Two goroutines are connected by a bounded Channel:
//
//  1. Driver fetches the jobs strictly one after another, in list order,
//     and sends a start and an outcome message per job, then Complete
//  2. Sink receives the messages and renders them on a Console until it
//     sees Complete, then prints the completion banner
//
// The Driver never writes to the terminal itself, so status lines come out
// in the order they were produced.
//
// # Basic Usage
//
//	client := lux.NewClient(settings.ToolPath, runner.NewExec(settings.OutputDir))
//	manager := download.NewManager(settings, client, download.NewTextConsole(os.Stdout))
//
//	err := manager.StartDownloads(ctx, plan)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Failures
//
// A job whose lux process exits non-zero, or cannot be started, is reported
// with lux's diagnostic output and skipped. Jobs are never retried.
//
// If the Sink has gone away, status messages that cannot be delivered are
// written to the zap logger instead and the remaining jobs still run.
package download
