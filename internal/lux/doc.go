// Package lux fronts the lux executable, which does all extraction and
// transfer work.
//
// Two invocations are used:
//
//	lux -j <url-or-code>                                   # Extract
//	lux -f <stream-id> -n <threads> -items <n> -p <url>    # Fetch
//
// Extract turns the JSON printed by the first form into model.SourceItem
// values (see the dto subpackage for the wire shapes). Fetch runs the
// second form for a single item and reports lux's exit status and output.
//
// Commands go through a runner.Runner so tests can swap lux for a fake.
package lux
