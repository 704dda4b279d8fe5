package model

// Plan is everything the download pipeline needs once the user confirmed
// their choices.
type Plan struct {
	// Source is the URL or code the user entered.
	Source string

	// Threads is the thread count passed to lux, as typed by the user.
	Threads string

	// Jobs are the chosen streams in download order.
	Jobs []SelectedJob
}
