package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveChannel Phase = iota
	FetchListing
	ImportItem
	ListingDone
)

func (p Phase) String() string {
	switch p {
	case ResolveChannel:
		return "resolve_channel"
	case FetchListing:
		return "fetch_listing"
	case ImportItem:
		return "import_item"
	case ListingDone:
		return "listing_done"
	default:
		return ""
	}
}

func resolveChannelUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveChannel,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Importing all items for '%s'...", name),
	}
}

func fetchListingUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchListing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d listing items", total),
		Data:    total,
	}
}

func importItemUpdate(step, total int, itemKind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Importing %s %d of %d", itemKind, step, total),
	}
}

func listingDoneUpdate(metrics *ListingMetrics) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListingDone,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d items, %d failed", metrics.Found, metrics.Failed),
		Data:    metrics,
	}
}
