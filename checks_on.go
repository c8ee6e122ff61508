//go:build !arena_release

package arena

// checksEnabled turns on the borrow generation check of delegated handles.
// Build with -tags arena_release to drop it.
const checksEnabled = true
