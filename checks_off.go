//go:build arena_release

package arena

// In release builds delegated handles keep their bookkeeping but no longer
// compare generations.
const checksEnabled = false
