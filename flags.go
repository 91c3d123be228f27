package sapling

// Flags is the per-node state bit set.
type Flags uint8

const (
	FlagDirty             Flags = 1 << iota // relative values are stale
	FlagRotationCenterSet                   // rotate about the explicit center instead of the box center
	FlagDistanceRelative                    // local position is scaled by the relative scale
	FlagHidden                              // excluded (with its subtree) from queries
	FlagFree                                // slot is unused and may be reused

	// flagIndexStale marks a root whose spatial index needs a refresh. Unlike
	// FlagDirty it survives a minimal clean.
	flagIndexStale
)

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// set returns f with f2 set or cleared.
func (f Flags) set(f2 Flags, on bool) Flags {
	if on {
		return f | f2
	}
	return f &^ f2
}
