package loom

// Batch groups multiple signal writes into one notification pass.
// Listeners dirtied inside the batch are marked once, after fn returns,
// deduplicated by ID. Batches nest; only the outermost flushes.
func Batch(fn func()) {
	ctx := getTrackingContext()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth > 0 {
			return
		}

		updates := drainPendingUpdates()
		seen := make(map[uint64]bool, len(updates))
		for _, l := range updates {
			if seen[l.ID()] {
				continue
			}
			seen[l.ID()] = true
			l.MarkDirty()
		}
	}()

	fn()
}
