package domain

// AggregateStats counts classification outcomes during one aggregation
// pass. Every counter is recomputable from the returned structures:
// Graphs, Maps and ContinentMaps by summing list lengths, Unmatched and
// UnresolvedRegions from the not-matched list.
type AggregateStats struct {
	Graphs            int
	Maps              int
	ContinentMaps     int
	Unmatched         int
	UnresolvedRegions int
}

// EditStats counts the outcomes of one categorization run.
type EditStats struct {
	Added             int
	Skipped           int
	Errors            int
	EntitiesProcessed int
	EntitiesSkipped   int
}

// Add folds per-entity stats into the run total. An entity that
// produced no work at all counts as skipped.
func (s *EditStats) Add(entity EditStats) {
	if entity.Added == 0 && entity.Skipped == 0 && entity.Errors == 0 {
		s.EntitiesSkipped++
		return
	}
	s.Added += entity.Added
	s.Skipped += entity.Skipped
	s.Errors += entity.Errors
	s.EntitiesProcessed++
}
