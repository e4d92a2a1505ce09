package mem

// ArenaStats is a snapshot of arena usage.
type ArenaStats struct {
	Segments    int     // Live segments
	Used        int     // Bytes reserved, alignment padding included
	Capacity    int     // Total mapped bytes
	SegmentSize int     // Default segment size
	Utilization float64 // Used / Capacity (0.0-1.0)
}

// Stats returns a snapshot of the arena's usage.
func (a *Arena) Stats() ArenaStats {
	s := ArenaStats{
		Segments:    len(a.segments),
		SegmentSize: a.segmentSize,
	}
	for _, seg := range a.segments {
		s.Used += seg.used
		s.Capacity += len(seg.data)
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	return s
}
