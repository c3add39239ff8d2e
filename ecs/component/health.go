package component

// Health is mutated only through system.TakeDamage and system.Heal.
type Health struct {
	Current int
	Max     int
	// IFrames is the remaining post-hit invulnerability in seconds.
	IFrames float64
	// IFrameDuration is granted after every damaging hit. Zero disables it.
	IFrameDuration float64
}

// NewHealth creates a full Health. A non-positive max becomes 1.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// Fraction returns Current/Max in [0,1].
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()
