package config

// DomainConfig holds all configurable assembly and layout constants
type DomainConfig struct {
	// Force model
	RepulsionStrength  float64
	AttractionStrength float64
	GravityStrength    float64
	DampingFactor      float64
	MinNodeSpacing     float64

	// MinDistance floors every pairwise distance before it is used as a
	// force denominator, so coincident nodes never divide by zero.
	MinDistance float64

	// Barnes-Hut approximation
	Theta              float64
	BarnesHutThreshold int
	MaxQuadDepth       int

	// Simulation loop
	DefaultIterations int
	YieldInterval     int
	MinTemperature    float64

	// Initial placement
	ClusterRingFactor float64
	ClusterSpread     float64
	SpiralSpacing     float64

	// Fixed edge weights
	BusinessContextWeight float64
	ReferralWeight        float64
	RecruitingWeight      float64
	FamilyWeight          float64
	MentionWeight         float64

	// Count-to-weight divisors; weight = min(1, count/divisor)
	CoAttendanceDivisor  float64
	CommunicationDivisor float64
	CoMentionDivisor     float64
}

// DefaultDomainConfig returns the default assembly and layout configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Force model
		RepulsionStrength:  6000.0,
		AttractionStrength: 0.02,
		GravityStrength:    0.03,
		DampingFactor:      0.85,
		MinNodeSpacing:     60.0,
		MinDistance:        1.0,

		// Barnes-Hut: direct pairwise evaluation below the threshold is
		// simpler to reason about and fast enough at small scale
		Theta:              0.8,
		BarnesHutThreshold: 500,
		MaxQuadDepth:       40,

		// Simulation loop
		DefaultIterations: 300,
		YieldInterval:     50,
		MinTemperature:    0.01,

		// Initial placement
		ClusterRingFactor: 0.6,
		ClusterSpread:     40.0,
		SpiralSpacing:     30.0,

		// Fixed edge weights
		BusinessContextWeight: 0.8,
		ReferralWeight:        0.7,
		RecruitingWeight:      0.6,
		FamilyWeight:          0.7,
		MentionWeight:         0.3,

		// Count-to-weight divisors
		CoAttendanceDivisor:  10.0,
		CommunicationDivisor: 20.0,
		CoMentionDivisor:     5.0,
	}
}
