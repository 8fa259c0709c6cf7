package ruleset

// ResourceTier lists the additional equipment a character owns at or above Minimum resource rating.
type ResourceTier struct {
	Minimum int      `yaml:"minimum"`
	Items   []string `yaml:"items"`
}

type resourceFile struct {
	Tiers []*ResourceTier `yaml:"tiers"`
}
