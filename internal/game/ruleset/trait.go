package ruleset

// Benefit is a selectable advantage. Most benefits are narrative only; the few
// with numeric effects are applied during character assembly.
//
// Precondition: ID and Name must be non-empty after loading.
type Benefit struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// EntityID returns the benefit identifier.
func (b *Benefit) EntityID() string { return b.ID }

// DisplayName returns the benefit name.
func (b *Benefit) DisplayName() string { return b.Name }

// Burden is a selectable disadvantage.
//
// Precondition: ID and Name must be non-empty after loading.
type Burden struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// EntityID returns the burden identifier.
func (b *Burden) EntityID() string { return b.ID }

// DisplayName returns the burden name.
func (b *Burden) DisplayName() string { return b.Name }

type benefitFile struct {
	Benefits []*Benefit `yaml:"benefits"`
}

type burdenFile struct {
	Burdens []*Burden `yaml:"burdens"`
}
