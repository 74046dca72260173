package types

// Identifiable is anything with a stable display identifier, usually a file path.
type Identifiable interface {
	ID() string
}

// Validatable checks itself and returns every violation found.
// Implementations must not panic; faults are reported as failures.
type Validatable interface {
	Validate() []Failure
}

// Item is a validatable target description, as produced by a loader.
type Item interface {
	Identifiable
	Validatable
}

// StaticItem is an item whose validation outcome is already known,
// e.g. an entry read from a results manifest.
type StaticItem struct {
	Path     string
	Failures []Failure
}

// ID returns the item path.
func (s StaticItem) ID() string {
	return s.Path
}

// Validate returns a copy of the recorded failures.
func (s StaticItem) Validate() []Failure {
	if len(s.Failures) == 0 {
		return nil
	}
	out := make([]Failure, len(s.Failures))
	copy(out, s.Failures)
	return out
}

// ItemFunc adapts a function into an Item.
type ItemFunc struct {
	Name  string
	Check func() []Failure
}

// ID returns the item name.
func (f ItemFunc) ID() string {
	return f.Name
}

// Validate calls Check. A nil Check passes.
func (f ItemFunc) Validate() []Failure {
	if f.Check == nil {
		return nil
	}
	return f.Check()
}
