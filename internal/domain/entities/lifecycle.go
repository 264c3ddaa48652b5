package entities

// Lifecycle selects rows by their soft-delete state. Every read of a
// soft-deletable aggregate passes one explicitly.
type Lifecycle int

const (
	LifecycleActive Lifecycle = iota
	LifecycleInactive
	LifecycleAny
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleActive:
		return "active"
	case LifecycleInactive:
		return "inactive"
	default:
		return "any"
	}
}

// Matches reports whether a row with the given active flag is selected.
func (l Lifecycle) Matches(isActive bool) bool {
	switch l {
	case LifecycleActive:
		return isActive
	case LifecycleInactive:
		return !isActive
	default:
		return true
	}
}
