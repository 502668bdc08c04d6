package di

// RegistrationMode determines how an entry is resolved.
type RegistrationMode int

const (
	Value     RegistrationMode = iota // Precomputed constant
	Singleton                         // Constructed on first resolve, then cached
	Instance                          // Constructed on every resolve
)

func (m RegistrationMode) String() string {
	switch m {
	case Value:
		return "value"
	case Singleton:
		return "singleton"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}

// MarshalText renders the mode by name so introspection output stays readable.
func (m RegistrationMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
