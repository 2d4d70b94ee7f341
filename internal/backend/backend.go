// Package backend selects the durable storage implementation behind the
// store's key-value slots.
package backend

// Type represents the kind of durable storage backing the slots.
type Type string

const (
	Memory Type = "memory"
	File   Type = "file"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case Memory, File, SQLite:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to open.
type Config struct {
	Type Type

	// File specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string
}
