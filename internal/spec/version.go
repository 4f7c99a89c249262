package spec

const (
	// Version of the scan report layout. Bump it when fields are renamed or removed.
	Version = "1.0"
)
