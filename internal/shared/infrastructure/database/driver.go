package database

import "strings"

// Driver represents a database backend type.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// String returns the driver name.
func (d Driver) String() string {
	return string(d)
}

// ParseDriver maps a configured driver name onto a Driver. An empty name
// or "auto" returns the zero Driver, meaning "detect from the URL".
func ParseDriver(name string) (Driver, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return "", true
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, true
	case "sqlite", "sqlite3":
		return DriverSQLite, true
	}
	return "", false
}

// DetectDriver infers the backend from a connection string. An empty URL
// selects SQLite so that taskrank runs without any setup.
func DetectDriver(url string) Driver {
	if url == "" {
		return DriverSQLite
	}

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}

	if strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		strings.HasSuffix(url, ".sqlite") ||
		strings.HasSuffix(url, ".sqlite3") {
		return DriverSQLite
	}

	return DriverPostgres
}

// IsValid reports whether d is a known driver.
func (d Driver) IsValid() bool {
	return d == DriverPostgres || d == DriverSQLite
}
