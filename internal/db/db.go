package db

// DB is the storage port handed to repositories. Conn exposes the
// driver-specific handle (e.g. *gorm.DB) so adapters can be swapped.
type DB interface {
	Conn() any
	Close() error
}
