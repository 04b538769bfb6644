package storage

import (
	"context"
	"fmt"
	"strings"
)

// Options selects and configures the concrete backend
type Options struct {
	Driver    string // "json", "sqlite" o "mongo"
	DataDir   string // backend json
	SQLiteDSN string // backend sqlite
	MongoURL  string // backend mongo
	DBName    string // backend mongo
}

// Open constructs the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", "json":
		return NewJSONStore(opts.DataDir)
	case "sqlite", "sqlite3":
		return OpenSQLStore(ctx, opts.SQLiteDSN)
	case "mongo", "mongodb":
		return OpenMongoStore(ctx, opts.MongoURL, opts.DBName)
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido %q", opts.Driver)
	}
}
