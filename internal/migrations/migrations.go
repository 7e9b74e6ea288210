// Package migrations embeds the PostgreSQL and SQLite schemas.
package migrations

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.sql sqlite/*.sql
var files embed.FS

// Up returns the contents of every PostgreSQL *.up.sql file in apply order.
func Up() ([]string, error) {
	return upScripts(".")
}

// SQLiteUp is Up for the local SQLite session file.
func SQLiteUp() ([]string, error) {
	return upScripts("sqlite")
}

func upScripts(dir string) ([]string, error) {
	names, err := fs.Glob(files, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, strings.TrimSpace(string(data)))
	}

	return scripts, nil
}
