// assets/embed.go
//
// Embedded resources: the default root word list, the bundled English
// dictionary, and the SQLite migrations.

package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed start.txt dictionary.txt sql/*.sql
var FS embed.FS

// ReadLines returns the words of the embedded file name, as ScanWords does.
func ReadLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ScanWords(f)
}

// ScanWords reads one word per line from r. Lines are trimmed and lowercased;
// blank lines and lines starting with '#' are skipped.
func ScanWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// RootList returns the default root words.
func RootList() ([]string, error) {
	return ReadLines("start.txt")
}

// DictionaryList returns the bundled English dictionary.
func DictionaryList() ([]string, error) {
	return ReadLines("dictionary.txt")
}

// Migrations exposes the sql directory for the migration runner.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "sql" is a literal.
		panic(err)
	}
	return sub
}
