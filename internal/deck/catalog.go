package deck

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Catalog holds the full card pools, loaded once at startup and read-only
// afterwards.
type Catalog struct {
	Prefixes []Card
	Roots    []Card
	Suffixes []Card
}

// LoadCatalog reads a pipe-delimited card file. Each non-blank,
// non-comment line is "kind|word|definition|example". Any malformed row is
// a load error; the caller is expected to treat that as fatal.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card catalog: %w", err)
	}
	defer f.Close()

	cat := &Catalog{}
	seen := map[Kind]map[string]bool{
		KindPrefix: {},
		KindRoot:   {},
		KindSuffix: {},
	}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s:%d: expected 4 fields, got %d", path, lineNo, len(fields))
		}
		c := Card{
			Kind:       Kind(strings.TrimSpace(fields[0])),
			Word:       strings.TrimSpace(fields[1]),
			Definition: strings.TrimSpace(fields[2]),
			Example:    strings.TrimSpace(fields[3]),
		}
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("%s:%d: unknown kind %q", path, lineNo, fields[0])
		}
		if c.Word == "" {
			return nil, fmt.Errorf("%s:%d: empty word", path, lineNo)
		}
		if seen[c.Kind][c.Word] {
			return nil, fmt.Errorf("%s:%d: duplicate %s card %q", path, lineNo, c.Kind, c.Word)
		}
		seen[c.Kind][c.Word] = true
		switch c.Kind {
		case KindPrefix:
			cat.Prefixes = append(cat.Prefixes, c)
		case KindRoot:
			cat.Roots = append(cat.Roots, c)
		case KindSuffix:
			cat.Suffixes = append(cat.Suffixes, c)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read card catalog: %w", err)
	}
	if len(cat.Roots) == 0 || len(cat.Prefixes) == 0 || len(cat.Suffixes) == 0 {
		return nil, fmt.Errorf("%s: catalog needs at least one card of every kind", path)
	}
	return cat, nil
}

// Size reports how many cards of each kind are loaded.
func (c *Catalog) Size() (prefixes, roots, suffixes int) {
	return len(c.Prefixes), len(c.Roots), len(c.Suffixes)
}
