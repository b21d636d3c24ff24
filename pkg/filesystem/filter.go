package filesystem

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
)

// FileInfo is the view of a file the filter DSL evaluates against. It is built from the walk
// entries so filtering never requires an extra stat call.
type FileInfo struct {
	Path  string    // Slash-relative file path
	Name  string    // Base name of the file
	Size  int64     // File size in bytes
	Perm  uint32    // Permission bits (mode & 0777)
	Mtime time.Time // Modification time
}

var (
	// permOctRe allows 3-4 octal digits with an optional leading zero, matching the chmod style
	// notation users expect for permissions like 644 or 0644. The rewrite is scoped to perm so
	// plain decimal limits elsewhere (like sizes) are not clobbered.
	permOctRe = regexp.MustCompile(`\b(?i)(perm)\s*(==|!=|<=|>=|<|>)\s*(0?[0-7]{3,4})\b`)
	timeRe    = regexp.MustCompile(`\b(?i)(mtime)\s*(<=|>=|<|>)\s*([0-9]+(?:\.[0-9]+)?[smhdwMy])\b`)
	sizeRe    = regexp.MustCompile(`\b(?i)(size)\s*(<=|>=|<|>|!=|==)\s*([0-9]+(?:\.[0-9]+)?(?:B|KB|MB|GB|TB|KiB|MiB|GiB|TiB))\b`)
	identRe   = regexp.MustCompile(`\b(?i)(mtime|size|name|path|perm)\b`)
	fieldMap  = map[string]string{
		"mtime": "Mtime", "size": "Size", "name": "Name", "path": "Path", "perm": "Perm",
	}
	unitFactors = map[string]float64{
		"B":  1,
		"KB": 1e3, "MB": 1e6, "GB": 1e9, "TB": 1e12,
		"KiB": 1 << 10, "MiB": 1 << 20, "GiB": 1 << 30, "TiB": 1 << 40,
	}
)

const FilterFilesHelp = "Filter files by expression: fields(name/path <string>, " +
	"perm <octal[like 644, 0644]>, mtime <duration[like 1s, 2m, 3h, 4d, 2w, 5M, 10y]>, " +
	"size <bytes[like 1B, 2KB, 3MiB, 4GiB]>); operators(==,!=,<,>,<=,>=); " +
	"helpers(glob([name|path], pattern), regex([name|path], pattern)); logic(and|or|not); " +
	"Example: --filter-files=\"mtime < 30d and glob(name, '*.txt')\""

type FileInfoFilter func(FileInfo) (bool, error)

// CompileFilter turns a DSL expression into a filter function.
func CompileFilter(query string) (FileInfoFilter, error) {
	q := preprocessDSL(query)

	prog, err := expr.Compile(q,
		expr.Env(FileInfo{}),
		expr.Function("ago", func(params ...any) (any, error) { return ago(params[0].(string)) }),
		expr.Function("bytes", func(params ...any) (any, error) { return parseBytes(params[0].(string)) }),
		expr.Function("glob", func(params ...any) (any, error) { return globMatch(params[0].(string), params[1].(string)) }),
		expr.Function("regex", func(params ...any) (any, error) { return regexMatch(params[0].(string), params[1].(string)) }),
		expr.Function("now", func(params ...any) (any, error) { return time.Now(), nil }),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", query, err)
	}

	return func(fi FileInfo) (bool, error) {
		out, err := expr.Run(prog, fi)
		if err != nil {
			return false, fmt.Errorf("filter eval %q on %s: %w", query, fi.Path, err)
		}
		result, ok := out.(bool)
		if !ok {
			return false, fmt.Errorf("filter expression resulted in a non-boolean value of type %T. Make sure your filter is a valid comparison (e.g., 'size>100MB')", out)
		}
		return result, nil
	}, nil
}

// preprocessDSL applies all DSL to Go rewrites so operators compare like types.
func preprocessDSL(q string) string {
	// chmod-style octal to decimal
	q = permOctRe.ReplaceAllStringFunc(q, func(m string) string {
		parts := permOctRe.FindStringSubmatch(m)
		val, err := strconv.ParseUint(parts[3], 8, 32)
		if err != nil {
			return m
		}
		return fmt.Sprintf("%s %s %d", parts[1], parts[2], val)
	})

	// Time comparisons are expressed relative to now: 'mtime > 30d' selects files modified more
	// than 30 days ago, so the operator flips when rewritten against the shifted instant.
	q = timeRe.ReplaceAllStringFunc(q, func(m string) string {
		parts := timeRe.FindStringSubmatch(m)
		flipped := map[string]string{">": "<", ">=": "<=", "<": ">", "<=": ">="}[parts[2]]
		return fmt.Sprintf("%s %s ago(%q)", parts[1], flipped, parts[3])
	})

	// size literals
	q = sizeRe.ReplaceAllStringFunc(q, func(m string) string {
		parts := sizeRe.FindStringSubmatch(m)
		return fmt.Sprintf("%s %s bytes(%q)", parts[1], parts[2], parts[3])
	})

	// field names
	q = identRe.ReplaceAllStringFunc(q, func(m string) string {
		if goField, ok := fieldMap[strings.ToLower(m)]; ok {
			return goField
		}
		return m
	})
	return q
}

var durationUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
	'M': 30 * 24 * time.Hour,
	'y': 365 * 24 * time.Hour,
}

func ago(s string) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	unit, ok := durationUnits[s[len(s)-1]]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid duration unit in %q", s)
	}
	value, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Now().Add(-time.Duration(value * float64(unit))), nil
}

func parseBytes(s string) (int64, error) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	factor, ok := unitFactors[s[i:]]
	if !ok {
		return 0, fmt.Errorf("invalid size unit in %q", s)
	}
	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(value * factor), nil
}

func globMatch(value string, pattern string) (bool, error) {
	match, err := doublestar.Match(pattern, value)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return match, nil
}

func regexMatch(value string, pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	return re.MatchString(value), nil
}
