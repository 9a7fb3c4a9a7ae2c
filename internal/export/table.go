package export

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Field is one key/value cell of a flat export row.
type Field struct {
	Key   string
	Value string
}

// Row is an ordered flat record. Rows in one table may carry different
// key sets; the header is the union of all keys in first-seen order.
type Row []Field

func (r Row) get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Headers returns the union of keys across rows, first-seen order.
func Headers(rows []Row) []string {
	seen := make(map[string]struct{})
	headers := make([]string, 0)
	for _, row := range rows {
		for _, f := range row {
			if _, dup := seen[f.Key]; dup {
				continue
			}
			seen[f.Key] = struct{}{}
			headers = append(headers, f.Key)
		}
	}
	return headers
}

// quote always wraps the value in double quotes, doubling internal
// quotes. encoding/csv only quotes when necessary, which is why this
// writer exists.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// WriteCSV writes rows as comma-separated text: a header row of the
// key union, then one line per row with missing keys rendered as empty
// strings. Every value is quoted.
func WriteCSV(w io.Writer, rows []Row) error {
	headers := Headers(rows)

	var sb strings.Builder
	for i, h := range headers {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(h)
	}
	sb.WriteByte('\n')

	for _, row := range rows {
		for i, h := range headers {
			if i > 0 {
				sb.WriteByte(',')
			}
			v, _ := row.get(h)
			sb.WriteString(quote(v))
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}
