package format

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v. Values go through JSON first, so
// struct json tags decide key names; object keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return err
	}
	var buf bytes.Buffer
	writeEDN(&buf, x, pretty, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func writeEDN(buf *bytes.Buffer, v any, pretty bool, depth int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case json.Number:
		buf.WriteString(t.String())
	case string:
		buf.WriteString(strconv.Quote(t))
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				sep(buf, pretty, depth+1)
			}
			writeEDN(buf, e, pretty, depth+1)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sep(buf, pretty, depth+1)
			}
			buf.WriteString(keyword(k))
			buf.WriteByte(' ')
			writeEDN(buf, t[k], pretty, depth+1)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(strconv.Quote("unsupported"))
	}
}

func sep(buf *bytes.Buffer, pretty bool, depth int) {
	if !pretty {
		buf.WriteByte(' ')
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth))
}

// keyword renders k as :k when it is a legal EDN keyword, else as a string.
func keyword(k string) string {
	if k == "" {
		return `""`
	}
	for i, r := range k {
		ok := r == '-' || r == '_' || r == '.' || r == '?' || r == '!' || r == '*' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return strconv.Quote(k)
		}
	}
	return ":" + k
}
