package surreal

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// recordID is the engine's record identifier as it appears in responses:
// either a plain "table:key" string or a structured {"tb","id"} handle.
// Decoding always normalizes to the flat string form, which is the only
// identifier shape that leaves this package.
type recordID string

func (r *recordID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = recordID(s)
		return nil
	}

	var handle struct {
		Table json.RawMessage `json:"tb"`
		Key   json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &handle); err != nil {
		return err
	}
	*r = recordID(rawString(handle.Table) + ":" + rawString(handle.Key))
	return nil
}

// rawString renders a JSON scalar without quotes; non-strings (numeric keys)
// keep their literal form.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// splitRecordID splits a "table:key" identifier. Identifiers without a
// separator are keys in the given default table; embedded separators after
// the first stay in the key, so split then rejoin round-trips any id with
// exactly one colon.
func splitRecordID(id, defaultTable string) (table, key string) {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i], id[i+1:]
	}
	return defaultTable, id
}
