package items

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

const (
	prettyIndent = "    "
	fileMode     = 0o644
)

// Decode parses one item from JSON text
func Decode(data []byte) (*ItemRecord, error) {
	obj, err := jsonmap.ParseObject(data)
	if err != nil {
		return nil, err
	}
	return FromJSON(obj)
}

// UnmarshalJSON hydrates the record through FromJSON so json.Unmarshal applies
// the same rules as Decode.
func (r *ItemRecord) UnmarshalJSON(data []byte) error {
	rec, err := Decode(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// Encode renders the record as JSON. Pretty output is indented by four
// spaces; compact output is a single line. HTML characters are not escaped
// since examine text routinely contains them.
func (r *ItemRecord) Encode(pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", prettyIndent)
	}

	// Marshal a plain struct copy so the field order of ItemRecord is kept
	type plain ItemRecord
	if err := enc.Encode((*plain)(r)); err != nil {
		return nil, errors.Wrapf(err, "failed to encode item %d", r.ID)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FileName is the export file name of the record
func (r *ItemRecord) FileName() string {
	return FileName(r.ID)
}

// FileName is the export file name for an item ID
func FileName(id int) string {
	return strconv.Itoa(id) + ".json"
}

// ExportJSON writes the record to <dir>/<id>.json, replacing any existing
// file. dir must already exist. The write is not atomic: a failure part way
// can leave a truncated file.
func (r *ItemRecord) ExportJSON(pretty bool, dir string) error {
	data, err := r.Encode(pretty)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return errors.IOFailuref(err, "failed to write item %d to %s", r.ID, path).
			WithMeta("item_id", r.ID).
			WithMeta("path", path)
	}
	return nil
}
