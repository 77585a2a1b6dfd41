package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// formatVersion tags the serialized layout. Readers accept any document whose
// format is not newer than theirs; new fields never bump it because unknown
// and missing leaves are tolerated.
const formatVersion = 1

// ErrNewerFormat is returned for documents written by a newer release.
var ErrNewerFormat = errors.New("options format is newer than supported")

const (
	keyFormat  = "schema"
	keyVersion = "version"
	keyOptions = "options"
)

// leaf is one decoded tab/section/key value, not yet checked against a schema.
type leaf struct {
	tab     entity.Tab
	section string
	key     string
	value   entity.Value
}

type decodedDocument struct {
	format  int64
	version int64
	leaves  []leaf
	skipped []string
}

// encodeDocument serializes doc as TOML:
//
//	schema = 1
//	version = 4
//
//	[options.styling_options.styling]
//	opacity_slider_amount = 80
//
// Map keys are emitted sorted, so equal documents encode to equal bytes.
func encodeDocument(doc *entity.OptionsDocument, version int64) ([]byte, error) {
	options := make(map[string]any)
	for _, tab := range doc.Tabs() {
		sections := make(map[string]any)
		for section, fields := range doc.Tab(tab) {
			leaves := make(map[string]any, len(fields))
			for key, v := range fields {
				leaves[key] = v.Interface()
			}
			sections[section] = leaves
		}
		options[string(tab)] = sections
	}

	root := map[string]any{
		keyFormat:  int64(formatVersion),
		keyVersion: version,
		keyOptions: options,
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeDocument parses serialized bytes. Structural problems return an error;
// individual malformed leaves are skipped and reported by path.
func decodeDocument(data []byte) (*decodedDocument, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}

	format, ok := root[keyFormat].(int64)
	if !ok {
		return nil, fmt.Errorf("options document has no %q tag", keyFormat)
	}
	if format > formatVersion {
		return nil, fmt.Errorf("%w: got %d, support %d", ErrNewerFormat, format, formatVersion)
	}

	out := &decodedDocument{format: format}
	if v, ok := root[keyVersion].(int64); ok {
		out.version = v
	}

	rawOptions, ok := root[keyOptions]
	if !ok {
		return out, nil
	}
	options, ok := rawOptions.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("options table has unexpected type %T", rawOptions)
	}

	for tabName, rawSections := range options {
		sections, ok := rawSections.(map[string]any)
		if !ok {
			out.skipped = append(out.skipped, tabName)
			continue
		}
		for sectionName, rawFields := range sections {
			fields, ok := rawFields.(map[string]any)
			if !ok {
				out.skipped = append(out.skipped, tabName+"."+sectionName)
				continue
			}
			for key, rawValue := range fields {
				v, err := entity.ValueFromInterface(rawValue)
				if err != nil {
					out.skipped = append(out.skipped, tabName+"."+sectionName+"."+key)
					continue
				}
				out.leaves = append(out.leaves, leaf{
					tab:     entity.Tab(tabName),
					section: sectionName,
					key:     key,
					value:   v,
				})
			}
		}
	}

	return out, nil
}
