package report

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ToJSON renders r as deterministic JSON: keys are sorted recursively so
// two runs over the same Report produce byte-identical output.
// Ported from internal/errors/json_encoder.go's MarshalDeterministic (see
// DESIGN.md), inlined here rather than pulled in as a separate schema
// package since this repo's Report has no other consumer.
func (r *Report) ToJSON(compact bool) (string, error) {
	data, err := marshalDeterministic(r)
	if err != nil {
		return "", err
	}
	if compact {
		return string(data), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func marshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		// Not decodable into a generic tree (shouldn't happen for Report);
		// fall back to the already-produced bytes.
		return data, nil
	}
	return marshalSorted(generic)
}

func marshalSorted(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := encodeScalar(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			valJSON, err := marshalSorted(val[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valJSON)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			itemJSON, err := marshalSorted(item)
			if err != nil {
				return nil, err
			}
			buf.Write(itemJSON)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return encodeScalar(val)
	}
}

func encodeScalar(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
