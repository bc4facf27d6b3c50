package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodePage normalizes the list shapes the backend has served over time:
// a bare array, {"items": [...]}, or {"<key>": [...]} with optional
// total/offset/limit (skip is accepted as an alias of offset).
func decodePage[T any](raw []byte, key string, req ListRequest) (Page[T], error) {
	page := Page[T]{Items: []T{}, Offset: req.Offset, Limit: req.limit()}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		page.Total = page.Offset
		return page, nil
	}

	var items []T
	total := -1

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page, fmt.Errorf("decode response: %w", err)
		}
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return page, fmt.Errorf("decode response: %w", err)
		}
		for _, name := range []string{key, "items", "data", "results"} {
			field, ok := envelope[name]
			if !ok || name == "" {
				continue
			}
			if err := json.Unmarshal(field, &items); err != nil {
				return page, fmt.Errorf("decode %s: %w", name, err)
			}
			break
		}
		if n, ok := intField(envelope, "total"); ok {
			total = n
		}
		if n, ok := intField(envelope, "offset"); ok {
			page.Offset = n
		} else if n, ok := intField(envelope, "skip"); ok {
			page.Offset = n
		}
		if n, ok := intField(envelope, "limit"); ok && n > 0 {
			page.Limit = n
		}
	default:
		return page, fmt.Errorf("decode response: unexpected list payload %q", truncateDetail(string(trimmed)))
	}

	if len(items) > req.limit() {
		items = items[:req.limit()]
	}
	if items != nil {
		page.Items = items
	}
	if total < 0 {
		total = page.Offset + len(page.Items)
	}
	page.Total = total
	return page, nil
}

func intField(envelope map[string]json.RawMessage, name string) (int, bool) {
	field, ok := envelope[name]
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(field, &n); err != nil {
		return 0, false
	}
	return n, true
}

// decodeWrite accepts either {"message", "success"} or the affected record.
func decodeWrite(raw []byte) (WriteResult, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return WriteResult{Success: true}, nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return WriteResult{}, fmt.Errorf("decode response: %w", err)
	}
	_, hasSuccess := envelope["success"]
	_, hasMessage := envelope["message"]
	if !hasSuccess && !hasMessage {
		return WriteResult{Success: true, Record: json.RawMessage(trimmed)}, nil
	}
	var result WriteResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return WriteResult{}, fmt.Errorf("decode response: %w", err)
	}
	if !hasSuccess {
		result.Success = true
	}
	if data, ok := envelope["data"]; ok {
		result.Record = data
	}
	return result, nil
}
