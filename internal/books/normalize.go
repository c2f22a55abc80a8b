package books

import "strings"

// Result-list and field key variants observed across API deployments.
// Probing stays inside this file; nothing else in the app touches raw
// response shapes.
var (
	listKeys     = []string{"items", "documents", "results", "docs"}
	titleKeys    = []string{"title", "name"}
	authorKeys   = []string{"author", "authors", "author_name"}
	pubKeys      = []string{"publisher", "publishers"}
	isbnKeys     = []string{"isbn13", "isbn_13", "isbn", "id", "key"}
	coverKeys    = []string{"cover_url", "cover", "image", "thumbnail"}
	synopsisKeys = []string{"description", "intro", "summary", "synopsis"}
)

func normalizeResults(payload map[string]any) []Record {
	var items []any
	for _, k := range listKeys {
		if v, ok := payload[k].([]any); ok {
			items = v
			break
		}
	}

	records := make([]Record, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rec := normalizeRecord(m)
		if rec.Title == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func normalizeRecord(m map[string]any) Record {
	rec := Record{
		Title:     firstString(m, titleKeys),
		Author:    firstName(m, authorKeys),
		Publisher: firstName(m, pubKeys),
		ISBN:      firstName(m, isbnKeys),
		CoverURL:  firstString(m, coverKeys),
	}

	intro := firstString(m, synopsisKeys)
	if intro == "" {
		// Some deployments nest the text under {"value": "..."}.
		for _, k := range synopsisKeys {
			if sub, ok := m[k].(map[string]any); ok {
				if v, ok := sub["value"].(string); ok {
					intro = v
					break
				}
			}
		}
	}
	if strings.HasPrefix(intro, "http://") || strings.HasPrefix(intro, "https://") {
		rec.SynopsisURL = intro
	} else {
		rec.Synopsis = strings.TrimSpace(intro)
	}

	return rec
}

// firstString returns the first non-empty string value among the keys.
func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstName handles the author/publisher variants: a plain string, a
// list of strings, or a list of {"name": ...} objects.
func firstName(m map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			var names []string
			for _, e := range v {
				switch el := e.(type) {
				case string:
					if el != "" {
						names = append(names, el)
					}
				case map[string]any:
					if n, ok := el["name"].(string); ok && n != "" {
						names = append(names, n)
					}
				}
			}
			if len(names) > 0 {
				return strings.Join(names, ", ")
			}
		}
	}
	return ""
}
