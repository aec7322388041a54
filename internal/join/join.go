// Package join attaches referenced documents to primary documents, falling
// back to a placeholder when a reference cannot be resolved.
package join

import "jobboard/internal/store"

// Key describes one reference: primary.Data[Field] is looked up in the
// Target collection's records and exposed under Name.
type Key struct {
	Name    string
	Field   string
	Target  string
	Default store.Document
}

type Enriched struct {
	Primary store.Document
	Refs    map[string]store.Document
	// Missing lists the key names that fell back to their default.
	Missing []string
}

// Ref returns the resolved document for the key name.
func (e Enriched) Ref(name string) store.Document {
	return e.Refs[name]
}

func (e Enriched) IsMissing(name string) bool {
	for _, m := range e.Missing {
		if m == name {
			return true
		}
	}
	return false
}

// Join resolves every key for primary against records, which is keyed by
// target collection and then document id.
func Join(primary store.Document, records map[string]map[string]store.Document, keys []Key) Enriched {
	e := Enriched{Primary: primary, Refs: make(map[string]store.Document, len(keys))}
	for _, k := range keys {
		id := primary.String(k.Field)
		if d, ok := records[k.Target][id]; ok && id != "" {
			e.Refs[k.Name] = d
			continue
		}
		def := k.Default
		if def.ID == "" {
			def.ID = id
		}
		e.Refs[k.Name] = def
		e.Missing = append(e.Missing, k.Name)
	}
	return e
}

// All joins every primary in order.
func All(primaries []store.Document, records map[string]map[string]store.Document, keys []Key) []Enriched {
	out := make([]Enriched, 0, len(primaries))
	for _, p := range primaries {
		out = append(out, Join(p, records, keys))
	}
	return out
}

// Values collects the non-empty values of field across docs, in order, for
// use as a batch id list.
func Values(docs []store.Document, field string) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if v := d.String(field); v != "" {
			out = append(out, v)
		}
	}
	return out
}
