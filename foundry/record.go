// Package foundry reads the mechanical dataset: one JSON file per
// record, organized in per-pack directory trees, each a self-describing
// attribute tree keyed by identifier.
package foundry

import (
	"encoding/json"

	"github.com/pf2fr/grimoire"
)

// Record is one raw mechanical record. It is a read-only snapshot of a
// single file; the reconciliation engine owns it afterwards.
type Record struct {
	ID     string
	Pack   string
	Name   string
	Type   string
	System grimoire.Value
	Items  []*Item
}

// Item is an embedded sub-record (attack, ability, spellcasting entry).
type Item struct {
	ID     string
	Name   string
	Type   string
	System grimoire.Value
}

// rawRecord mirrors the top-level JSON shape of a record file.
type rawRecord struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	System json.RawMessage `json:"system"`
	Items  []rawItem       `json:"items"`
}

type rawItem struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	System json.RawMessage `json:"system"`
}

func parseSystem(raw json.RawMessage) grimoire.Value {
	if len(raw) == 0 {
		return grimoire.NullValue
	}
	v, err := grimoire.ParseValue(raw)
	if err != nil {
		return grimoire.NullValue
	}
	return v
}

// ParseRecord decodes one record file. Records without an identifier
// are rejected with EINVALID so callers can skip them.
func ParseRecord(data []byte, pack string) (*Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.ID == "" {
		return nil, grimoire.Errorf(grimoire.EINVALID, "record has no identifier")
	}

	rec := &Record{
		ID:     raw.ID,
		Pack:   pack,
		Name:   raw.Name,
		Type:   raw.Type,
		System: parseSystem(raw.System),
	}
	for _, ri := range raw.Items {
		rec.Items = append(rec.Items, &Item{
			ID:     ri.ID,
			Name:   ri.Name,
			Type:   ri.Type,
			System: parseSystem(ri.System),
		})
	}
	return rec, nil
}
