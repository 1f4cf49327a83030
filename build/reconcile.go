// Package build turns the raw datasets into the persisted corpus: it
// joins mechanical records with their translations, folds in journal
// pages and lexicon families, and hands the result to storage in one
// rebuild.
package build

import (
	"regexp"

	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/foundry"
)

// MergedSource labels entries joined from both datasets.
const MergedSource = "foundry+pf2-fr"

// journalRefRe matches a journal page reference inside a translated
// description. Class, ancestry and archetype translations are often a
// one-line pointer to the long-form page rather than the text itself.
var journalRefRe = regexp.MustCompile(`@UUID\[Compendium\.pf2e\.journals\.JournalEntry\.[^.]+\.JournalEntryPage\.([^\]]+)\]`)

// journalPointerTypes are the record types whose descriptions may be
// journal pointers.
var journalPointerTypes = map[string]bool{
	"class":     true,
	"ancestry":  true,
	"archetype": true,
}

// Reconcile joins one mechanical record with its translation. A nil
// translation produces an untranslated entry carrying the English name
// on both sides. The journals map resolves pointer descriptions to the
// full page text.
func Reconcile(rec *foundry.Record, trans *grimoire.Translation, journals grimoire.JournalMap) *grimoire.Entry {
	e := &grimoire.Entry{
		ID:       rec.ID,
		Pack:     rec.Pack,
		Category: grimoire.Classify(rec.Type, rec.System, rec.Pack),
		Source:   MergedSource,
		Type:     rec.Type,
		System:   rec.System,
	}

	if trans == nil {
		e.NameFR = rec.Name
		e.NameEN = rec.Name
	} else {
		e.Translated = true
		e.Status = trans.Status
		e.NameFR = fallback(trans.NameFR, rec.Name)
		e.NameEN = fallback(trans.NameEN, rec.Name)
		e.Description = trans.DescFR

		if journalPointerTypes[rec.Type] {
			desc := fallback(trans.DescFR, trans.DescEN)
			if m := journalRefRe.FindStringSubmatch(desc); m != nil {
				if page, ok := journals[m[1]]; ok {
					e.Description = page
					e.HasJournal = true
				}
			}
		}
	}

	for _, item := range rec.Items {
		e.Items = append(e.Items, reconcileItem(item, trans))
	}
	return e
}

// reconcileItem merges one embedded sub-record with its translation,
// if the parent's translation carries one.
func reconcileItem(item *foundry.Item, trans *grimoire.Translation) *grimoire.SubItem {
	sub := &grimoire.SubItem{
		ID:     item.ID,
		Type:   item.Type,
		NameFR: item.Name,
		NameEN: item.Name,
		System: item.System,
	}
	if trans == nil {
		return sub
	}
	it, ok := trans.Items[item.ID]
	if !ok {
		return sub
	}
	sub.Translated = true
	sub.NameFR = fallback(it.NameFR, item.Name)
	sub.NameEN = fallback(it.NameEN, item.Name)
	sub.Description = it.DescFR
	return sub
}

func fallback(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
