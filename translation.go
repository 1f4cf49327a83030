package grimoire

// Translation is the parsed content of one annotation file: the
// localized name and description pair for a mechanical record, plus
// translations for its embedded sub-items. Translations are built once
// per file, immutable afterwards, and held in a TranslationMap for the
// duration of one reconciliation pass.
type Translation struct {
	UUID   string
	Pack   string
	NameEN string
	NameFR string
	DescEN string
	DescFR string
	Status string
	Items  map[string]*ItemTranslation
}

// ItemTranslation is the translation of one embedded sub-item.
type ItemTranslation struct {
	ID     string
	NameEN string
	NameFR string
	DescEN string
	DescFR string
}

// TranslationMap holds translations keyed by record identifier.
type TranslationMap map[string]*Translation

// JournalMap holds long-form narrative page text keyed by page
// identifier, used to resolve pointer descriptions.
type JournalMap map[string]string
