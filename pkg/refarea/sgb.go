package refarea

import "regexp"

// sgbAliases is the closed table of German Sozialgesetzbuch (social code)
// book aliases (spec §4.2(a) item 2 "sgb"). Each alias resolves to both a
// Roman-numeral and an Arabic-numeral law-id candidate; §4.3's "Law
// identifier attachment" picks whichever the active registry contains,
// preferring the Roman form on a tie (SPEC_FULL.md "SGB law-table
// ambiguity resolution").
var sgbAliases = map[string]sgbEntry{
	"erstes buch":                    {roman: "SGB-I", arabic: "SGB-1"},
	"sgb i":                          {roman: "SGB-I", arabic: "SGB-1"},
	"1. buch sozialgesetzbuch":       {roman: "SGB-I", arabic: "SGB-1"},
	"zweites buch":                   {roman: "SGB-II", arabic: "SGB-2"},
	"sgb ii":                         {roman: "SGB-II", arabic: "SGB-2"},
	"2. buch sozialgesetzbuch":       {roman: "SGB-II", arabic: "SGB-2"},
	"drittes buch":                   {roman: "SGB-III", arabic: "SGB-3"},
	"sgb iii":                        {roman: "SGB-III", arabic: "SGB-3"},
	"3. buch sozialgesetzbuch":       {roman: "SGB-III", arabic: "SGB-3"},
	"viertes buch":                   {roman: "SGB-IV", arabic: "SGB-4"},
	"sgb iv":                         {roman: "SGB-IV", arabic: "SGB-4"},
	"4. buch sozialgesetzbuch":       {roman: "SGB-IV", arabic: "SGB-4"},
	"fünftes buch":                   {roman: "SGB-V", arabic: "SGB-5"},
	"sgb v":                          {roman: "SGB-V", arabic: "SGB-5"},
	"5. buch sozialgesetzbuch":       {roman: "SGB-V", arabic: "SGB-5"},
	"sechstes buch":                  {roman: "SGB-VI", arabic: "SGB-6"},
	"sgb vi":                         {roman: "SGB-VI", arabic: "SGB-6"},
	"6. buch sozialgesetzbuch":       {roman: "SGB-VI", arabic: "SGB-6"},
	"siebtes buch":                   {roman: "SGB-VII", arabic: "SGB-7"},
	"sgb vii":                        {roman: "SGB-VII", arabic: "SGB-7"},
	"7. buch sozialgesetzbuch":       {roman: "SGB-VII", arabic: "SGB-7"},
	"achtes buch":                    {roman: "SGB-VIII", arabic: "SGB-8"},
	"sgb viii":                       {roman: "SGB-VIII", arabic: "SGB-8"},
	"8. buch sozialgesetzbuch":       {roman: "SGB-VIII", arabic: "SGB-8"},
	"neuntes buch":                   {roman: "SGB-IX", arabic: "SGB-9"},
	"sgb ix":                         {roman: "SGB-IX", arabic: "SGB-9"},
	"9. buch sozialgesetzbuch":       {roman: "SGB-IX", arabic: "SGB-9"},
	"zehntes buch":                   {roman: "SGB-X", arabic: "SGB-10"},
	"sgb x":                          {roman: "SGB-X", arabic: "SGB-10"},
	"10. buch sozialgesetzbuch":      {roman: "SGB-X", arabic: "SGB-10"},
	"elftes buch":                    {roman: "SGB-XI", arabic: "SGB-11"},
	"sgb xi":                         {roman: "SGB-XI", arabic: "SGB-11"},
	"11. buch sozialgesetzbuch":      {roman: "SGB-XI", arabic: "SGB-11"},
	"zwölftes buch":                  {roman: "SGB-XII", arabic: "SGB-12"},
	"sgb xii":                        {roman: "SGB-XII", arabic: "SGB-12"},
	"12. buch sozialgesetzbuch":      {roman: "SGB-XII", arabic: "SGB-12"},
}

type sgbEntry struct {
	roman  string
	arabic string
}

// euOrdinancePattern recognizes EU-style ordinance names (spec §4.2(a)
// item 3 "eu"), e.g. "Verordnung (EU) Nr. 123/2014" or
// "Richtlinie (EG) 95/46/EG".
var euOrdinancePattern = regexp.MustCompile(`(?i)^(Verordnung|Richtlinie)\s*\((EU|EG|EWG)\)\s*(Nr\.?\s*)?\d+/\d+`)

// ignoreSuffixPattern is the closed set of suffix patterns the pipeline
// must not resolve: references to treaties, gazettes, and collective
// bargaining agreements (spec §4.2(a) item 4 "ignore"), narrowed from the
// original's much larger pattern to the shapes that recur across the
// corpus: a law/ordinance name immediately followed by a promulgation date
// in parentheses, or a generic "Tarifvertrag"/"Übereinkommen" name.
var ignoreSuffixPattern = regexp.MustCompile(`(?i)^(` +
	`[\wäöüßÄÖÜ\-]*(gesetz|verordnung|übereinkommen|vertrag|konvention|protokoll|anordnung|satzung)e?s?\s+vom\s+\d+\.\s*\w+\s*\d+\s*\(.{0,80}\)|` +
	`[\wäöüßÄÖÜ\-]*tarifvertr(a|ä)ge?s?|` +
	`Anlage\b` +
	`)`)
