package refarea

import "regexp"

// triggerPattern recognizes the head of a German reference: §, §§, Art.,
// Artikel(n) (spec §4.2(a)).
var triggerPattern = regexp.MustCompile(`(?i)(§{1,2}|Art\.?\b|Artikeln?\b)`)

// numberLikeTokenPattern matches a bare number token (spec §4.3 "number"),
// allowing leading whitespace so it can be tried directly against a
// remaining-text slice.
var numberLikeTokenPattern = regexp.MustCompile(`^\s*(\d+(\.\d+)*[a-z]?(\s?ff\.?)?|[ivx]+|[a-z]\)?)`)

// connectorPattern matches one of the range-connectors of spec §4.2(a),
// with its optional "jeweils auch" prefix for the "i.V.m." form.
var connectorPattern = regexp.MustCompile(`(?i)^(,\s*|` +
	`\s*und\s+|\s*sowie\s+|\s*bis\s+|\s*oder\s+|` +
	`(\s*jeweils)?(\s*auch)?\s*(in\s+Verbindung\s+mit|i\.?\s?V\.?\s?m\.?)\s+)`)

// connectorTrailerPattern consumes an optional "nach", "der/des/den/die"
// run that may follow a connector before the next number (spec §4.2(a)
// conn group trailing alternatives).
var connectorTrailerPattern = regexp.MustCompile(`(?i)^(nach\s+)?((der|des|den|die)\s+)?`)

// unitAtStartPattern matches a unit word anchored at the start of a
// remaining-text slice, allowing leading whitespace.
var unitAtStartPattern = regexp.MustCompile(`(?i)^\s*(` +
	`§{1,2}|Artikeln?|Art\.?|Nrn?\.?|Nummer|Absatz|Absätze|Abschnitte?|Abschn\.?|Abs\.?|` +
	`Unterabsatz|Unterabs\.?|Satz|Sätze|S\.?|Ziffern?|Ziff\.?|` +
	`Buchstaben?|Buchst\.?|Halbsatz|Teilsatz|` +
	`Alternativen?|Alt\.?|Anhang|Anhänge)`)

// preNumberAtStartPattern matches an ordinal "pre-number" word (spec §4.3),
// allowing leading whitespace.
var preNumberAtStartPattern = regexp.MustCompile(`(?i)^\s*(erste[rs]?n?|zweite[rs]?n?|dritte[rs]?n?|letzte[rs]?n?)`)

// scanRangeExpression consumes the "main" range expression that follows a
// trigger token, returning the offset (relative to the trigger's end)
// where the range expression ends. It implements spec §4.2(a)'s informal
// grammar ("alternates numeric/ordinal tokens and connectors... with
// sub-unit words") as an explicit token loop rather than as the single
// recursive mega-regex of the original grammar: Go's RE2 engine has no
// DEFINE/recursive grouping, unlike the Python `regex` package the source
// grammar was written against (see DESIGN.md).
//
// Grammar per iteration, after a mandatory leading number:
//
//	(connector? unit number) | (connector number) | (connector? wordnumb unit)
func scanRangeExpression(text string) int {
	lead := numberLikeTokenPattern.FindString(text)
	if lead == "" {
		return 0
	}
	pos := len(lead)

	for {
		rest := text[pos:]

		connLen := 0
		if loc := connectorPattern.FindStringIndex(rest); loc != nil {
			connLen = loc[1]
			if trailer := connectorTrailerPattern.FindString(rest[connLen:]); trailer != "" {
				connLen += len(trailer)
			}
		}
		afterConn := rest[connLen:]

		if unit := unitAtStartPattern.FindString(afterConn); unit != "" {
			afterUnit := afterConn[len(unit):]
			if num := numberLikeTokenPattern.FindString(afterUnit); num != "" {
				pos += connLen + len(unit) + len(num)
				continue
			}
		}
		if connLen > 0 {
			if num := numberLikeTokenPattern.FindString(afterConn); num != "" {
				pos += connLen + len(num)
				continue
			}
		}

		wordnumbSrc := rest
		wordnumbOffset := 0
		if connLen > 0 {
			wordnumbSrc = afterConn
			wordnumbOffset = connLen
		}
		if wn := preNumberAtStartPattern.FindString(wordnumbSrc); wn != "" {
			afterWn := wordnumbSrc[len(wn):]
			if unit := unitAtStartPattern.FindString(afterWn); unit != "" {
				pos += wordnumbOffset + len(wn) + len(unit)
				continue
			}
		}

		break
	}

	return pos
}
