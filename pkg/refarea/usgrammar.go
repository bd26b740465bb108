package refarea

import "regexp"

// secExprFragment is the pattern text, shared by usBlockPattern and
// usInlinePattern, for a US section expression: a section number
// followed by any number of "(x)" enumerators and connectors (spec
// §4.2(b) "<sec-expr>").
const secExprFragment = `\d+[a-zA-Z]?(-\d+)?(\([0-9a-zA-Z]+\))*(\s*(,|and|through|to|or)\s*\d+[a-zA-Z]?(\([0-9a-zA-Z]+\))*)*`

// usBlockPattern matches a US block citation: "<title> U.S.C. § <sec-expr>"
// or "<title> C.F.R. Part <sec-expr>", with an optional trailing "of Title
// <n>" / "of the Code of Federal Regulations" disambiguator (spec
// §4.2(b) "block").
var usBlockPattern = regexp.MustCompile(
	`(?i)\b(?P<title>\d+)\s+(?P<code>U\.?S\.?C\.?|C\.?F\.?R\.?)\s*` +
		`(Sec\.?|§|Part)?\s*` +
		`(?P<sec>` + secExprFragment + `)` +
		`(\s+of\s+(Title\s+\d+|the\s+Code\s+of\s+Federal\s+Regulations))?`,
)

// usInlinePattern matches a US inline citation: a bare "Section"/"§"/"Part"
// citation with no preceding title number, optionally qualified by
// "of this title|chapter|..." or "of title <n>" (spec §4.2(b) "inline").
// Its title defaults to the document being parsed.
var usInlinePattern = regexp.MustCompile(
	`(?i)\b(Section|§|Part)\s*` +
		`(?P<sec>` + secExprFragment + `)` +
		`(\s+of\s+(this\s+(title|chapter|part|subchapter)|title\s+\d+))?`,
)

// usTitleOfPattern extracts a trailing "of Title <n>" disambiguator's
// title number, if present, from a matched span.
var usTitleOfPattern = regexp.MustCompile(`(?i)of\s+Title\s+(\d+)`)
