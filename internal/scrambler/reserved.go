package scrambler

// --- Reserved JavaScript Keywords and Literals ---
// (ES2015+ keywords, strict-mode reserved words and literal names; case-sensitive)
var reservedKeywords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true,
	// Strict mode
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	// Literals
	"null": true, "true": true, "false": true,
}

// --- Global names a generated identifier must never shadow ---
var reservedGlobals = map[string]bool{
	"undefined": true, "NaN": true, "Infinity": true, "arguments": true,
	"eval": true, "globalThis": true, "window": true, "document": true,
	"console": true, "require": true, "module": true, "exports": true,
}

// IsReserved reports whether name is a JavaScript reserved word or a global
// that generated identifiers must avoid.
func IsReserved(name string) bool {
	return reservedKeywords[name] || reservedGlobals[name]
}
