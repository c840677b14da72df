package builtins

// keywords are reserved and cannot name user functions. "proj" and
// "prjection" are kept exactly as the language has always reserved them;
// "projection" is not reserved.
var keywords = []string{
	"null", "true", "false",
	"if", "then", "else", "elif",
	"and", "or", "not", "in", "is",
	"let", "var", "function", "return",
	"for", "each", "while",
	"import", "from", "as",
	"select", "where", "join", "on",
	"group", "by", "order", "asc", "desc",
	"union", "intersect", "minus",
	"proj", "prjection",
}

// Keywords returns a copy of the reserved keyword list.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}
