package token

import "sort"

// entry is a single (lexeme, TokenType) binding used by the keyword,
// builtin, and operator tables below. All three tables are built once at
// package-init time, sorted by lexeme, and probed with binary search —
// the same "small sorted array, not a hash map" shape the language's own
// lookup tables use, scaled to keyword/operator cardinality.
type entry struct {
	text string
	typ  Type
}

func sortEntries(e []entry) []entry {
	sort.Slice(e, func(i, j int) bool { return e[i].text < e[j].text })
	return e
}

func lookup(table []entry, text string) (Type, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].text >= text })
	if i < len(table) && table[i].text == text {
		return table[i].typ, true
	}
	return 0, false
}

// keywordTable holds every reserved word: statement/expression keywords,
// primitive type names, and modifier keywords. IDENT never collides with
// any of these because LookupIdent falls back to IDENT on a miss.
var keywordTable = sortEntries([]entry{
	{"fn", FUNCTION},
	{"var", VAR},
	{"const", CONST},
	{"comptime", COMPTIME},
	{"struct", STRUCT},
	{"enum", ENUM},
	{"true", TRUE},
	{"false", FALSE},
	{"and", BOOLEAN_AND},
	{"or", BOOLEAN_OR},
	{"is", IS},
	{"in", IN},
	{"if", IF},
	{"else", ELSE},
	{"orelse", ORELSE},
	{"do", DO},
	{"match", MATCH},
	{"return", RETURN},
	{"loop", LOOP},
	{"for", FOR},
	{"while", WHILE},
	{"continue", CONTINUE},
	{"break", BREAK},
	{"import", IMPORT},
	{"as", AS},
	{"private", PRIVATE},
	{"extern", EXTERN},
	{"export", EXPORT},
	{"packed", PACKED},
	{"volatile", VOLATILE},
	{"static", STATIC},
	{"mut", MUT},
	{"ref", REF},
	{"noreturn", NORETURN},
	{"type", TYPE},
	{"with", WITH},

	{"int", INT_TYPE},
	{"long", LONG_TYPE},
	{"isize", ISIZE_TYPE},
	{"uint", UINT_TYPE},
	{"ulong", ULONG_TYPE},
	{"usize", USIZE_TYPE},
	{"float", FLOAT_TYPE},
	{"byte", BYTE_TYPE},
	{"string", STRING_TYPE},
	{"bool", BOOL_TYPE},
	{"void", VOID_TYPE},
})

// LookupIdent classifies a scanned identifier slice, returning the matching
// keyword/primitive TokenType or IDENT if it isn't reserved.
func LookupIdent(ident string) Type {
	if tt, ok := lookup(keywordTable, ident); ok {
		return tt
	}
	return IDENT
}

// builtinTable holds every recognized '@name' builtin, keyed without the
// leading '@'.
var builtinTable = sortEntries([]entry{
	{"typeOf", BUILTIN_TYPE_OF},
	{"sizeOf", BUILTIN_SIZE_OF},
	{"alignOf", BUILTIN_ALIGN_OF},
	{"sin", BUILTIN_SIN},
	{"cos", BUILTIN_COS},
	{"tan", BUILTIN_TAN},
	{"sqrt", BUILTIN_SQRT},
	{"log", BUILTIN_LOG},
	{"log10", BUILTIN_LOG10},
	{"log2", BUILTIN_LOG2},
	{"min", BUILTIN_MIN},
	{"max", BUILTIN_MAX},
	{"mod", BUILTIN_MOD},
	{"divmod", BUILTIN_DIVMOD},
	{"trunc", BUILTIN_TRUNC},
	{"cast", BUILTIN_CAST},
	{"ceil", BUILTIN_CEIL},
	{"floor", BUILTIN_FLOOR},
	{"exp", BUILTIN_EXP},
	{"exp2", BUILTIN_EXP2},
	{"clz", BUILTIN_CLZ},
	{"ctz", BUILTIN_CTZ},
})

// LookupBuiltin classifies the name following an '@' sigil.
func LookupBuiltin(name string) (Type, bool) {
	return lookup(builtinTable, name)
}

// operatorTable holds every multi-character and single-character operator
// lexeme, sorted by text. The lexer performs longest-match recognition by
// trying successively shorter prefixes of the remaining input against this
// table, from MaxOperatorLen down to 1.
var operatorTable = sortEntries([]entry{
	{"=", ASSIGN},
	{":=", WALRUS},
	{"+", PLUS},
	{"+=", PLUS_ASSIGN},
	{"-", MINUS},
	{"-=", MINUS_ASSIGN},
	{"*", STAR},
	{"*=", STAR_ASSIGN},
	{"**", STAR_STAR},
	{"/", SLASH},
	{"/=", SLASH_ASSIGN},
	{"%", PERCENT},
	{"%=", PERCENT_ASSIGN},
	{"!", BANG},
	{"!=", NEQ},
	{"?", WHAT},

	{"&", AND},
	{"&=", AND_ASSIGN},
	{"|", OR},
	{"|=", OR_ASSIGN},
	{"<<", SHL},
	{"<<=", SHL_ASSIGN},
	{">>", SHR},
	{">>=", SHR_ASSIGN},
	{"~", NOT},
	{"~=", NOT_ASSIGN},
	{"^", XOR},
	{"^=", XOR_ASSIGN},

	{"<", LT},
	{"<=", LTEQ},
	{">", GT},
	{">=", GTEQ},
	{"==", EQ},

	{"::", COLON_COLON},
	{".", DOT},
	{"..", DOT_DOT},
	{"..=", DOT_DOT_EQ},
	{"=>", FAT_ARROW},

	{",", COMMA},
	{":", COLON},
	{";", SEMICOLON},

	{"(", LPAREN},
	{")", RPAREN},
	{"{", LBRACE},
	{"}", RBRACE},
	{"[", LBRACKET},
	{"]", RBRACKET},

	{"_", UNDERSCORE},
})

// MaxOperatorLen is the length in bytes of the longest operator/punctuation
// lexeme in operatorTable.
var MaxOperatorLen = func() int {
	max := 0
	for _, e := range operatorTable {
		if len(e.text) > max {
			max = len(e.text)
		}
	}
	return max
}()

// LookupOperator performs an exact-length lookup of text against the
// operator/punctuation table.
func LookupOperator(text string) (Type, bool) {
	return lookup(operatorTable, text)
}
