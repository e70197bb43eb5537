// Package grammar holds the flat, arena-indexed grammar model:
// symbols, productions, precedence and value types, referenced by
// integer index rather than pointer so that arena growth never
// invalidates a reference and the frozen result is trivially
// serializable.
//
// The ADT used by the grammar *surface* parser (package gramfile) to
// describe a single production's right-hand side is kept separate
// (see rhs.go); rewrite.Expand flattens it into the Grammar below.
package grammar

// SymbolKind discriminates the Symbol variant.
type SymbolKind int

const (
	KindNonterminal SymbolKind = iota
	KindCharClassTerminal
	KindStringTerminal
	KindRegexTerminal
	KindEOF
	KindError
	KindWhitespace
)

// Assoc is production/terminal associativity, used for shift/reduce
// conflict resolution.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

// ID is an index into Grammar.Symbols or Grammar.Productions. IDs are
// dense and correspond to array position once a Grammar is frozen.
type ID int

// NoPrecedence marks a symbol/production with no assigned precedence.
const NoPrecedence = -1

// Symbol is a terminal or nonterminal in the grammar arena.
type Symbol struct {
	ID   ID
	Name string
	Kind SymbolKind

	EmitTag   string // optional tag used to build an AST node
	ValueType string // optional user-declared value type

	Precedence int // NoPrecedence if unset
	Assoc      Assoc

	Lexem      bool // participates in tokenization
	Whitespace bool
	Greedy     bool
	Defined    bool
	Used       bool

	// Terminal-only fields.
	Pattern  TerminalPattern // CCL/string/regex source, nil for nonterminals
	AcceptID int             // assigned during lexer assembly; 0 = unassigned
}

// IsTerminal reports whether the symbol is any terminal kind.
func (s *Symbol) IsTerminal() bool {
	return s.Kind != KindNonterminal
}

// TerminalPattern is the unparsed-but-structured source of a
// terminal's match behavior, set during grammar construction, before
// lexer assembly turns it into an NFA fragment.
type TerminalPattern interface {
	isTerminalPattern()
}

// CharClassSource is a terminal defined directly as a character class
// (e.g. from a `[...]` literal or a single character).
type CharClassSource struct {
	Ranges []Range
}

func (CharClassSource) isTerminalPattern() {}

// Range is a half-open-free inclusive rune range used at the grammar
// surface, kept distinct from ccl.Range so this package has no
// dependency on the ccl package's normalization; lexergen converts one
// to the other as it compiles patterns.
type Range struct {
	Lo, Hi rune
}

// StringSource is a terminal defined as a literal string; rewrite
// unifies identical literals into one terminal.
type StringSource struct {
	Literal string
}

func (StringSource) isTerminalPattern() {}

// RegexSource is a terminal defined by a `/regex/` pattern, turned
// into an NFA fragment by regexfe.CompilePattern at compile time.
type RegexSource struct {
	Pattern        string
	CaseInsensitive bool
}

func (RegexSource) isTerminalPattern() {}
