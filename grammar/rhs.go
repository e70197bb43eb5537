package grammar

// RHSRule is the marker interface for the surface-level
// right-hand-side ADT used before rewrite.Expand flattens everything
// into Production: a small closed set of node kinds that a switch can
// exhaustively handle.
type RHSRule interface {
	isRHSRule()
}

// RHSSymbol references a single declared symbol by name, optionally
// bound to a name usable from a semantic action.
type RHSSymbol struct {
	Name    string
	Binding string // "" if unbound
}

func (RHSSymbol) isRHSRule() {}

// RHSSequence matches its elements in order.
type RHSSequence []RHSRule

func (RHSSequence) isRHSRule() {}

// RHSAlternative matches any one of its elements; each alternative
// becomes its own Production once rewrite.Expand runs.
type RHSAlternative []RHSRule

func (RHSAlternative) isRHSRule() {}

// RHSOptional is the `?` virtual closure.
type RHSOptional struct{ Inner RHSRule }

func (RHSOptional) isRHSRule() {}

// RHSZeroOrMore is the `*` virtual closure.
type RHSZeroOrMore struct{ Inner RHSRule }

func (RHSZeroOrMore) isRHSRule() {}

// RHSOneOrMore is the `+` virtual closure.
type RHSOneOrMore struct{ Inner RHSRule }

func (RHSOneOrMore) isRHSRule() {}

// RuleDecl is one declared alternative of a nonterminal's definition,
// as produced by the grammar-surface parser (gramfile), before
// flattening. A nonterminal's full definition is
// `lhs : alt1 | alt2 ... ;`; each alt becomes one RuleDecl.
type RuleDecl struct {
	LHS            string
	RHS            RHSRule
	EmitTag        string
	Precedence     string // name of a symbol whose precedence the production takes, "" if none
	SemanticAction string // opaque text, never parsed by the core
}

// SourceGrammar is the surface-level grammar as handed to rewrite.Expand:
// declared symbols plus their RuleDecls, still in ADT form.
type SourceGrammar struct {
	Symbols     []*Symbol
	Rules       []RuleDecl
	GoalSymbol  string
	Precedence  []PrecedenceLevel // in source order; later = higher
	CodePointMax rune             // 0 means default (ccl.MaxCodePoint)
}

// PrecedenceLevel is one `<<` / `>>` declaration line from the
// grammar surface.
type PrecedenceLevel struct {
	Assoc     Assoc
	Terminals []string
}
