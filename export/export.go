// Package export serializes the frozen, language-neutral parser
// description: symbols, productions, ACTION/GOTO tables, the
// default-production table, DFA tables and dfa_select, and the
// EOF/ERROR ids, as a tagged XML tree stable enough for template back
// ends to walk without further analysis.
package export

import (
	"encoding/xml"
	"io"

	"github.com/shadowCow/lalrgen/automata"
	"github.com/shadowCow/lalrgen/grammar"
	"github.com/shadowCow/lalrgen/lalr"
	"github.com/shadowCow/lalrgen/lexergen"
)

// Document is the root of the export tree.
type Document struct {
	XMLName     xml.Name     `xml:"parser"`
	EOFID       int          `xml:"eof_id,attr"`
	ErrorID     int          `xml:"error_id,attr"`
	Symbols     []Symbol     `xml:"symbols>symbol"`
	Productions []Production `xml:"productions>production"`
	States      []State      `xml:"states>state"`
	DFAs        []DFATable   `xml:"dfas>dfa"`
}

// Symbol is one row of the exported symbol table.
type Symbol struct {
	ID         int    `xml:"id,attr"`
	Name       string `xml:"name,attr"`
	Kind       string `xml:"kind,attr"`
	Emit       string `xml:"emit,attr,omitempty"`
	Lexem      bool   `xml:"lexem,attr"`
	Whitespace bool   `xml:"whitespace,attr"`
	Greedy     bool   `xml:"greedy,attr"`
	ValueType  string `xml:"value_type,attr,omitempty"`
}

// Production is one row of the exported production table.
type Production struct {
	ID             int    `xml:"id,attr"`
	LHS            int    `xml:"lhs,attr"`
	Length         int    `xml:"length,attr"`
	Emit           string `xml:"emit,attr,omitempty"`
	SemanticAction string `xml:"semantic_action,omitempty"`
	RHS            []RHSRef `xml:"rhs>sym"`
}

// RHSRef is one element of a production's rhs_ids array.
type RHSRef struct {
	Symbol int `xml:"id,attr"`
}

// State is one ACTION/GOTO/default-production/dfa_select row, keyed
// implicitly by its position in Document.States.
type State struct {
	ID        int           `xml:"id,attr"`
	Default   int           `xml:"default,attr"` // production id, or -1
	DFASelect int           `xml:"dfa_select,attr"`
	Actions   []ActionEntry `xml:"action"`
	Gotos     []GotoEntry   `xml:"goto"`
}

// ActionEntry is one (sym, action, idx) triple.
type ActionEntry struct {
	Symbol int    `xml:"sym,attr"`
	Kind   string `xml:"kind,attr"` // "shift", "reduce", "accept"
	Idx    int    `xml:"idx,attr"`  // target state (shift) or production id (reduce); 0 for accept
}

// GotoEntry is one (nonterm, target) pair.
type GotoEntry struct {
	Nonterminal int `xml:"nonterm,attr"`
	Target      int `xml:"target,attr"`
}

// DFATable is one DFA as (idx-row, chars[lo,hi] pairs, trans, accept-row).
type DFATable struct {
	Index  int        `xml:"index,attr"`
	Start  int        `xml:"start,attr"`
	States []DFAState `xml:"state"`
}

// DFAState is one row: its accept terminal id (-1 if none) and its
// outgoing edges as [lo,hi] char-range-to-target triples.
type DFAState struct {
	ID     int       `xml:"id,attr"`
	Accept int       `xml:"accept,attr"` // terminal symbol id, or -1
	Edges  []DFAEdge `xml:"edge"`
}

// DFAEdge is one outgoing transition's character range and target.
type DFAEdge struct {
	Lo     int32 `xml:"lo,attr"`
	Hi     int32 `xml:"hi,attr"`
	Target int   `xml:"target,attr"`
}

func kindName(k grammar.SymbolKind) string {
	switch k {
	case grammar.KindNonterminal:
		return "nonterminal"
	case grammar.KindCharClassTerminal:
		return "char_class"
	case grammar.KindStringTerminal:
		return "string"
	case grammar.KindRegexTerminal:
		return "regex"
	case grammar.KindEOF:
		return "eof"
	case grammar.KindError:
		return "error"
	case grammar.KindWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

func actionKindName(k lalr.ActionKind) string {
	switch k {
	case lalr.Shift:
		return "shift"
	case lalr.Reduce:
		return "reduce"
	case lalr.Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Build walks g, tbl and asm into the frozen Document.
// asm.TerminalOfAccept maps an automata DFA state's AcceptID (an NFA
// accept *state* id; see automata.DFAState's doc comment) back to the
// terminal symbol id it represents.
func Build(g *grammar.Grammar, tbl *lalr.Table, asm *lexergen.Assembly) *Document {
	terminalOfAccept := asm.TerminalOfAccept
	doc := &Document{EOFID: int(g.EOF), ErrorID: int(g.Err)}

	for _, s := range g.Symbols {
		doc.Symbols = append(doc.Symbols, Symbol{
			ID: int(s.ID), Name: s.Name, Kind: kindName(s.Kind),
			Emit: s.EmitTag, Lexem: s.Lexem, Whitespace: s.Whitespace,
			Greedy: s.Greedy, ValueType: s.ValueType,
		})
	}

	for _, p := range g.Productions {
		prod := Production{
			ID: int(p.ID), LHS: int(p.LHS), Length: p.Length(),
			Emit: p.EmitTag, SemanticAction: p.SemanticAction,
		}
		for _, it := range p.RHS {
			prod.RHS = append(prod.RHS, RHSRef{Symbol: int(it.Symbol)})
		}
		doc.Productions = append(doc.Productions, prod)
	}

	for sid := range tbl.Action {
		st := State{ID: sid, Default: tbl.Default[sid], DFASelect: asm.DFASelect[sid]}
		for _, sym := range tbl.SortedActionTerminals(sid) {
			if tbl.Default[sid] != -1 {
				continue // compressed away behind the state's default production
			}
			a := tbl.Action[sid][sym]
			st.Actions = append(st.Actions, ActionEntry{Symbol: int(sym), Kind: actionKindName(a.Kind), Idx: a.Value})
		}
		for _, nt := range tbl.SortedGotoNonterminals(sid) {
			st.Gotos = append(st.Gotos, GotoEntry{Nonterminal: int(nt), Target: tbl.Goto[sid][nt]})
		}
		doc.States = append(doc.States, st)
	}

	for idx, dfa := range asm.DFAs {
		doc.DFAs = append(doc.DFAs, buildDFATable(idx, dfa, terminalOfAccept))
	}

	return doc
}

func buildDFATable(idx int, dfa *automata.DFA, terminalOfAccept map[int]grammar.ID) DFATable {
	table := DFATable{Index: idx, Start: dfa.Start}
	for _, s := range dfa.States {
		accept := -1
		if s.Accepting() {
			if term, ok := terminalOfAccept[s.AcceptID]; ok {
				accept = int(term)
			}
		}
		row := DFAState{ID: s.ID, Accept: accept}
		for _, e := range s.Edges {
			for _, r := range e.Class.Ranges() {
				row.Edges = append(row.Edges, DFAEdge{Lo: int32(r.Lo), Hi: int32(r.Hi), Target: e.To})
			}
		}
		table.States = append(table.States, row)
	}
	return table
}

// Write serializes doc as indented XML.
func (doc *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
