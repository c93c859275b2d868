package lux

import (
	"io"
	"math"

	"github.com/oarkflow/json"
)

// MarshalTokens encodes a token stream for tooling.
func MarshalTokens(tokens []Token) ([]byte, error) {
	return json.Marshal(tokensJSON(tokens))
}

// MarshalProgram encodes a statement list. Every node carries a "type"
// discriminator.
func MarshalProgram(stmts []Stmt) ([]byte, error) {
	return json.Marshal(stmtsJSON(stmts))
}

type diagnosticJSON struct {
	Phase   string `json:"phase"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func MarshalDiagnostics(diags []Diagnostic) ([]byte, error) {
	return json.Marshal(diagnosticsJSON(diags))
}

func diagnosticsJSON(diags []Diagnostic) []diagnosticJSON {
	out := make([]diagnosticJSON, len(diags))
	for i, d := range diags {
		out[i] = diagnosticJSON{Phase: d.Phase.String(), Line: d.Line, Message: d.Message}
	}
	return out
}

// UnmarshalDiagnostics reverses MarshalDiagnostics.
func UnmarshalDiagnostics(data []byte) ([]Diagnostic, error) {
	var in []diagnosticJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		out[i] = Diagnostic{Phase: parsePhase(d.Phase), Line: d.Line, Message: d.Message}
	}
	return out, nil
}

func parsePhase(s string) Phase {
	switch s {
	case "scan":
		return PhaseScan
	case "parse":
		return PhaseParse
	}
	return PhaseRuntime
}

// WriteJSON encodes v indented by two spaces, followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteTokens is the indented form of MarshalTokens.
func WriteTokens(w io.Writer, tokens []Token) error {
	return WriteJSON(w, tokensJSON(tokens))
}

// WriteProgram is the indented form of MarshalProgram.
func WriteProgram(w io.Writer, stmts []Stmt) error {
	return WriteJSON(w, stmtsJSON(stmts))
}

func WriteDiagnostics(w io.Writer, diags []Diagnostic) error {
	return WriteJSON(w, diagnosticsJSON(diags))
}

func tokensJSON(tokens []Token) []map[string]any {
	out := make([]map[string]any, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenJSON(tok)
	}
	return out
}

func tokenJSON(tok Token) map[string]any {
	m := map[string]any{
		"type":   tok.Type.String(),
		"lexeme": tok.Lexeme,
		"line":   tok.Line,
	}
	if tok.Literal != nil {
		m["literal"] = valueJSON(tok.Literal)
	}
	return m
}

// valueJSON maps literal values onto JSON scalars. Non-finite numbers have
// no JSON form and are written as their display text.
func valueJSON(v Value) any {
	switch t := v.(type) {
	case nil, NilValue:
		return nil
	case Number:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Display(t)
		}
		return f
	case Boolean:
		return bool(t)
	case String:
		return string(t)
	}
	return Display(v)
}

func stmtsJSON(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtJSON(s)
	}
	return out
}

func exprsJSON(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = exprJSON(e)
	}
	return out
}

func optionalExpr(e Expr) any {
	if e == nil {
		return nil
	}
	return exprJSON(e)
}

func optionalStmt(s Stmt) any {
	if s == nil {
		return nil
	}
	return stmtJSON(s)
}

func functionJSON(typ string, f *FunctionStmt) map[string]any {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}
	m := map[string]any{
		"type":   typ,
		"params": params,
		"body":   stmtsJSON(f.Body),
		"line":   f.Name.Line,
	}
	if !f.Anonymous() {
		m["name"] = f.Name.Lexeme
	}
	return m
}

func stmtJSON(s Stmt) map[string]any {
	switch s := s.(type) {
	case *ExpressionStmt:
		return map[string]any{"type": "Expression", "expression": exprJSON(s.Expression)}
	case *VarStmt:
		return map[string]any{"type": "Var", "name": s.Name.Lexeme, "line": s.Name.Line, "initializer": optionalExpr(s.Initializer)}
	case *IfStmt:
		return map[string]any{"type": "If", "line": s.Keyword.Line, "condition": exprJSON(s.Condition), "then": stmtJSON(s.Then), "else": optionalStmt(s.Else)}
	case *WhileStmt:
		return map[string]any{"type": "While", "line": s.Keyword.Line, "condition": exprJSON(s.Condition), "body": stmtJSON(s.Body)}
	case *BlockStmt:
		return map[string]any{"type": "Block", "statements": stmtsJSON(s.Statements)}
	case *FunctionStmt:
		return functionJSON("Function", s)
	case *ReturnStmt:
		return map[string]any{"type": "Return", "line": s.Keyword.Line, "value": optionalExpr(s.Value)}
	}
	return map[string]any{"type": "Unknown"}
}

func exprJSON(e Expr) map[string]any {
	switch e := e.(type) {
	case *Literal:
		return map[string]any{"type": "Literal", "kind": kindOf(e.Value).String(), "value": valueJSON(e.Value)}
	case *Grouping:
		return map[string]any{"type": "Grouping", "expression": exprJSON(e.Expression)}
	case *Unary:
		return map[string]any{"type": "Unary", "operator": e.Operator.Lexeme, "line": e.Operator.Line, "right": exprJSON(e.Right)}
	case *Binary:
		return map[string]any{"type": "Binary", "operator": e.Operator.Lexeme, "line": e.Operator.Line, "left": exprJSON(e.Left), "right": exprJSON(e.Right)}
	case *Logical:
		return map[string]any{"type": "Logical", "operator": e.Operator.Type.String(), "line": e.Operator.Line, "left": exprJSON(e.Left), "right": exprJSON(e.Right)}
	case *Ternary:
		return map[string]any{"type": "Ternary", "line": e.Question.Line, "condition": exprJSON(e.Condition), "then": exprJSON(e.Then), "else": exprJSON(e.Else)}
	case *Variable:
		return map[string]any{"type": "Variable", "name": e.Name.Lexeme, "line": e.Name.Line}
	case *Assign:
		return map[string]any{"type": "Assign", "name": e.Name.Lexeme, "line": e.Name.Line, "value": exprJSON(e.Value)}
	case *Call:
		return map[string]any{"type": "Call", "line": e.Paren.Line, "callee": exprJSON(e.Callee), "arguments": exprsJSON(e.Arguments)}
	case *Lambda:
		return functionJSON("Lambda", e.Declaration)
	}
	return map[string]any{"type": "Unknown"}
}
