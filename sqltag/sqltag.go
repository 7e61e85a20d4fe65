// Package sqltag builds SQL statements from tag-string templates.
// Interpolated values become named parameter bindings rather than inline
// text; identifiers and sub-statements are spliced in structurally, so
// queries compose without string concatenation.
package sqltag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tagstr/tagstr/taglib"
)

// NOTE: other dialects have different rules; Postgres, for example, allows
// Unicode in unquoted identifiers.
var validIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Identifier is a table or column name, already quoted for direct
// inclusion in a statement.  Interpolating an Identifier splices it into
// the SQL text instead of creating a parameter binding.
type Identifier string

// Ident quotes a name for use as an identifier.  Names that are already
// valid unquoted identifiers pass through unchanged.
func Ident(name string) (Identifier, error) {
	if name == "" {
		return "", errors.New("sqltag: identifier cannot be an empty string")
	}
	if validIdent.MatchString(name) {
		return Identifier(name), nil
	}
	return Identifier(`"` + strings.ReplaceAll(name, `"`, `""`) + `"`), nil
}

// Param is one interpolated value awaiting a binding name derived from its
// source expression.
type Param struct {
	Raw   string
	Value interface{}
}

// Statement is a SQL statement and the named bindings for its parameters.
type Statement struct {
	SQL      string
	Bindings map[string]interface{}
	parts    []interface{} // string | Param | *Statement
}

// SQL assembles a statement from a decoded part sequence.  A thunk whose
// value is an Identifier or another *Statement is spliced into the text;
// any other value becomes a named parameter, written as :name in the SQL.
// Parameter names derive from the interpolation's source expression when it
// is a plain identifier ("expr" otherwise), with _2, _3... suffixes keeping
// repeated names unique.
func SQL(parts ...taglib.Part) (*Statement, error) {
	var collected []interface{}
	for _, part := range taglib.DecodeRaw(parts...) {
		switch p := part.(type) {
		case taglib.Text:
			collected = append(collected, string(p))
		case *taglib.Thunk:
			switch value := p.Getvalue().(type) {
			case *Statement:
				collected = append(collected, value)
			case Identifier:
				collected = append(collected, string(value))
			default:
				collected = append(collected, Param{Raw: p.Raw, Value: value})
			}
		default:
			return nil, fmt.Errorf("sqltag: unknown part type %T", part)
		}
	}
	var s = &Statement{Bindings: make(map[string]interface{}), parts: collected}
	s.SQL = analyze(collected, s.Bindings, make(map[string]int))
	return s, nil
}

// analyze flattens the statement's parts into SQL text, assigning a unique
// binding name to each parameter.  Nested statements share the caller's
// bindings and counters so a parameter name is never reused.
func analyze(parts []interface{}, bindings map[string]interface{}, counts map[string]int) string {
	var b strings.Builder
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			b.WriteString(p)
		case Param:
			var name = p.Raw
			if !validIdent.MatchString(name) {
				name = "expr"
			}
			counts[name]++
			if n := counts[name]; n > 1 {
				name = fmt.Sprintf("%s_%d", name, n)
			}
			bindings[name] = p.Value
			b.WriteString(":" + name)
		case *Statement:
			b.WriteString(analyze(p.parts, bindings, counts))
		}
	}
	return b.String()
}

// Args returns the bindings as database/sql named arguments, ordered by
// name for determinism.
func (s *Statement) Args() []interface{} {
	var names = make([]string, 0, len(s.Bindings))
	for name := range s.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	var args = make([]interface{}, len(names))
	for i, name := range names {
		args[i] = sql.Named(name, s.Bindings[name])
	}
	return args
}

// Exec runs the statement against db.
func (s *Statement) Exec(ctx context.Context, db *sql.DB) (sql.Result, error) {
	return db.ExecContext(ctx, s.SQL, s.Args()...)
}

// Query runs the statement against db and returns its rows.
func (s *Statement) Query(ctx context.Context, db *sql.DB) (*sql.Rows, error) {
	return db.QueryContext(ctx, s.SQL, s.Args()...)
}
