package suite

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/parser"
)

// Predicate is a CUE boolean expression evaluated against a check's
// observed state. The expression resolves three identifiers:
//
//	params  the check's static settings
//	input   the run-time inputs passed to the seek
//	state   the state the check's read just produced
//
// Syntax is verified at construction; evaluation errors (a reference to a
// missing field, a non-boolean result) surface per call.
type Predicate struct {
	expr   string
	params map[string]any
	ctx    *cue.Context
}

// NewPredicate compiles expr. params may be nil.
func NewPredicate(expr string, params map[string]any) (*Predicate, error) {
	if _, err := parser.ParseExpr("test", expr); err != nil {
		return nil, &LoadError{Code: ErrCodePredicate, Message: fmt.Sprintf("parsing test expression %q: %v", expr, err)}
	}
	if params == nil {
		params = map[string]any{}
	}
	return &Predicate{expr: expr, params: params, ctx: cuecontext.New()}, nil
}

// Eval evaluates the predicate. state is round-tripped through JSON so the
// expression sees the same field names a journal detail would show.
func (p *Predicate) Eval(input map[string]any, state any) (bool, error) {
	if input == nil {
		input = map[string]any{}
	}
	stateVal, err := toPlain(state)
	if err != nil {
		return false, fmt.Errorf("encode state for %q: %w", p.expr, err)
	}

	scope := p.ctx.Encode(map[string]any{
		"params": p.params,
		"input":  input,
		"state":  stateVal,
	})
	if err := scope.Err(); err != nil {
		return false, fmt.Errorf("encode scope for %q: %w", p.expr, err)
	}

	v := p.ctx.CompileString(p.expr, cue.Scope(scope))
	if err := v.Err(); err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.expr, err)
	}
	ok, err := v.Bool()
	if err != nil {
		return false, fmt.Errorf("%q is not boolean: %w", p.expr, err)
	}
	return ok, nil
}

// toPlain converts a typed state struct to maps/slices/primitives via its
// JSON form.
func toPlain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
