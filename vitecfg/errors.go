package vitecfg

import "fmt"

// ParseError reports source text that could not be parsed as either
// javascript or typescript. It is the only error Patch returns; every other
// condition (no factory call, unsupported argument shape, unsafe section) is
// a no-op, not an error.
type ParseError struct {
	Msg  string
	Line int // 1-based, 0 if unknown
	Col  int // 0-based, meaningful only if Line > 0
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}
