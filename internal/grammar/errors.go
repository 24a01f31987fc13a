package grammar

import "fmt"

// ErrSyntax wraps every malformed-line diagnostic the parser produces.
var ErrSyntax = fmt.Errorf("grammar: syntax error")

// ErrEmptyGrammar is returned when the input declares no types at all.
var ErrEmptyGrammar = fmt.Errorf("grammar: no type declarations found")
