package script

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// file is the parse tree of a script. Every line, including the last, ends
// in a newline; parse adds one if the source lacks it.
//
//nolint:govet // participle grammar tags are not standard struct tags
type file struct {
	Lines []*line `parser:"( @@? EOL )*"`
}

// line is one command word followed by its arguments.
//
//nolint:govet // participle grammar tags are not standard struct tags
type line struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Args []*arg `parser:"@@*"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type arg struct {
	Pos    lexer.Position
	Int    *int64  `parser:"  @Int"`
	String *string `parser:"| @String"`
	Word   *string `parser:"| @Ident"`
}

// scriptLexer tokenizes scripts. Newlines are significant; comments run to
// the end of the line.
var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

// scriptParser is the participle parser for edit scripts.
var scriptParser = participle.MustBuild[file](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// parse builds the parse tree, converting participle errors to
// *ParseError.
func parse(name, src string) (*file, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	f, err := scriptParser.ParseString(name, src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, &ParseError{Line: pos.Line, Column: pos.Column, Msg: perr.Message()}
		}
		return nil, &ParseError{Msg: err.Error()}
	}
	return f, nil
}
