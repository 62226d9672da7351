package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Kind identifies the lexical category of a token.
type Kind string

const (
	// Special
	EOF     Kind = "EOF"
	Illegal Kind = "Illegal"

	// Identifiers & literals
	Identifier      Kind = "Identifier"
	NumberLiteral   Kind = "NumberLiteral"
	BigIntLiteral   Kind = "BigIntLiteral"
	StringLiteral   Kind = "StringLiteral"
	TemplateLiteral Kind = "TemplateLiteral"

	// Comments
	LineComment  Kind = "LineComment"
	BlockComment Kind = "BlockComment"

	// Primitive type keywords
	NumberType  Kind = "NumberType"
	StringType  Kind = "StringType"
	BooleanType Kind = "BooleanType"
	Null        Kind = "Null"
	Undefined   Kind = "Undefined"
	Any         Kind = "Any"
	Unknown     Kind = "Unknown"
	Never       Kind = "Never"
	Void        Kind = "Void"
	BigInt      Kind = "BigInt"
	Symbol      Kind = "Symbol"
	Object      Kind = "Object"
	True        Kind = "True"
	False       Kind = "False"

	// Keywords
	Function   Kind = "Function"
	Class      Kind = "Class"
	Interface  Kind = "Interface"
	Let        Kind = "Let"
	Const      Kind = "Const"
	Var        Kind = "Var"
	Type       Kind = "Type"
	Namespace  Kind = "Namespace"
	Module     Kind = "Module"
	Import     Kind = "Import"
	Export     Kind = "Export"
	From       Kind = "From"
	As         Kind = "As"
	Async      Kind = "Async"
	Await      Kind = "Await"
	Return     Kind = "Return"
	If         Kind = "If"
	Else       Kind = "Else"
	Switch     Kind = "Switch"
	Case       Kind = "Case"
	Default    Kind = "Default"
	For        Kind = "For"
	While      Kind = "While"
	Do         Kind = "Do"
	Break      Kind = "Break"
	Continue   Kind = "Continue"
	Throw      Kind = "Throw"
	Try        Kind = "Try"
	Catch      Kind = "Catch"
	Finally    Kind = "Finally"
	Typeof     Kind = "Typeof"
	Instanceof Kind = "Instanceof"
	In         Kind = "In"
	Of         Kind = "Of"
	New        Kind = "New"
	Extends    Kind = "Extends"
	Implements Kind = "Implements"
	Get        Kind = "Get"
	Set        Kind = "Set"
	Readonly   Kind = "Readonly"
	Public     Kind = "Public"
	Private    Kind = "Private"
	Protected  Kind = "Protected"
	Static     Kind = "Static"
	Declare    Kind = "Declare"
	Require    Kind = "Require"
	Super      Kind = "Super"
	This       Kind = "This"
	Delete     Kind = "Delete"

	// Operators
	Plus                Kind = "Plus"
	Minus               Kind = "Minus"
	Star                Kind = "Star"
	Slash               Kind = "Slash"
	Modulo              Kind = "Modulo"
	Power               Kind = "Power"
	Equal               Kind = "Equal"
	EqualEqual          Kind = "EqualEqual"
	TripleEqual         Kind = "TripleEqual"
	Bang                Kind = "Bang"
	BangEqual           Kind = "BangEqual"
	NotDoubleEqual      Kind = "NotDoubleEqual"
	Less                Kind = "Less"
	LessEqual           Kind = "LessEqual"
	Greater             Kind = "Greater"
	GreaterEqual        Kind = "GreaterEqual"
	AmpersandAmpersand  Kind = "AmpersandAmpersand"
	PipePipe            Kind = "PipePipe"
	NullishCoalescing   Kind = "NullishCoalescing"
	OptionalChain       Kind = "OptionalChain"
	Increment           Kind = "Increment"
	Decrement           Kind = "Decrement"
	Spread              Kind = "Spread"
	Arrow               Kind = "Arrow"
	ThinArrow           Kind = "ThinArrow"
	BitwiseAnd          Kind = "BitwiseAnd"
	BitwiseOr           Kind = "BitwiseOr"
	BitwiseXor          Kind = "BitwiseXor"
	BitwiseNot          Kind = "BitwiseNot"
	PlusEqual           Kind = "PlusEqual"
	MinusEqual          Kind = "MinusEqual"
	StarEqual           Kind = "StarEqual"
	SlashEqual          Kind = "SlashEqual"
	ModuloEqual         Kind = "ModuloEqual"
	PowerEqual          Kind = "PowerEqual"
	AmpersandEqual      Kind = "AmpersandEqual"
	PipeEqual           Kind = "PipeEqual"
	CaretEqual          Kind = "CaretEqual"
	AndAndEqual         Kind = "AndAndEqual"
	OrOrEqual           Kind = "OrOrEqual"
	NullishEqual        Kind = "NullishEqual"
	QuestionMark        Kind = "QuestionMark"

	// Punctuation
	LeftParen    Kind = "LeftParen"
	RightParen   Kind = "RightParen"
	LeftBrace    Kind = "LeftBrace"
	RightBrace   Kind = "RightBrace"
	LeftBracket  Kind = "LeftBracket"
	RightBracket Kind = "RightBracket"
	Comma        Kind = "Comma"
	Dot          Kind = "Dot"
	Semicolon    Kind = "Semicolon"
	Colon        Kind = "Colon"
	At           Kind = "At"
	Hash         Kind = "Hash"
)

var keywords = map[string]Kind{
	"number":     NumberType,
	"string":     StringType,
	"boolean":    BooleanType,
	"null":       Null,
	"undefined":  Undefined,
	"any":        Any,
	"unknown":    Unknown,
	"never":      Never,
	"void":       Void,
	"bigint":     BigInt,
	"symbol":     Symbol,
	"object":     Object,
	"true":       True,
	"false":      False,
	"function":   Function,
	"class":      Class,
	"interface":  Interface,
	"let":        Let,
	"const":      Const,
	"var":        Var,
	"type":       Type,
	"namespace":  Namespace,
	"module":     Module,
	"import":     Import,
	"export":     Export,
	"from":       From,
	"as":         As,
	"async":      Async,
	"await":      Await,
	"return":     Return,
	"if":         If,
	"else":       Else,
	"switch":     Switch,
	"case":       Case,
	"default":    Default,
	"for":        For,
	"while":      While,
	"do":         Do,
	"break":      Break,
	"continue":   Continue,
	"throw":      Throw,
	"try":        Try,
	"catch":      Catch,
	"finally":    Finally,
	"typeof":     Typeof,
	"instanceof": Instanceof,
	"in":         In,
	"of":         Of,
	"new":        New,
	"extends":    Extends,
	"implements": Implements,
	"get":        Get,
	"set":        Set,
	"readonly":   Readonly,
	"public":     Public,
	"private":    Private,
	"protected":  Protected,
	"static":     Static,
	"declare":    Declare,
	"require":    Require,
	"super":      Super,
	"this":       This,
	"delete":     Delete,
}

// operators is ordered longest first so the scanner can apply maximal munch
// with a simple prefix test.
var operators = []struct {
	text string
	kind Kind
}{
	{"...", Spread},
	{"===", TripleEqual},
	{"!==", NotDoubleEqual},
	{"**=", PowerEqual},
	{"&&=", AndAndEqual},
	{"||=", OrOrEqual},
	{"??=", NullishEqual},
	{"==", EqualEqual},
	{"!=", BangEqual},
	{"<=", LessEqual},
	{">=", GreaterEqual},
	{"&&", AmpersandAmpersand},
	{"||", PipePipe},
	{"??", NullishCoalescing},
	{"?.", OptionalChain},
	{"++", Increment},
	{"--", Decrement},
	{"+=", PlusEqual},
	{"-=", MinusEqual},
	{"*=", StarEqual},
	{"/=", SlashEqual},
	{"%=", ModuloEqual},
	{"&=", AmpersandEqual},
	{"|=", PipeEqual},
	{"^=", CaretEqual},
	{"**", Power},
	{"=>", Arrow},
	{"->", ThinArrow},
	{"=", Equal},
	{"!", Bang},
	{"<", Less},
	{">", Greater},
	{"&", BitwiseAnd},
	{"|", BitwiseOr},
	{"^", BitwiseXor},
	{"~", BitwiseNot},
	{"?", QuestionMark},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Modulo},
	{"(", LeftParen},
	{")", RightParen},
	{"{", LeftBrace},
	{"}", RightBrace},
	{"[", LeftBracket},
	{"]", RightBracket},
	{",", Comma},
	{".", Dot},
	{";", Semicolon},
	{":", Colon},
	{"@", At},
	{"#", Hash},
}

// Token is a single lexeme. Text is the exact source slice, so
// source[Offset:Offset+len(Text)] == Text, and Row/Col (1-based, columns in
// runes) point at its first character.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Row    int    `json:"row" yaml:"row"`
	Col    int    `json:"col" yaml:"col"`
	Offset int    `json:"offset" yaml:"offset"`
}

func (t Token) String() string {
	return fmt.Sprintf("Token { kind: %s, text: %q, row: %d, col: %d }", t.Kind, t.Text, t.Row, t.Col)
}

// End returns the position just past the token's last character.
func (t Token) End() (row, col int) {
	row, col = t.Row, t.Col
	for i := 0; i < len(t.Text); {
		r, size := utf8.DecodeRuneInString(t.Text[i:])
		i += size
		if r == '\n' {
			row++
			col = 1
			continue
		}
		col++
	}
	return row, col
}

// IsKeyword reports whether the kind was produced from a reserved word.
func (k Kind) IsKeyword() bool {
	_, ok := keywordKinds[k]
	return ok
}

// IsComment reports whether the kind is a line or block comment.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

var keywordKinds = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		out[kind] = text
	}
	return out
}()

// Lexeme returns the canonical source spelling for fixed-text kinds, or the
// empty string for kinds with variable text.
func (k Kind) Lexeme() string {
	if text, ok := keywordKinds[k]; ok {
		return text
	}
	for _, op := range operators {
		if op.kind == k {
			return op.text
		}
	}
	return ""
}

// LookupKeyword maps an identifier spelling to its keyword kind.
func LookupKeyword(text string) (Kind, bool) {
	kind, ok := keywords[text]
	return kind, ok
}
