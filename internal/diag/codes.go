package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                      Code = 1000
	LexUnknownChar               Code = 1001
	LexUnterminatedString        Code = 1002
	LexUnterminatedBlockComment  Code = 1003
	LexBadNumber                 Code = 1004
	LexUnterminatedInterpolation Code = 1005
	LexBadEscape                 Code = 1006

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectIdentifier    Code = 2002
	SynExpectType          Code = 2003
	SynExpectExpression    Code = 2004
	SynUnclosedParen       Code = 2005
	SynUnclosedBrace       Code = 2006
	SynUnclosedBracket     Code = 2007
	SynExpectArrow         Code = 2008
	SynExpectColon         Code = 2009
	SynForBadHeader        Code = 2010
	SynExpectStatementEnd  Code = 2011
	SynInvalidAssignTarget Code = 2012
	SynUnexpectedTopLevel  Code = 2013
	SynExpectPattern       Code = 2014

	// Семантические
	SemaInfo               Code = 3000
	SemaUndefinedVariable  Code = 3001
	SemaUnknownType        Code = 3002
	SemaDuplicateSymbol    Code = 3003
	SemaTypeMismatch       Code = 3004
	SemaNilNotOptional     Code = 3005
	SemaArity              Code = 3006
	SemaNotCallable        Code = 3007
	SemaUnknownField       Code = 3008
	SemaMissingField       Code = 3009
	SemaInvalidOperands    Code = 3010
	SemaConditionNotBool   Code = 3011
	SemaEmptyLiteralNoType Code = 3012
	SemaUnhashable         Code = 3013
	SemaDuplicateCase      Code = 3014
	SemaNonExhaustive      Code = 3015
	SemaInvalidPattern     Code = 3016
	SemaSwitchExprNoReturn Code = 3017
	SemaSwitchExprMismatch Code = 3018
	SemaReturnMismatch     Code = 3019
	SemaMissingReturn      Code = 3020
	SemaNoMember           Code = 3021
	SemaNotIndexable       Code = 3022
	SemaNotAssignable      Code = 3023
	SemaVoidValue          Code = 3024
	SemaLiteralRange       Code = 3025
	SemaBadUnionVariant    Code = 3026
	SemaNarrowedAssign     Code = 3027
	SemaUnusedValue        Code = 3028

	// Ошибки исполнения
	RunInfo             Code = 4000
	RunDivByZero        Code = 4001
	RunIndexOutOfBounds Code = 4002
	RunUndefined        Code = 4003
	RunMissingMain      Code = 4004
	RunSwitchNoMatch    Code = 4005
	RunValueMismatch    Code = 4006
	RunInternal         Code = 4007
	RunCanceled         Code = 4008
	RunStackOverflow    Code = 4009

	// Ввод-вывод
	IOLoadFileError Code = 5001
	IOManifest      Code = 5002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                  "Unknown error",
	LexInfo:                      "Lexical information",
	LexUnknownChar:               "Unknown character",
	LexUnterminatedString:        "Unterminated string literal",
	LexUnterminatedBlockComment:  "Unterminated block comment",
	LexBadNumber:                 "Invalid number literal",
	LexUnterminatedInterpolation: "Unterminated string interpolation",
	LexBadEscape:                 "Invalid escape sequence",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectIdentifier:    "Expected identifier",
	SynExpectType:          "Expected type",
	SynExpectExpression:    "Expected expression",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBrace:       "Unclosed brace",
	SynUnclosedBracket:     "Unclosed bracket",
	SynExpectArrow:         "Expected '->'",
	SynExpectColon:         "Expected ':'",
	SynForBadHeader:        "Malformed for header",
	SynExpectStatementEnd:  "Expected end of statement",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynUnexpectedTopLevel:  "Unexpected top-level construct",
	SynExpectPattern:       "Expected case pattern",

	SemaInfo:               "Semantic information",
	SemaUndefinedVariable:  "Undefined variable",
	SemaUnknownType:        "Unknown type",
	SemaDuplicateSymbol:    "Duplicate symbol",
	SemaTypeMismatch:       "Type mismatch",
	SemaNilNotOptional:     "Nil assigned to non-optional",
	SemaArity:              "Wrong number of arguments",
	SemaNotCallable:        "Value is not callable",
	SemaUnknownField:       "Unknown field",
	SemaMissingField:       "Missing field",
	SemaInvalidOperands:    "Invalid operand types",
	SemaConditionNotBool:   "Condition is not Bool",
	SemaEmptyLiteralNoType: "Empty literal without type",
	SemaUnhashable:         "Type is not hashable",
	SemaDuplicateCase:      "Duplicate case",
	SemaNonExhaustive:      "Non-exhaustive switch",
	SemaInvalidPattern:     "Invalid case pattern",
	SemaSwitchExprNoReturn: "Switch expression case without value",
	SemaSwitchExprMismatch: "Switch expression cases disagree",
	SemaReturnMismatch:     "Return type mismatch",
	SemaMissingReturn:      "Missing return",
	SemaNoMember:           "No such member",
	SemaNotIndexable:       "Value is not indexable",
	SemaNotAssignable:      "Expression is not assignable",
	SemaVoidValue:          "Void used as value",
	SemaLiteralRange:       "Literal out of range",
	SemaBadUnionVariant:    "Invalid union variant",
	SemaNarrowedAssign:     "Assignment to narrowed variable",
	SemaUnusedValue:        "Unused value",

	RunInfo:             "Runtime information",
	RunDivByZero:        "Division by zero",
	RunIndexOutOfBounds: "Index out of bounds",
	RunUndefined:        "Undefined variable",
	RunMissingMain:      "Missing main function",
	RunSwitchNoMatch:    "No switch case matched",
	RunValueMismatch:    "Unexpected value shape",
	RunInternal:         "Internal interpreter error",
	RunCanceled:         "Execution canceled",
	RunStackOverflow:    "Call depth exceeded",

	IOLoadFileError: "Cannot read source file",
	IOManifest:      "Invalid project manifest",

	ObsInfo:    "Observability information",
	ObsTimings: "Phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
