package token

var keywords = map[string]Kind{
	"func":    KwFunc,
	"struct":  KwStruct,
	"enum":    KwEnum,
	"union":   KwUnion,
	"case":    KwCase,
	"var":     KwVar,
	"if":      KwIf,
	"else":    KwElse,
	"for":     KwFor,
	"in":      KwIn,
	"switch":  KwSwitch,
	"return":  KwReturn,
	"default": KwDefault,
	"true":    KwTrue,
	"false":   KwFalse,
	"nil":     KwNil,
	"some":    KwSome,
	"none":    KwNone,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
