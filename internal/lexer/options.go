package lexer

import (
	"slang/internal/diag"
)

type Options struct {
	// Reporter получает единственную диагностику при ошибке. Может быть nil.
	Reporter diag.Reporter
}
