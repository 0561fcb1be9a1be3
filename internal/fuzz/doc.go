// Package fuzztests houses Go fuzz harnesses that exercise the static
// pipeline (source -> lexer -> parser -> checker). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и чекер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение программ.
package fuzztests
