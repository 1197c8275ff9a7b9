// Package fuzztests houses Go fuzz harnesses for the alias pipeline
// (source -> lexer -> parser -> generator -> printer). They guard against
// panics, hangs and span corruption on arbitrary input.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// полное раскрытие .ta/.rs файлов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
