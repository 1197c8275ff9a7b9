// Package format renders trait aliases and their expansions as Rust source.
//
// Назначение: канонический вывод trait + impl для сгенерированных фрагментов
// и обратная печать объявлений алиасов.
// Не делает: сохранения исходного форматирования внутри элементов.
// Зависимости: internal/ast, internal/generate, internal/source.
package format
