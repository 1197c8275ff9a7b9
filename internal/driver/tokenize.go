package driver

import (
	"traitgen/internal/diag"
	"traitgen/internal/lexer"
	"traitgen/internal/source"
	"traitgen/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a whole file; the token stream ends with EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := newBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.NewUniqueReporter(diag.BagReporter{Bag: bag})})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
