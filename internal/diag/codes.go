package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006
	LexBadRawString             Code = 1007
	LexBadEscape                Code = 1008

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnclosedDelimiter    Code = 2002
	SynExpectSemicolon      Code = 2003
	SynExpectIdentifier     Code = 2004
	SynExpectTrait          Code = 2005
	SynExpectEquals         Code = 2006
	SynExpectType           Code = 2007
	SynExpectBound          Code = 2008
	SynExpectLifetime       Code = 2009
	SynUnclosedAngleBracket Code = 2010
	SynBadVisibility        Code = 2012
	SynInnerAttribute       Code = 2013
	SynUnexpectedEOF        Code = 2014
	SynExpectMacroBody      Code = 2015
	SynExpectColon          Code = 2016

	// Семантические
	SemaInfo          Code = 3000
	SemaReservedIdent Code = 3001

	// I/O
	IOInfo           Code = 4000
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Проект / манифест
	ProjInfo             Code = 5000
	ProjManifestNotFound Code = 5001
	ProjInvalidManifest  Code = 5002
	ProjNoInputs         Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexTokenTooLong:             "Token too long",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadRawString:             "Malformed raw string",
	LexBadEscape:                "Bad escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectTrait:              "Expect `trait`",
	SynExpectEquals:             "Expect `=`",
	SynExpectType:               "Expect type",
	SynExpectBound:              "Expect bound",
	SynExpectLifetime:           "Expect lifetime",
	SynUnclosedAngleBracket:     "Unclosed angle bracket",
	SynBadVisibility:            "Bad visibility",
	SynInnerAttribute:           "Inner attribute not allowed",
	SynUnexpectedEOF:            "Unexpected end of input",
	SynExpectMacroBody:          "Expect macro body",
	SynExpectColon:              "Expect colon",
	SemaInfo:                    "Semantic information",
	SemaReservedIdent:           "Reserved identifier",
	IOInfo:                      "I/O information",
	IOLoadFileError:             "Load file error",
	IOWriteFileError:            "Write file error",
	IOCacheError:                "Cache error",
	ProjInfo:                    "Project information",
	ProjManifestNotFound:        "Manifest not found",
	ProjInvalidManifest:         "Invalid manifest",
	ProjNoInputs:                "No inputs",
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
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Located reports whether diagnostics with this code point into a source
// file. I/O and project diagnostics describe whole files or the run.
func (c Code) Located() bool {
	ic := int(c)
	return ic >= 1000 && ic < 4000
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
