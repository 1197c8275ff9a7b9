package diag

// Severity orders diagnostics; anything at SevError or above drops the
// output of the file it was found in.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower, sarif string }{
	SevInfo:    {"INFO", "info", "note"},
	SevWarning: {"WARNING", "warning", "warning"},
	SevError:   {"ERROR", "error", "error"},
}

// String is the banner form used by the pretty renderer: ERROR, WARNING, INFO.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the short and golden listings.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "info"
}

// SarifLevel maps the severity onto a SARIF result level.
func (s Severity) SarifLevel() string {
	if int(s) < len(severityNames) {
		return severityNames[s].sarif
	}
	return "note"
}
