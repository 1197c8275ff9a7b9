package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"traitgen/internal/diag"
	"traitgen/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Invocations: []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !bag.HasErrors(),
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}

	rules := make(map[diag.Code]struct{})
	for _, d := range bag.Items() {
		rules[d.Code] = struct{}{}
		res := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   d.Severity.SarifLevel(),
			Message: sarifMessage{Text: d.Message},
		}
		if f := fileOf(fs, d.Primary); f != nil && d.Code.Located() {
			start, end := fs.Resolve(d.Primary)
			res.Locations = []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: formatPath(fs, f, meta.PathMode)},
				Region: sarifRegion{
					StartLine:   start.Line,
					StartColumn: start.Col,
					EndLine:     end.Line,
					EndColumn:   end.Col,
				},
			}}}
		}
		run.Results = append(run.Results, res)
	}

	codes := make([]diag.Code, 0, len(rules))
	for c := range rules {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, c := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               c.ID(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}
