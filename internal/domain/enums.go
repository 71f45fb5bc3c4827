package domain

type DeadlineKind string

const (
	DeadlineStrict   DeadlineKind = "strict"
	DeadlineFlexible DeadlineKind = "flexible"
	DeadlineCourtSet DeadlineKind = "court-set"
)

// ValidDeadlineKinds is the canonical set of accepted deadline strings.
var ValidDeadlineKinds = map[string]bool{
	"strict": true, "flexible": true, "court-set": true,
}

type ExportFormat string

const (
	ExportDOT     ExportFormat = "dot"
	ExportMermaid ExportFormat = "mermaid"
	ExportJSON    ExportFormat = "json"
)

// ValidExportFormats is the canonical set of accepted export format strings.
var ValidExportFormats = map[string]bool{
	"dot": true, "mermaid": true, "json": true,
}
