package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldIntent      = "intent"
	FieldUtterance   = "utterance"
	FieldKind        = "kind"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldPath        = "path"
	FieldYear        = "year"
	FieldMonth       = "month"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentRouter  = "router"
	ComponentStorage = "storage"
	ComponentCharts  = "charts"
	ComponentReports = "reports"
	ComponentVoice   = "voice"
)

// Operations defines standard operation names
const (
	OpRoute   = "route"
	OpRecord  = "record"
	OpExtract = "extract"
	OpRender  = "render"
	OpExport  = "export"
	OpSeed    = "seed"
	OpStartup = "startup"
)
