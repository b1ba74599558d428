package domain

import "time"

// FieldType enumerates the content kinds a batch run can generate.
type FieldType string

const (
	FieldTitle            FieldType = "title"
	FieldShortDescription FieldType = "short_description"
	FieldDescription      FieldType = "description"
	FieldSEOTitle         FieldType = "seo_title"
	FieldMetaDescription  FieldType = "meta_description"
	FieldSKU              FieldType = "sku"
	FieldAltText          FieldType = "alt_text"
)

// FieldOrder is the fixed order in which enabled fields are generated for a
// product. Alt text runs last so vision calls follow the cheaper text calls.
var FieldOrder = []FieldType{
	FieldTitle,
	FieldShortDescription,
	FieldDescription,
	FieldSEOTitle,
	FieldMetaDescription,
	FieldSKU,
	FieldAltText,
}

// EnabledFields filters the requested content-type map down to the known
// field types, preserving the fixed generation order.
func EnabledFields(requested map[FieldType]bool) []FieldType {
	var out []FieldType
	for _, ft := range FieldOrder {
		if requested[ft] {
			out = append(out, ft)
		}
	}
	return out
}

// BatchJobStatus enumerates batch job lifecycle states.
type BatchJobStatus string

const (
	BatchJobPending   BatchJobStatus = "pending"
	BatchJobRunning   BatchJobStatus = "running"
	BatchJobCompleted BatchJobStatus = "completed"
	// BatchJobPartial exists in the schema but is not currently produced:
	// runs with mixed outcomes finish as completed and the item rows carry
	// the per-product detail.
	BatchJobPartial BatchJobStatus = "partial"
	BatchJobFailed  BatchJobStatus = "failed"
)

// BatchItemStatus enumerates per-product item states. Transitions are
// monotonic: pending -> processing -> completed | failed.
type BatchItemStatus string

const (
	BatchItemPending    BatchItemStatus = "pending"
	BatchItemProcessing BatchItemStatus = "processing"
	BatchItemCompleted  BatchItemStatus = "completed"
	BatchItemFailed     BatchItemStatus = "failed"
)

// BatchJob represents one orchestrator run over a list of products.
// processed_items = successful_items + failed_items holds at every
// observation point after the loop advances.
type BatchJob struct {
	ID              string
	UserID          string
	StoreID         string
	ContentTypes    map[FieldType]bool
	Status          BatchJobStatus
	TotalItems      int
	ProcessedItems  int
	SuccessfulItems int
	FailedItems     int
	Settings        GenerationSettings
	ErrorMessage    string
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BatchJobItem is the bookkeeping row for a single product in a batch.
type BatchJobItem struct {
	ID           string
	JobID        string
	ProductID    string
	Status       BatchItemStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// maxItemErrorLen bounds the error text persisted on an item row.
const maxItemErrorLen = 500

// TruncateItemError trims an error message to the length the item row stores.
func TruncateItemError(msg string) string {
	if len(msg) <= maxItemErrorLen {
		return msg
	}
	return msg[:maxItemErrorLen]
}
