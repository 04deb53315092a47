package reclassify

import (
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/facility"
)

// Reclassifier moves compliant records from Origin to Target.
type Reclassifier struct {
	// Origin is the category records are moved from.
	Origin flow.Category
	// Target is the category compliant records are moved to.
	Target flow.Category
	// Directory resolves facility context per category. It may be nil.
	Directory *facility.Directory

	moved int
}

// New creates a reclassifier for the origin/target pair.
func New(origin, target flow.Category, directory *facility.Directory) *Reclassifier {
	return &Reclassifier{
		Origin:    origin,
		Target:    target,
		Directory: directory,
	}
}

// IsCompliant reports whether the flag reads "y" or "yes", ignoring case and blanks.
func IsCompliant(flag string) bool {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Reclassify returns copies of the records with compliant origin records
// moved to the target category. Every record is returned, in input order,
// annotated with the facility of its (possibly new) category.
func (r *Reclassifier) Reclassify(records []*flow.InputRecord) []*flow.InputRecord {
	result := make([]*flow.InputRecord, 0, len(records))

	for _, record := range records {
		cloned := record.Clone()

		if r.shouldMove(cloned) {
			cloned.OriginCategory = cloned.Category
			cloned.Category = r.Target
			r.moved++
		}

		cloned.Facility = r.facilityOf(cloned)
		result = append(result, cloned)
	}

	return result
}

// Count returns how many records were moved so far.
func (r *Reclassifier) Count() int {
	return r.moved
}

func (r *Reclassifier) shouldMove(record *flow.InputRecord) bool {
	if r.Origin == r.Target || record.Reclassified() {
		return false
	}

	return record.Category == r.Origin && IsCompliant(record.ComplianceFlag)
}

// facilityOf resolves the configuration group against the record's current category.
func (r *Reclassifier) facilityOf(record *flow.InputRecord) string {
	if r.Directory == nil {
		return record.Facility
	}

	if res, ok := r.Directory.For(record.Category).Resolve(record.ConfigGroup); ok {
		return res.Facility
	}

	return ""
}
