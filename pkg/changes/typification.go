package changes

import (
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/taxon"
)

// Typification splits disagreeing names by the type relation they had
// with their accepted name in the old release.
func Typification(rows []drift.Row) Table {
	var homo, hetero, accepted, unknown int
	for _, r := range rows {
		switch {
		case r.OldStatus.IsAccepted():
			accepted++
		case r.Typification == taxon.Homotypic:
			homo++
		case r.Typification == taxon.Heterotypic:
			hetero++
		default:
			unknown++
		}
	}
	return newTable(
		Line{Label: "discrepancies", Count: len(rows)},
		Line{Label: "accepted in old", Count: accepted},
		Line{Label: "homotypic synonyms in old", Count: homo},
		Line{Label: "heterotypic synonyms in old", Count: hetero},
		Line{Label: "other statuses in old", Count: unknown},
	)
}
