package dataprocessing

import (
	"flowplate/pkg/contracts/domain"
)

// Merge joins every measurement row to its sample and group labels by well
// position. Rows whose well is missing from either map become UnmappedWell
// diagnostics and are excluded from the annotated records; this is a soft
// failure because partially filled plates are common, and the caller decides
// whether to proceed or block. Record order follows measurement-row order.
//
// Duplicate wells in the measurement table are legitimate replicates and are
// all kept; this layer never de-duplicates.
func Merge(table *domain.MeasurementTable, sampleMap, groupMap *domain.PlateMap) (*domain.AnnotatedSet, []domain.UnmappedWell) {
	set := &domain.AnnotatedSet{
		Columns: append([]string(nil), table.Columns...),
		Records: make([]domain.AnnotatedRecord, 0, len(table.Rows)),
	}
	var unmapped []domain.UnmappedWell

	for _, row := range table.Rows {
		sample, sampleOK := sampleMap.Label(row.Well)
		group, groupOK := groupMap.Label(row.Well)
		if !sampleOK || !groupOK {
			unmapped = append(unmapped, domain.UnmappedWell{
				Well:          row.Well,
				SourceName:    row.SourceName,
				MissingSample: !sampleOK,
				MissingGroup:  !groupOK,
			})
			continue
		}

		values := make([]float64, len(row.Values))
		copy(values, row.Values)
		set.Records = append(set.Records, domain.AnnotatedRecord{
			Well:   row.Well,
			Sample: sample,
			Group:  group,
			Values: values,
		})
	}

	return set, unmapped
}
