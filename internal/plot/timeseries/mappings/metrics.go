package mappings

type FieldMapping struct {
	Label      string
	ShortLabel string
	Min        interface{}
	Max        interface{}
	Unit       string
}

var FieldMappings = map[string]FieldMapping{
	"num_tumor_cells": {
		Label:      "Number of Tumor Cells",
		ShortLabel: "Tumor Cells",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"num_alive_cart": {
		Label:      "Alive CAR-T Cells",
		ShortLabel: "CAR-T Cells",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"tumor_cells_type1": {
		Label:      "Type 1 Tumor Cells",
		ShortLabel: "Type 1",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"tumor_cells_type2": {
		Label:      "Type 2 Tumor Cells",
		ShortLabel: "Type 2",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"tumor_cells_type3": {
		Label:      "Type 3 Tumor Cells",
		ShortLabel: "Type 3",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"tumor_cells_type4": {
		Label:      "Type 4 Tumor Cells",
		ShortLabel: "Type 4",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"tumor_cells_type5_dead": {
		Label:      "Type 5 (Dead) Tumor Cells",
		ShortLabel: "Type 5 (Dead)",
		Min:        0.0,
		Max:        "auto",
		Unit:       "cells",
	},
	"average_oncoprotein": {
		Label:      "Average Oncoprotein Level",
		ShortLabel: "Oncoprotein",
		Min:        0.0,
		Max:        "auto",
		Unit:       "",
	},
	"average_oxygen_cancer_cells": {
		Label:      "Average Oxygen Level",
		ShortLabel: "Oxygen",
		Min:        0.0,
		Max:        "auto",
		Unit:       "mmHg",
	},
	"tumor_radius": {
		Label:      "Tumor Radius ($\\mu$m)",
		ShortLabel: "Tumor Radius",
		Min:        0.0,
		Max:        "auto",
		Unit:       "$\\mu$m",
	},
	"total_days": {
		Label:      "Time (days)",
		ShortLabel: "Time",
		Min:        0.0,
		Max:        "auto",
		Unit:       "days",
	},
}

// GetFieldMapping returns the mapping for a known field, or a generic
// auto-scaled mapping labeled with the field name. Config-driven fields are
// not limited to the table above.
func GetFieldMapping(field string) FieldMapping {
	if mapping, exists := FieldMappings[field]; exists {
		return mapping
	}
	return FieldMapping{
		Label:      field,
		ShortLabel: field,
		Min:        "auto",
		Max:        "auto",
	}
}

// GetRatioMapping is the mapping used for percentage series derived from a
// numerator/denominator field pair.
func GetRatioMapping(name string) FieldMapping {
	base := GetFieldMapping(name)
	return FieldMapping{
		Label:      base.ShortLabel + " (\\%)",
		ShortLabel: base.ShortLabel + " (\\%)",
		Min:        0.0,
		Max:        100.0,
		Unit:       "\\%",
	}
}
