package measure

// Measurement aggregates the values computed for a traced path. The JSON
// shape matches the measurement service wire format.
type Measurement struct {
	TotalPixels        float64            `json:"total_pixels"`
	AreaPixels         float64            `json:"area_pixels"`
	UnitName           string             `json:"unit_name"`
	UnitLabel          string             `json:"unit_label"`
	DisplayUnitName    string             `json:"display_unit_name"`
	UnitMultiplier     *float64           `json:"unit_multiplier"`
	TotalUnits         *float64           `json:"total_units"`
	AreaUnits          *float64           `json:"area_units"`
	Closed             bool               `json:"closed"`
	PointsCount        int                `json:"points_count"`
	SecondaryDistances map[string]float64 `json:"secondary_distances"`
	SecondaryAreas     map[string]float64 `json:"secondary_areas"`
}

// Compute derives pixel and unit metrics for a point sequence. A closed
// flag is honoured only when the points can actually form a loop. Pass a
// non-positive unitsPerPixel to mark the scale as uncalibrated; pixel
// units are always calibrated with multiplier 1.
func Compute(points []Point, closed bool, unitName string, unitsPerPixel float64) Measurement {
	loopClosed := closed && CanCloseLoop(points)
	totalPixels := PathLength(points, loopClosed)
	areaPixels := 0.0
	if loopClosed {
		areaPixels = PolygonArea(points)
	}

	m := Measurement{
		TotalPixels:        totalPixels,
		AreaPixels:         areaPixels,
		UnitName:           unitName,
		UnitLabel:          UnitLabel(unitName),
		DisplayUnitName:    DisplayUnitName(unitName),
		Closed:             loopClosed,
		PointsCount:        len(points),
		SecondaryDistances: map[string]float64{},
		SecondaryAreas:     map[string]float64{},
	}

	multiplier, ok := ResolveUnitMultiplier(unitName, unitsPerPixel)
	if !ok {
		return m
	}
	m.UnitMultiplier = &multiplier
	totalUnits := totalPixels * multiplier
	m.TotalUnits = &totalUnits
	if loopClosed {
		areaUnits := areaPixels * multiplier * multiplier
		m.AreaUnits = &areaUnits
	}
	if unitName == "mi" {
		m.SecondaryDistances["km"] = totalUnits * milesToKm
		if m.AreaUnits != nil {
			m.SecondaryAreas["km²"] = *m.AreaUnits * milesToKm * milesToKm
		}
	}
	return m
}
