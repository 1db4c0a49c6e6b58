package measure

// UnitPixels is the identity unit: one unit per pixel, always calibrated.
const UnitPixels = "px"

// milesToKm converts statute miles to kilometres for secondary readouts.
const milesToKm = 1.60934

// UnitChoice pairs a unit identifier with its UI label.
type UnitChoice struct {
	Name  string
	Label string
}

// UnitChoices lists the units offered by the tool, in display order.
var UnitChoices = []UnitChoice{
	{Name: "px", Label: "px"},
	{Name: "mm", Label: "mm"},
	{Name: "cm", Label: "cm"},
	{Name: "km", Label: "km"},
	{Name: "mi", Label: "miles (mi)"},
}

// UnitLabel returns the UI label for a unit name, falling back to the name
// itself for unknown units.
func UnitLabel(name string) string {
	for _, c := range UnitChoices {
		if c.Name == name {
			return c.Label
		}
	}
	return name
}

// KnownUnit reports whether name is one of the offered units.
func KnownUnit(name string) bool {
	for _, c := range UnitChoices {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DisplayUnitName returns the concise unit suffix used in measurement and
// area readouts.
func DisplayUnitName(name string) string {
	if name == "mi" {
		return "mi"
	}
	return name
}

// ResolveUnitMultiplier returns the factor converting a pixel distance to
// the requested unit. Pixel units always resolve to 1; other units resolve
// to unitsPerPixel when it is a positive finite number.
func ResolveUnitMultiplier(unitName string, unitsPerPixel float64) (float64, bool) {
	if unitName == UnitPixels {
		return 1, true
	}
	if validUnitsPerPixel(unitsPerPixel) {
		return unitsPerPixel, true
	}
	return 0, false
}
