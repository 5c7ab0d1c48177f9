package sky

import "fmt"

// CatalogObject is a fixed-position deep-sky object with J2000 coordinates.
// Size is the apparent major axis in arcminutes.
type CatalogObject struct {
	ID            string
	Name          string
	Constellation string
	Type          string
	RADeg         float64
	DecDeg        float64
	Magnitude     float64
	Size          float64
	Tip           string
}

const (
	typeGlobular  = "Globular Cluster"
	typeOpen      = "Open Cluster"
	typeNebula    = "Nebula"
	typePlanetary = "Planetary Nebula"
	typeGalaxy    = "Galaxy"
	typeRemnant   = "Supernova Remnant"
	typeStarCloud = "Star Cloud"
	typeDouble    = "Double Star"
	typeAsterism  = "Asterism"
)

var typeTips = map[string]string{
	typeGlobular:  "Use averted vision; higher power resolves outer stars",
	typeOpen:      "Low power and a wide field show it best",
	typeNebula:    "A UHC or OIII filter boosts contrast",
	typePlanetary: "Small and bright; use medium to high power",
	typeGalaxy:    "Needs dark skies; look for a faint oval glow",
	typeRemnant:   "Faint and diffuse; an OIII filter helps",
	typeStarCloud: "Sweep slowly with binoculars",
	typeDouble:    "A close pair; use high power",
	typeAsterism:  "A small star grouping rather than a true cluster",
}

// DisplayName falls back to a generic label for objects without a common name.
func (o CatalogObject) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("%s in %s", o.Type, o.Constellation)
}

// Equipment recommends the smallest instrument that shows the object.
func (o CatalogObject) Equipment() string {
	switch {
	case o.Magnitude < 5:
		return "Naked eye"
	case o.Magnitude < 7:
		return "Binoculars"
	case o.Magnitude < 9:
		return "Small telescope"
	default:
		return "Telescope"
	}
}

func (o CatalogObject) ObservingTip() string {
	if o.Tip != "" {
		return o.Tip
	}
	return typeTips[o.Type]
}

// Messier is the full 110-object Messier catalog.
var Messier = []CatalogObject{
	{"M1", "Crab Nebula", "Taurus", typeRemnant, 83.63, 22.01, 8.4, 6, ""},
	{"M2", "", "Aquarius", typeGlobular, 323.36, -0.82, 6.5, 16, ""},
	{"M3", "", "Canes Venatici", typeGlobular, 205.55, 28.38, 6.2, 18, ""},
	{"M4", "", "Scorpius", typeGlobular, 245.90, -26.53, 5.6, 36, "Sits just west of Antares"},
	{"M5", "", "Serpens", typeGlobular, 229.64, 2.08, 5.6, 23, ""},
	{"M6", "Butterfly Cluster", "Scorpius", typeOpen, 265.08, -32.22, 4.2, 25, ""},
	{"M7", "Ptolemy Cluster", "Scorpius", typeOpen, 268.47, -34.82, 3.3, 80, "Visible to the naked eye under dark skies"},
	{"M8", "Lagoon Nebula", "Sagittarius", typeNebula, 270.95, -24.38, 6.0, 90, "Dark lane splits the glow in binoculars"},
	{"M9", "", "Ophiuchus", typeGlobular, 259.80, -18.52, 7.7, 12, ""},
	{"M10", "", "Ophiuchus", typeGlobular, 254.29, -4.10, 6.6, 20, ""},
	{"M11", "Wild Duck Cluster", "Scutum", typeOpen, 282.77, -6.27, 6.3, 14, "Rich and compact; medium power shows the V shape"},
	{"M12", "", "Ophiuchus", typeGlobular, 251.81, -1.95, 6.7, 16, ""},
	{"M13", "Hercules Cluster", "Hercules", typeGlobular, 250.42, 36.46, 5.8, 20, "Find it on the Keystone's western edge"},
	{"M14", "", "Ophiuchus", typeGlobular, 264.40, -3.25, 7.6, 11, ""},
	{"M15", "", "Pegasus", typeGlobular, 322.49, 12.17, 6.2, 18, ""},
	{"M16", "Eagle Nebula", "Serpens", typeNebula, 274.70, -13.79, 6.0, 35, ""},
	{"M17", "Omega Nebula", "Sagittarius", typeNebula, 275.20, -16.18, 6.0, 11, "Look for the swan-shaped bar"},
	{"M18", "", "Sagittarius", typeOpen, 274.98, -17.13, 7.5, 9, ""},
	{"M19", "", "Ophiuchus", typeGlobular, 255.66, -26.27, 6.8, 17, ""},
	{"M20", "Trifid Nebula", "Sagittarius", typeNebula, 270.66, -23.03, 6.3, 28, ""},
	{"M21", "", "Sagittarius", typeOpen, 271.15, -22.50, 6.5, 13, ""},
	{"M22", "Sagittarius Cluster", "Sagittarius", typeGlobular, 279.10, -23.90, 5.1, 32, "One of the brightest globulars; resolves easily"},
	{"M23", "", "Sagittarius", typeOpen, 269.20, -19.02, 6.9, 27, ""},
	{"M24", "Sagittarius Star Cloud", "Sagittarius", typeStarCloud, 274.23, -18.48, 4.6, 90, ""},
	{"M25", "", "Sagittarius", typeOpen, 277.90, -19.25, 4.6, 32, ""},
	{"M26", "", "Scutum", typeOpen, 281.30, -9.40, 8.0, 15, ""},
	{"M27", "Dumbbell Nebula", "Vulpecula", typePlanetary, 299.90, 22.72, 7.5, 8, "Large and bright; an OIII filter shows the apple-core shape"},
	{"M28", "", "Sagittarius", typeGlobular, 276.14, -24.87, 6.8, 11, ""},
	{"M29", "", "Cygnus", typeOpen, 305.98, 38.52, 7.1, 7, ""},
	{"M30", "", "Capricornus", typeGlobular, 325.09, -23.18, 7.2, 12, ""},
	{"M31", "Andromeda Galaxy", "Andromeda", typeGalaxy, 10.68, 41.27, 3.4, 178, "Visible to the naked eye; binoculars show its full length"},
	{"M32", "", "Andromeda", typeGalaxy, 10.67, 40.87, 8.1, 8, "Companion of M31, just south of its core"},
	{"M33", "Triangulum Galaxy", "Triangulum", typeGalaxy, 23.46, 30.66, 5.7, 73, "Low surface brightness; use the lowest power"},
	{"M34", "", "Perseus", typeOpen, 40.50, 42.78, 5.5, 35, ""},
	{"M35", "", "Gemini", typeOpen, 92.23, 24.33, 5.3, 28, ""},
	{"M36", "Pinwheel Cluster", "Auriga", typeOpen, 84.03, 34.13, 6.3, 12, ""},
	{"M37", "", "Auriga", typeOpen, 88.10, 32.55, 6.2, 24, ""},
	{"M38", "Starfish Cluster", "Auriga", typeOpen, 82.18, 35.83, 7.4, 21, ""},
	{"M39", "", "Cygnus", typeOpen, 323.05, 48.43, 4.6, 32, ""},
	{"M40", "Winnecke 4", "Ursa Major", typeDouble, 185.55, 58.08, 8.4, 1, ""},
	{"M41", "", "Canis Major", typeOpen, 101.50, -20.73, 4.5, 38, "Four degrees south of Sirius"},
	{"M42", "Orion Nebula", "Orion", typeNebula, 83.82, -5.39, 4.0, 85, "Look for the Trapezium stars at its heart"},
	{"M43", "De Mairan's Nebula", "Orion", typeNebula, 83.88, -5.27, 9.0, 20, ""},
	{"M44", "Beehive Cluster", "Cancer", typeOpen, 130.10, 19.98, 3.7, 95, "Best in binoculars"},
	{"M45", "Pleiades", "Taurus", typeOpen, 56.75, 24.12, 1.6, 110, "Best in binoculars or with the naked eye"},
	{"M46", "", "Puppis", typeOpen, 115.44, -14.81, 6.1, 27, ""},
	{"M47", "", "Puppis", typeOpen, 114.15, -14.50, 4.2, 30, ""},
	{"M48", "", "Hydra", typeOpen, 123.45, -5.80, 5.5, 54, ""},
	{"M49", "", "Virgo", typeGalaxy, 187.44, 8.00, 8.4, 9, ""},
	{"M50", "Heart-Shaped Cluster", "Monoceros", typeOpen, 105.80, -8.33, 5.9, 16, ""},
	{"M51", "Whirlpool Galaxy", "Canes Venatici", typeGalaxy, 202.47, 47.20, 8.4, 11, "Spiral arms show under dark skies"},
	{"M52", "", "Cassiopeia", typeOpen, 351.05, 61.58, 7.3, 13, ""},
	{"M53", "", "Coma Berenices", typeGlobular, 198.23, 18.17, 7.6, 13, ""},
	{"M54", "", "Sagittarius", typeGlobular, 283.76, -30.48, 7.6, 12, ""},
	{"M55", "", "Sagittarius", typeGlobular, 295.00, -30.96, 6.3, 19, ""},
	{"M56", "", "Lyra", typeGlobular, 289.15, 30.18, 8.3, 9, ""},
	{"M57", "Ring Nebula", "Lyra", typePlanetary, 283.40, 33.03, 8.8, 1.4, "Between Beta and Gamma Lyrae; a smoke ring at 100x"},
	{"M58", "", "Virgo", typeGalaxy, 189.43, 11.82, 9.7, 6, ""},
	{"M59", "", "Virgo", typeGalaxy, 190.51, 11.65, 9.6, 5, ""},
	{"M60", "", "Virgo", typeGalaxy, 190.92, 11.55, 8.8, 7, ""},
	{"M61", "", "Virgo", typeGalaxy, 185.48, 4.47, 9.7, 6, ""},
	{"M62", "", "Ophiuchus", typeGlobular, 255.30, -30.11, 6.5, 15, ""},
	{"M63", "Sunflower Galaxy", "Canes Venatici", typeGalaxy, 198.96, 42.03, 8.6, 12, ""},
	{"M64", "Black Eye Galaxy", "Coma Berenices", typeGalaxy, 194.18, 21.68, 8.5, 10, "The dark dust lane needs a medium aperture"},
	{"M65", "", "Leo", typeGalaxy, 169.73, 13.09, 9.3, 10, "Part of the Leo Triplet"},
	{"M66", "", "Leo", typeGalaxy, 170.06, 12.99, 8.9, 9, "Part of the Leo Triplet"},
	{"M67", "", "Cancer", typeOpen, 132.83, 11.81, 6.1, 30, ""},
	{"M68", "", "Hydra", typeGlobular, 189.87, -26.74, 7.8, 11, ""},
	{"M69", "", "Sagittarius", typeGlobular, 277.85, -32.35, 7.6, 10, ""},
	{"M70", "", "Sagittarius", typeGlobular, 280.80, -32.29, 7.9, 8, ""},
	{"M71", "", "Sagitta", typeGlobular, 298.44, 18.78, 8.2, 7, ""},
	{"M72", "", "Aquarius", typeGlobular, 313.37, -12.54, 9.3, 7, ""},
	{"M73", "", "Aquarius", typeAsterism, 314.73, -12.63, 9.0, 3, ""},
	{"M74", "Phantom Galaxy", "Pisces", typeGalaxy, 24.17, 15.78, 9.4, 10, "One of the faintest Messier objects"},
	{"M75", "", "Sagittarius", typeGlobular, 301.52, -21.92, 8.5, 7, ""},
	{"M76", "Little Dumbbell Nebula", "Perseus", typePlanetary, 25.58, 51.58, 10.1, 2.7, ""},
	{"M77", "Cetus A", "Cetus", typeGalaxy, 40.67, -0.01, 8.9, 7, ""},
	{"M78", "", "Orion", typeNebula, 86.68, 0.05, 8.3, 8, "A reflection nebula; filters do not help"},
	{"M79", "", "Lepus", typeGlobular, 81.04, -24.52, 7.7, 10, ""},
	{"M80", "", "Scorpius", typeGlobular, 244.26, -22.98, 7.3, 10, ""},
	{"M81", "Bode's Galaxy", "Ursa Major", typeGalaxy, 148.89, 69.07, 6.9, 27, "Shares a low-power field with M82"},
	{"M82", "Cigar Galaxy", "Ursa Major", typeGalaxy, 148.97, 69.68, 8.4, 11, "Shares a low-power field with M81"},
	{"M83", "Southern Pinwheel Galaxy", "Hydra", typeGalaxy, 204.25, -29.87, 7.5, 13, ""},
	{"M84", "", "Virgo", typeGalaxy, 186.27, 12.89, 9.1, 6, "Start of Markarian's Chain"},
	{"M85", "", "Coma Berenices", typeGalaxy, 186.35, 18.19, 9.1, 7, ""},
	{"M86", "", "Virgo", typeGalaxy, 186.55, 12.95, 8.9, 9, "Part of Markarian's Chain"},
	{"M87", "Virgo A", "Virgo", typeGalaxy, 187.71, 12.39, 8.6, 7, ""},
	{"M88", "", "Coma Berenices", typeGalaxy, 188.00, 14.42, 9.6, 7, ""},
	{"M89", "", "Virgo", typeGalaxy, 188.92, 12.56, 9.8, 5, ""},
	{"M90", "", "Virgo", typeGalaxy, 189.21, 13.16, 9.5, 10, ""},
	{"M91", "", "Coma Berenices", typeGalaxy, 188.86, 14.50, 10.2, 5, ""},
	{"M92", "", "Hercules", typeGlobular, 259.28, 43.14, 6.4, 14, "Often overlooked in favour of M13"},
	{"M93", "", "Puppis", typeOpen, 116.13, -23.86, 6.0, 22, ""},
	{"M94", "Cat's Eye Galaxy", "Canes Venatici", typeGalaxy, 192.72, 41.12, 8.2, 11, ""},
	{"M95", "", "Leo", typeGalaxy, 161.00, 11.70, 9.7, 7, ""},
	{"M96", "", "Leo", typeGalaxy, 161.69, 11.82, 9.2, 8, ""},
	{"M97", "Owl Nebula", "Ursa Major", typePlanetary, 168.70, 55.02, 9.9, 3.4, "An OIII filter shows the two dark eyes"},
	{"M98", "", "Coma Berenices", typeGalaxy, 183.45, 14.90, 10.1, 10, ""},
	{"M99", "", "Coma Berenices", typeGalaxy, 184.71, 14.42, 9.9, 5, ""},
	{"M100", "", "Coma Berenices", typeGalaxy, 185.73, 15.82, 9.3, 7, ""},
	{"M101", "Pinwheel Galaxy", "Ursa Major", typeGalaxy, 210.80, 54.35, 7.9, 29, "Large and faint; needs dark skies"},
	{"M102", "Spindle Galaxy", "Draco", typeGalaxy, 226.62, 55.76, 9.9, 5, ""},
	{"M103", "", "Cassiopeia", typeOpen, 23.34, 60.66, 7.4, 6, ""},
	{"M104", "Sombrero Galaxy", "Virgo", typeGalaxy, 190.00, -11.62, 8.0, 9, "The dust lane shows in medium apertures"},
	{"M105", "", "Leo", typeGalaxy, 161.96, 12.58, 9.3, 5, ""},
	{"M106", "", "Canes Venatici", typeGalaxy, 184.74, 47.30, 8.4, 19, ""},
	{"M107", "", "Ophiuchus", typeGlobular, 248.13, -13.05, 7.9, 13, ""},
	{"M108", "Surfboard Galaxy", "Ursa Major", typeGalaxy, 167.88, 55.67, 10.0, 8, ""},
	{"M109", "", "Ursa Major", typeGalaxy, 179.40, 53.37, 9.8, 7, ""},
	{"M110", "", "Andromeda", typeGalaxy, 10.09, 41.69, 8.5, 17, "Second companion of M31, northwest of the core"},
}
