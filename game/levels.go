package game

var levelTitles = [...]string{
	"Penniless Beginner",
	"Pocket Saver",
	"Block Rich Kid",
	"Street Magnate",
	"Neighbourhood Tycoon",
	"Village Baron",
	"Town Baron",
	"Township Mogul",
	"District Mogul",
	"County Tycoon", // 10
	"Regional Tycoon",
	"City Tycoon",
	"Metro Tycoon",
	"Capital Tycoon",
	"Provincial Tycoon",
	"Interprovincial Tycoon",
	"Territorial Tycoon",
	"National Rising Star",
	"Richest in the Nation",
	"Richest in the Region", // 20
	"Richest in Asia",
	"Richest in Eurasia",
	"World Rising Star",
	"Richest in the World",
	"Global Magnate",
	"Solar Magnate",
	"Galactic Magnate",
	"Cosmic Magnate",
	"Hyperdimensional Magnate",
	"Ultimate Magnate", // 30
}

// LevelTitle names a level; levels past the table share the last title.
func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelTitles) {
		return levelTitles[len(levelTitles)-1]
	}
	return levelTitles[level-1]
}
