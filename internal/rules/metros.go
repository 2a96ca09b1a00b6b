package rules

// Metro describes one major US metro area for geographic relevance scoring.
// CityNames score +10 per match, LocalKeywords +5, StateNames +2. The summed
// score is capped by MetroScoreCap.
type Metro struct {
	ID            string
	CityNames     []string
	LocalKeywords []string
	StateNames    []string
}

// MetroScoreCap bounds a single metro's relevance contribution.
const MetroScoreCap = 20

// Metros covers the major US media markets the downstream consumer targets.
var Metros = []Metro{
	{"nyc", []string{"new york city", "nyc", "manhattan"}, []string{"brooklyn", "queens", "bronx", "wall street", "mta"}, []string{"new york"}},
	{"la", []string{"los angeles"}, []string{"hollywood", "lakers", "dodgers", "lax"}, []string{"california"}},
	{"chicago", []string{"chicago"}, []string{"cook county", "bears", "cubs", "white sox"}, []string{"illinois"}},
	{"houston", []string{"houston"}, []string{"astros", "texans", "harris county"}, []string{"texas"}},
	{"phoenix", []string{"phoenix"}, []string{"maricopa", "suns", "diamondbacks", "scottsdale"}, []string{"arizona"}},
	{"philadelphia", []string{"philadelphia"}, []string{"eagles", "phillies", "sixers"}, []string{"pennsylvania"}},
	{"san_antonio", []string{"san antonio"}, []string{"spurs", "alamo"}, []string{"texas"}},
	{"san_diego", []string{"san diego"}, []string{"padres", "tijuana border"}, []string{"california"}},
	{"dallas", []string{"dallas"}, []string{"cowboys", "mavericks", "fort worth", "dfw"}, []string{"texas"}},
	{"austin", []string{"austin"}, []string{"sxsw", "travis county"}, []string{"texas"}},
	{"seattle", []string{"seattle"}, []string{"seahawks", "mariners", "amazon hq", "puget sound"}, []string{"washington"}},
	{"denver", []string{"denver"}, []string{"broncos", "nuggets", "rockies"}, []string{"colorado"}},
	{"boston", []string{"boston"}, []string{"celtics", "red sox", "patriots", "fenway"}, []string{"massachusetts"}},
	{"atlanta", []string{"atlanta"}, []string{"braves", "falcons", "hartsfield"}, []string{"georgia"}},
	{"miami", []string{"miami"}, []string{"dolphins", "heat", "dade county"}, []string{"florida"}},
	{"detroit", []string{"detroit"}, []string{"lions", "tigers", "pistons", "motor city"}, []string{"michigan"}},
	{"minneapolis", []string{"minneapolis"}, []string{"vikings", "twins", "twin cities", "st. paul"}, []string{"minnesota"}},
	{"tampa", []string{"tampa"}, []string{"buccaneers", "rays", "st. petersburg"}, []string{"florida"}},
	{"st_louis", []string{"st. louis", "st louis"}, []string{"cardinals", "blues", "gateway arch"}, []string{"missouri"}},
	{"dc", []string{"washington, d.c.", "washington dc"}, []string{"capitol hill", "commanders", "nationals", "beltway"}, []string{"maryland", "virginia"}},
}
