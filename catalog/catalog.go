package catalog

// Area is a single bidding zone within a country. Code is the
// human-facing zone label, EicCode the ENTSO-E domain identifier used
// in queries. Countries that share a market share an EIC code (e.g.
// Germany and Luxembourg both map to the DE-LU zone).
type Area struct {
	Code    string
	EicCode string
}

// Country describes one catalog entry. Areas is never empty and
// Areas[0] is the designated default area for the payload's
// backward-compatible top-level fields.
type Country struct {
	Slug        string
	CountryCode string
	DisplayName string
	Timezone    string
	Currency    string
	Areas       []Area
}

// Countries is the fixed fetch catalog, in run order.
var Countries = []Country{
	{
		Slug:        "latvia",
		CountryCode: "LV",
		DisplayName: "Latvia",
		Timezone:    "Europe/Riga",
		Currency:    "EUR",
		Areas:       []Area{{Code: "LV", EicCode: "10YLV-1001A00074"}},
	},
	{
		Slug:        "lithuania",
		CountryCode: "LT",
		DisplayName: "Lithuania",
		Timezone:    "Europe/Vilnius",
		Currency:    "EUR",
		Areas:       []Area{{Code: "LT", EicCode: "10YLT-1001A0008Q"}},
	},
	{
		Slug:        "germany",
		CountryCode: "DE",
		DisplayName: "Germany",
		Timezone:    "Europe/Berlin",
		Currency:    "EUR",
		Areas:       []Area{{Code: "DE-LU", EicCode: "10Y1001A1001A82H"}},
	},
	{
		Slug:        "luxembourg",
		CountryCode: "LU",
		DisplayName: "Luxembourg",
		Timezone:    "Europe/Luxembourg",
		Currency:    "EUR",
		Areas:       []Area{{Code: "LU", EicCode: "10Y1001A1001A82H"}},
	},
	{
		Slug:        "estonia",
		CountryCode: "EE",
		DisplayName: "Estonia",
		Timezone:    "Europe/Tallinn",
		Currency:    "EUR",
		Areas:       []Area{{Code: "EE", EicCode: "10Y1001A1001A39I"}},
	},
	{
		Slug:        "poland",
		CountryCode: "PL",
		DisplayName: "Poland",
		Timezone:    "Europe/Warsaw",
		Currency:    "PLN",
		Areas:       []Area{{Code: "PL", EicCode: "10YPL-AREA-----S"}},
	},
	{
		Slug:        "serbia",
		CountryCode: "RS",
		DisplayName: "Serbia",
		Timezone:    "Europe/Belgrade",
		Currency:    "RSD",
		Areas:       []Area{{Code: "RS", EicCode: "10YCS-SERBIATSOV"}},
	},
	{
		Slug:        "bulgaria",
		CountryCode: "BG",
		DisplayName: "Bulgaria",
		Timezone:    "Europe/Sofia",
		Currency:    "BGN",
		Areas:       []Area{{Code: "BG", EicCode: "10YCA-BULGARIA-R"}},
	},
	{
		Slug:        "romania",
		CountryCode: "RO",
		DisplayName: "Romania",
		Timezone:    "Europe/Bucharest",
		Currency:    "RON",
		Areas:       []Area{{Code: "RO", EicCode: "10YRO-TEL------P"}},
	},
	{
		Slug:        "slovakia",
		CountryCode: "SK",
		DisplayName: "Slovakia",
		Timezone:    "Europe/Bratislava",
		Currency:    "EUR",
		Areas:       []Area{{Code: "SK", EicCode: "10YSK-SEPS-----K"}},
	},
	{
		Slug:        "hungary",
		CountryCode: "HU",
		DisplayName: "Hungary",
		Timezone:    "Europe/Budapest",
		Currency:    "HUF",
		Areas:       []Area{{Code: "HU", EicCode: "10YHU-MAVIR----U"}},
	},
	{
		Slug:        "croatia",
		CountryCode: "HR",
		DisplayName: "Croatia",
		Timezone:    "Europe/Zagreb",
		Currency:    "EUR",
		Areas:       []Area{{Code: "HR", EicCode: "10YHR-HEP------M"}},
	},
	{
		Slug:        "slovenia",
		CountryCode: "SI",
		DisplayName: "Slovenia",
		Timezone:    "Europe/Ljubljana",
		Currency:    "EUR",
		Areas:       []Area{{Code: "SI", EicCode: "10YSI-ELES-----O"}},
	},
	{
		Slug:        "greece",
		CountryCode: "GR",
		DisplayName: "Greece",
		Timezone:    "Europe/Athens",
		Currency:    "EUR",
		Areas:       []Area{{Code: "GR", EicCode: "10YGR-HTSO-----Y"}},
	},
	{
		Slug:        "austria",
		CountryCode: "AT",
		DisplayName: "Austria",
		Timezone:    "Europe/Vienna",
		Currency:    "EUR",
		Areas:       []Area{{Code: "AT", EicCode: "10YAT-APG------L"}},
	},
	{
		Slug:        "czech-republic",
		CountryCode: "CZ",
		DisplayName: "Czech Republic",
		Timezone:    "Europe/Prague",
		Currency:    "CZK",
		Areas:       []Area{{Code: "CZ", EicCode: "10YCZ-CEPS-----N"}},
	},
	{
		Slug:        "switzerland",
		CountryCode: "CH",
		DisplayName: "Switzerland",
		Timezone:    "Europe/Zurich",
		Currency:    "CHF",
		Areas:       []Area{{Code: "CH", EicCode: "10YCH-SWISSGRIDZ"}},
	},
	{
		Slug:        "italy",
		CountryCode: "IT",
		DisplayName: "Italy",
		Timezone:    "Europe/Rome",
		Currency:    "EUR",
		Areas: []Area{
			{Code: "IT-CNOR", EicCode: "10Y1001A1001A70O"},
			{Code: "IT-CSUD", EicCode: "10Y1001A1001A71M"},
			{Code: "IT-NORD", EicCode: "10Y1001A1001A73I"},
			{Code: "IT-SARD", EicCode: "10Y1001A1001A74G"},
			{Code: "IT-CAL", EicCode: "10Y1001C--00096J"},
			{Code: "IT-SICI", EicCode: "10Y1001A1001A75E"},
			{Code: "IT-SUD", EicCode: "10Y1001A1001A788"},
		},
	},
	{
		Slug:        "denmark",
		CountryCode: "DK",
		DisplayName: "Denmark",
		Timezone:    "Europe/Copenhagen",
		Currency:    "DKK",
		Areas: []Area{
			{Code: "DK1", EicCode: "10YDK-1--------W"},
			{Code: "DK2", EicCode: "10YDK-2--------M"},
		},
	},
	{
		Slug:        "sweden",
		CountryCode: "SE",
		DisplayName: "Sweden",
		Timezone:    "Europe/Stockholm",
		Currency:    "SEK",
		Areas: []Area{
			{Code: "SE1", EicCode: "10Y1001A1001A44P"},
			{Code: "SE2", EicCode: "10Y1001A1001A45N"},
			{Code: "SE3", EicCode: "10Y1001A1001A46L"},
			{Code: "SE4", EicCode: "10Y1001A1001A47J"},
		},
	},
	{
		Slug:        "netherlands",
		CountryCode: "NL",
		DisplayName: "Netherlands",
		Timezone:    "Europe/Amsterdam",
		Currency:    "EUR",
		Areas:       []Area{{Code: "NL", EicCode: "10YNL----------L"}},
	},
	{
		Slug:        "belgium",
		CountryCode: "BE",
		DisplayName: "Belgium",
		Timezone:    "Europe/Brussels",
		Currency:    "EUR",
		Areas:       []Area{{Code: "BE", EicCode: "10YBE----------2"}},
	},
	{
		Slug:        "portugal",
		CountryCode: "PT",
		DisplayName: "Portugal",
		Timezone:    "Europe/Lisbon",
		Currency:    "EUR",
		Areas:       []Area{{Code: "PT", EicCode: "10YPT-REN------W"}},
	},
	{
		Slug:        "spain",
		CountryCode: "ES",
		DisplayName: "Spain",
		Timezone:    "Europe/Madrid",
		Currency:    "EUR",
		Areas:       []Area{{Code: "ES", EicCode: "10YES-REE------0"}},
	},
	{
		Slug:        "finland",
		CountryCode: "FI",
		DisplayName: "Finland",
		Timezone:    "Europe/Helsinki",
		Currency:    "EUR",
		Areas:       []Area{{Code: "FI", EicCode: "10YFI-1--------U"}},
	},
	{
		Slug:        "norway",
		CountryCode: "NO",
		DisplayName: "Norway",
		Timezone:    "Europe/Oslo",
		Currency:    "NOK",
		Areas: []Area{
			{Code: "NO1", EicCode: "10YNO-1--------2"},
			{Code: "NO2", EicCode: "10YNO-2--------T"},
			{Code: "NO3", EicCode: "10YNO-3--------J"},
			{Code: "NO4", EicCode: "10YNO-4--------9"},
			{Code: "NO5", EicCode: "10Y1001A1001A48H"},
		},
	},
	{
		Slug:        "france",
		CountryCode: "FR",
		DisplayName: "France",
		Timezone:    "Europe/Paris",
		Currency:    "EUR",
		Areas:       []Area{{Code: "FR", EicCode: "10YFR-RTE------C"}},
	},
}

// Find returns the catalog entry for a slug, or false when unknown.
func Find(slug string) (Country, bool) {
	for _, c := range Countries {
		if c.Slug == slug {
			return c, true
		}
	}
	return Country{}, false
}
