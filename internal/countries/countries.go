// Package countries holds the static lookup between OWID country names
// and ISO 3166-1 alpha-3 codes. Matching is exact and case-sensitive;
// the names follow the OWID entity naming convention (e.g. "Democratic
// Republic of Congo", "Vatican").
package countries

// countryToISO3 maps OWID country display names to ISO3 codes.
var countryToISO3 = map[string]string{
	"Afghanistan":                      "AFG",
	"Albania":                          "ALB",
	"Algeria":                          "DZA",
	"Andorra":                          "AND",
	"Angola":                           "AGO",
	"Antigua and Barbuda":              "ATG",
	"Argentina":                        "ARG",
	"Armenia":                          "ARM",
	"Australia":                        "AUS",
	"Austria":                          "AUT",
	"Azerbaijan":                       "AZE",
	"Bahamas":                          "BHS",
	"Bahrain":                          "BHR",
	"Bangladesh":                       "BGD",
	"Barbados":                         "BRB",
	"Belarus":                          "BLR",
	"Belgium":                          "BEL",
	"Belize":                           "BLZ",
	"Benin":                            "BEN",
	"Bhutan":                           "BTN",
	"Bolivia":                          "BOL",
	"Bosnia and Herzegovina":           "BIH",
	"Botswana":                         "BWA",
	"Brazil":                           "BRA",
	"Brunei":                           "BRN",
	"Bulgaria":                         "BGR",
	"Burkina Faso":                     "BFA",
	"Burundi":                          "BDI",
	"Cambodia":                         "KHM",
	"Cameroon":                         "CMR",
	"Canada":                           "CAN",
	"Cape Verde":                       "CPV",
	"Central African Republic":         "CAF",
	"Chad":                             "TCD",
	"Chile":                            "CHL",
	"China":                            "CHN",
	"Colombia":                         "COL",
	"Comoros":                          "COM",
	"Congo":                            "COG",
	"Costa Rica":                       "CRI",
	"Cote d'Ivoire":                    "CIV",
	"Croatia":                          "HRV",
	"Cuba":                             "CUB",
	"Cyprus":                           "CYP",
	"Czechia":                          "CZE",
	"Czech Republic":                   "CZE",
	"Democratic Republic of Congo":     "COD",
	"Denmark":                          "DNK",
	"Djibouti":                         "DJI",
	"Dominica":                         "DMA",
	"Dominican Republic":               "DOM",
	"East Timor":                       "TLS",
	"Ecuador":                          "ECU",
	"Egypt":                            "EGY",
	"El Salvador":                      "SLV",
	"Equatorial Guinea":                "GNQ",
	"Eritrea":                          "ERI",
	"Estonia":                          "EST",
	"Eswatini":                         "SWZ",
	"Ethiopia":                         "ETH",
	"Fiji":                             "FJI",
	"Finland":                          "FIN",
	"France":                           "FRA",
	"Gabon":                            "GAB",
	"Gambia":                           "GMB",
	"Georgia":                          "GEO",
	"Germany":                          "DEU",
	"Ghana":                            "GHA",
	"Greece":                           "GRC",
	"Greenland":                        "GRL",
	"Grenada":                          "GRD",
	"Guatemala":                        "GTM",
	"Guinea":                           "GIN",
	"Guinea-Bissau":                    "GNB",
	"Guyana":                           "GUY",
	"Haiti":                            "HTI",
	"Honduras":                         "HND",
	"Hong Kong":                        "HKG",
	"Hungary":                          "HUN",
	"Iceland":                          "ISL",
	"India":                            "IND",
	"Indonesia":                        "IDN",
	"Iran":                             "IRN",
	"Iraq":                             "IRQ",
	"Ireland":                          "IRL",
	"Israel":                           "ISR",
	"Italy":                            "ITA",
	"Jamaica":                          "JAM",
	"Japan":                            "JPN",
	"Jordan":                           "JOR",
	"Kazakhstan":                       "KAZ",
	"Kenya":                            "KEN",
	"Kiribati":                         "KIR",
	"Kuwait":                           "KWT",
	"Kyrgyzstan":                       "KGZ",
	"Laos":                             "LAO",
	"Latvia":                           "LVA",
	"Lebanon":                          "LBN",
	"Lesotho":                          "LSO",
	"Liberia":                          "LBR",
	"Libya":                            "LBY",
	"Liechtenstein":                    "LIE",
	"Lithuania":                        "LTU",
	"Luxembourg":                       "LUX",
	"Macao":                            "MAC",
	"Madagascar":                       "MDG",
	"Malawi":                           "MWI",
	"Malaysia":                         "MYS",
	"Maldives":                         "MDV",
	"Mali":                             "MLI",
	"Malta":                            "MLT",
	"Marshall Islands":                 "MHL",
	"Mauritania":                       "MRT",
	"Mauritius":                        "MUS",
	"Mexico":                           "MEX",
	"Micronesia (country)":             "FSM",
	"Moldova":                          "MDA",
	"Monaco":                           "MCO",
	"Mongolia":                         "MNG",
	"Montenegro":                       "MNE",
	"Morocco":                          "MAR",
	"Mozambique":                       "MOZ",
	"Myanmar":                          "MMR",
	"Namibia":                          "NAM",
	"Nauru":                            "NRU",
	"Nepal":                            "NPL",
	"Netherlands":                      "NLD",
	"New Zealand":                      "NZL",
	"Nicaragua":                        "NIC",
	"Niger":                            "NER",
	"Nigeria":                          "NGA",
	"North Korea":                      "PRK",
	"North Macedonia":                  "MKD",
	"Norway":                           "NOR",
	"Oman":                             "OMN",
	"Pakistan":                         "PAK",
	"Palau":                            "PLW",
	"Palestine":                        "PSE",
	"Panama":                           "PAN",
	"Papua New Guinea":                 "PNG",
	"Paraguay":                         "PRY",
	"Peru":                             "PER",
	"Philippines":                      "PHL",
	"Poland":                           "POL",
	"Portugal":                         "PRT",
	"Puerto Rico":                      "PRI",
	"Qatar":                            "QAT",
	"Romania":                          "ROU",
	"Russia":                           "RUS",
	"Rwanda":                           "RWA",
	"Saint Kitts and Nevis":            "KNA",
	"Saint Lucia":                      "LCA",
	"Saint Vincent and the Grenadines": "VCT",
	"Samoa":                            "WSM",
	"San Marino":                       "SMR",
	"Sao Tome and Principe":            "STP",
	"Saudi Arabia":                     "SAU",
	"Senegal":                          "SEN",
	"Serbia":                           "SRB",
	"Seychelles":                       "SYC",
	"Sierra Leone":                     "SLE",
	"Singapore":                        "SGP",
	"Slovakia":                         "SVK",
	"Slovenia":                         "SVN",
	"Solomon Islands":                  "SLB",
	"Somalia":                          "SOM",
	"South Africa":                     "ZAF",
	"South Korea":                      "KOR",
	"South Sudan":                      "SSD",
	"Spain":                            "ESP",
	"Sri Lanka":                        "LKA",
	"Sudan":                            "SDN",
	"Suriname":                         "SUR",
	"Sweden":                           "SWE",
	"Switzerland":                      "CHE",
	"Syria":                            "SYR",
	"Taiwan":                           "TWN",
	"Tajikistan":                       "TJK",
	"Tanzania":                         "TZA",
	"Thailand":                         "THA",
	"Togo":                             "TGO",
	"Tonga":                            "TON",
	"Trinidad and Tobago":              "TTO",
	"Tunisia":                          "TUN",
	"Turkey":                           "TUR",
	"Turkmenistan":                     "TKM",
	"Tuvalu":                           "TUV",
	"Uganda":                           "UGA",
	"Ukraine":                          "UKR",
	"United Arab Emirates":             "ARE",
	"United Kingdom":                   "GBR",
	"United States":                    "USA",
	"Uruguay":                          "URY",
	"Uzbekistan":                       "UZB",
	"Vanuatu":                          "VUT",
	"Vatican":                          "VAT",
	"Venezuela":                        "VEN",
	"Vietnam":                          "VNM",
	"Yemen":                            "YEM",
	"Zambia":                           "ZMB",
	"Zimbabwe":                         "ZWE",
}

// iso3ToCountry is the reverse of countryToISO3. Where two names share
// a code ("Czechia"/"Czech Republic"), preferredNames decides which
// display name wins.
var iso3ToCountry = func() map[string]string {
	preferredNames := map[string]string{
		"CZE": "Czech Republic",
	}
	result := make(map[string]string, len(countryToISO3))
	for name, code := range countryToISO3 {
		if preferred, ok := preferredNames[code]; ok {
			result[code] = preferred
			continue
		}
		if _, exists := result[code]; !exists {
			result[code] = name
		}
	}
	return result
}()

// ISO3ForCountry resolves a country display name to its ISO3 code.
func ISO3ForCountry(name string) (string, bool) {
	code, ok := countryToISO3[name]
	return code, ok
}

// CountryForISO3 resolves an ISO3 code to its country display name.
func CountryForISO3(code string) (string, bool) {
	name, ok := iso3ToCountry[code]
	return name, ok
}
