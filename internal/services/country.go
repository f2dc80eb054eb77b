package services

import (
	"strings"

	"jumble/internal/models"
)

// ServiceCountry resolves ISO 3166-1 alpha-2 codes to display info for
// the origin hint.
type ServiceCountry struct {
	countries map[string]models.CountryInfo
}

func NewServiceCountry() (*ServiceCountry, error) {
	countries := make(map[string]models.CountryInfo, len(countryTable))
	for _, c := range countryTable {
		countries[c.Code] = c
	}
	return &ServiceCountry{countries}, nil
}

func (service *ServiceCountry) CountryFor(code string) *models.CountryInfo {
	c, ok := service.countries[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return &c
}

var countryTable = []models.CountryInfo{
	{Code: "AR", Name: "Argentina", Emoji: "🇦🇷"},
	{Code: "AT", Name: "Austria", Emoji: "🇦🇹"},
	{Code: "AU", Name: "Australia", Emoji: "🇦🇺"},
	{Code: "BE", Name: "Belgium", Emoji: "🇧🇪"},
	{Code: "BR", Name: "Brazil", Emoji: "🇧🇷"},
	{Code: "CA", Name: "Canada", Emoji: "🇨🇦"},
	{Code: "CH", Name: "Switzerland", Emoji: "🇨🇭"},
	{Code: "CL", Name: "Chile", Emoji: "🇨🇱"},
	{Code: "CN", Name: "China", Emoji: "🇨🇳"},
	{Code: "CO", Name: "Colombia", Emoji: "🇨🇴"},
	{Code: "CU", Name: "Cuba", Emoji: "🇨🇺"},
	{Code: "CZ", Name: "Czechia", Emoji: "🇨🇿"},
	{Code: "DE", Name: "Germany", Emoji: "🇩🇪"},
	{Code: "DK", Name: "Denmark", Emoji: "🇩🇰"},
	{Code: "EE", Name: "Estonia", Emoji: "🇪🇪"},
	{Code: "ES", Name: "Spain", Emoji: "🇪🇸"},
	{Code: "FI", Name: "Finland", Emoji: "🇫🇮"},
	{Code: "FR", Name: "France", Emoji: "🇫🇷"},
	{Code: "GB", Name: "United Kingdom", Emoji: "🇬🇧"},
	{Code: "GR", Name: "Greece", Emoji: "🇬🇷"},
	{Code: "HK", Name: "Hong Kong", Emoji: "🇭🇰"},
	{Code: "HU", Name: "Hungary", Emoji: "🇭🇺"},
	{Code: "ID", Name: "Indonesia", Emoji: "🇮🇩"},
	{Code: "IE", Name: "Ireland", Emoji: "🇮🇪"},
	{Code: "IL", Name: "Israel", Emoji: "🇮🇱"},
	{Code: "IN", Name: "India", Emoji: "🇮🇳"},
	{Code: "IS", Name: "Iceland", Emoji: "🇮🇸"},
	{Code: "IT", Name: "Italy", Emoji: "🇮🇹"},
	{Code: "JM", Name: "Jamaica", Emoji: "🇯🇲"},
	{Code: "JP", Name: "Japan", Emoji: "🇯🇵"},
	{Code: "KR", Name: "South Korea", Emoji: "🇰🇷"},
	{Code: "MX", Name: "Mexico", Emoji: "🇲🇽"},
	{Code: "NG", Name: "Nigeria", Emoji: "🇳🇬"},
	{Code: "NL", Name: "Netherlands", Emoji: "🇳🇱"},
	{Code: "NO", Name: "Norway", Emoji: "🇳🇴"},
	{Code: "NZ", Name: "New Zealand", Emoji: "🇳🇿"},
	{Code: "PH", Name: "Philippines", Emoji: "🇵🇭"},
	{Code: "PL", Name: "Poland", Emoji: "🇵🇱"},
	{Code: "PR", Name: "Puerto Rico", Emoji: "🇵🇷"},
	{Code: "PT", Name: "Portugal", Emoji: "🇵🇹"},
	{Code: "RO", Name: "Romania", Emoji: "🇷🇴"},
	{Code: "RS", Name: "Serbia", Emoji: "🇷🇸"},
	{Code: "RU", Name: "Russia", Emoji: "🇷🇺"},
	{Code: "SE", Name: "Sweden", Emoji: "🇸🇪"},
	{Code: "SG", Name: "Singapore", Emoji: "🇸🇬"},
	{Code: "TH", Name: "Thailand", Emoji: "🇹🇭"},
	{Code: "TR", Name: "Türkiye", Emoji: "🇹🇷"},
	{Code: "TW", Name: "Taiwan", Emoji: "🇹🇼"},
	{Code: "UA", Name: "Ukraine", Emoji: "🇺🇦"},
	{Code: "US", Name: "United States", Emoji: "🇺🇸"},
	{Code: "UY", Name: "Uruguay", Emoji: "🇺🇾"},
	{Code: "VN", Name: "Vietnam", Emoji: "🇻🇳"},
	{Code: "ZA", Name: "South Africa", Emoji: "🇿🇦"},
}
