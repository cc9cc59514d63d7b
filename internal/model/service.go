package model

// Service is an add-on a rep can pitch. Identity is the catalog name.
type Service string

const (
	ServiceLawnTreatment     Service = "Lawn Treatment"
	ServiceMosquitoTreatment Service = "Mosquito Treatment"
	ServiceBushTrimming      Service = "Bush Trimming"
	ServiceFlowerBedWeeding  Service = "Flower Bed Weeding"
	ServiceLeafRemoval       Service = "Leaf Removal"
)

// Catalog returns every service in catalog order.
func Catalog() []Service {
	return []Service{
		ServiceLawnTreatment,
		ServiceMosquitoTreatment,
		ServiceBushTrimming,
		ServiceFlowerBedWeeding,
		ServiceLeafRemoval,
	}
}

// InCatalog reports whether s is a known service.
func InCatalog(s Service) bool {
	for _, c := range Catalog() {
		if c == s {
			return true
		}
	}
	return false
}

// ServiceNames converts services to plain strings.
func ServiceNames(services []Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = string(s)
	}
	return out
}
