package model

// Categories is the closed category taxonomy, in declared order. "Other" is
// the catch-all and must stay last. AI output outside this list is coerced
// to CategoryOther by the enrichment adapter.
var Categories = []string{
	"AI/ML Infrastructure & Tools",
	"Healthcare & Biotech",
	"Fintech & Banking",
	"Education & EdTech",
	"Agriculture & AgriTech",
	"Cybersecurity",
	"E-commerce & Retail",
	"Manufacturing & Industry 4.0",
	"Media & Entertainment",
	"Climate & Sustainability",
	"Logistics & Supply Chain",
	"Legal & Compliance",
	"HR & Workforce Management",
	"Marketing & Sales Tech",
	"Robotics & Automation",
	"IoT & Smart Devices",
	"Data Analytics & Business Intelligence",
	"Government & Public Sector",
	"Real Estate & PropTech",
	"Other",
}

// CategoryOther is the taxonomy catch-all label.
const CategoryOther = "Other"

// ValidCategory reports whether cat is a member of the closed taxonomy.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
