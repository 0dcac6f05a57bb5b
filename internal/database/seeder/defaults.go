package seeder

// Defaults seeds one company and n postings placed inside random districts.
func Defaults(n int) []Seeder {
	return []Seeder{
		CompaniesSeeder{},
		&PostingsSeeder{Count: n},
	}
}
