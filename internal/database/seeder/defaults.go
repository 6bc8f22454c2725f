package seeder

func Defaults() []Seeder {
	return []Seeder{
		DemoAccountSeeder{},
		DemoContactsSeeder{},
	}
}
