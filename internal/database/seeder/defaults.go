package seeder

import "time"

func Defaults(now time.Time) []Seeder {
	return []Seeder{
		RecruitersSeeder{},
		SeekersSeeder{},
		JobsSeeder{Now: now},
	}
}
