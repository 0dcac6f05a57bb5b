package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"jobboard/internal/domain/posting"
	"jobboard/internal/geo"
)

const (
	defaultPostingCount = 1000
	postingBatchSize    = 100
	districtSampleSize  = 500
)

var errNoDistricts = errors.New("no districts to place postings in; run the importer first")

var (
	mainKeywords = []string{"외식·음료"}
	subKeywords  = [][]string{
		{"서빙"}, {"바리스타"}, {"제과제빵사"}, {"레스토랑"}, {"커피전문점"}, {"패스트푸드점"},
		{"아이스크림·디저트"}, {"도시락·반찬"}, {"바(bar)"}, {"주방장·조리사"}, {"주방보조·설거지"},
	}
	educations      = []string{"고졸", "대졸이상"}
	workDays        = [][]string{{"월", "화", "수"}, {"화", "목", "토"}, {"월", "화", "수", "목", "금", "토", "일"}}
	salaryTypes     = []string{"월급", "시급", "연봉"}
	postingTypes    = []string{"기업", "공공"}
	employmentTypes = []string{"정규직", "비정규직"}
	experiences     = []string{"경력", "무관"}
)

// PostingsSeeder generates dummy postings. Each one is located at a point
// inside a random district and carries that district's names, so the
// denormalized city/district/town always agree with the location.
type PostingsSeeder struct {
	Count int
	Rand  *rand.Rand
	Now   func() time.Time
}

func (*PostingsSeeder) Name() string { return "job_postings" }

func (s *PostingsSeeder) Run(ctx context.Context, env Env) error {
	n := s.Count
	if n <= 0 {
		n = defaultPostingCount
	}
	rnd := s.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	companyID, err := env.Companies.Upsert(ctx, posting.Company{Name: DefaultCompanyName})
	if err != nil {
		return fmt.Errorf("resolve company: %w", err)
	}

	districts, err := env.Districts.Sample(ctx, districtSampleSize)
	if err != nil {
		return fmt.Errorf("sample districts: %w", err)
	}
	if len(districts) == 0 {
		return errNoDistricts
	}

	today := now().UTC().Truncate(24 * time.Hour)
	content := "이것은 테스트용 공고입니다."

	batch := make([]posting.Posting, 0, postingBatchSize)
	created, skipped := 0, 0
	for created < n {
		d := districts[rnd.Intn(len(districts))]
		pt, ok := geo.RepresentativePoint(d.Geometry, rnd)
		if !ok {
			skipped++
			if skipped > n {
				return fmt.Errorf("no interior point found in %d districts", skipped)
			}
			continue
		}

		created++
		batch = append(batch, posting.Posting{
			Title:             fmt.Sprintf("공고 %d", created),
			Address:           "대한민국 어디쯤",
			City:              d.CityName,
			District:          d.DistrictName,
			Town:              d.TownName,
			Location:          pt,
			WorkTimeStart:     today.Add(9 * time.Hour),
			WorkTimeEnd:       today.Add(18 * time.Hour),
			PostingType:       pick(rnd, postingTypes),
			EmploymentType:    pick(rnd, employmentTypes),
			WorkExperience:    pick(rnd, experiences),
			JobKeywordMain:    pick(rnd, mainKeywords),
			JobKeywordSub:     append([]string(nil), pick(rnd, subKeywords)...),
			Education:         pick(rnd, educations),
			NumberOfPositions: 1 + rnd.Intn(10),
			CompanyID:         companyID,
			Deadline:          today.AddDate(0, 0, 1+rnd.Intn(30)),
			TimeDiscussion:    rnd.Intn(2) == 0,
			DayDiscussion:     rnd.Intn(2) == 0,
			WorkDay:           append([]string(nil), pick(rnd, workDays)...),
			SalaryType:        pick(rnd, salaryTypes),
			Salary:            2000000 + rnd.Intn(3000001),
			Summary:           "자동 생성된 공고입니다.",
			Content:           &content,
		})

		if len(batch) == postingBatchSize {
			if err := env.Postings.Insert(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := env.Postings.Insert(ctx, batch); err != nil {
			return err
		}
	}

	if env.Logger != nil {
		env.Logger.Printf("[Seed] postings created=%d skipped_districts=%d", created, skipped)
	}
	return nil
}

func pick[T any](rnd *rand.Rand, values []T) T {
	return values[rnd.Intn(len(values))]
}
