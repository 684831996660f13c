package jsonfile_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/repository"
	"github.com/vytor/mediquiz/internal/repository/jsonfile"
)

type CardRepositorySuite struct {
	suite.Suite
	path  string
	today time.Time
	repo  repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "medical_flashcards.json")
	s.today = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.repo = jsonfile.NewCardRepository(s.path, jsonfile.WithClock(func() time.Time { return s.today }))
}

func (s *CardRepositorySuite) writeFile(content string) {
	s.Require().NoError(os.WriteFile(s.path, []byte(content), 0o644))
}

func (s *CardRepositorySuite) newCard(q string) models.NewCard {
	return models.NewCard{
		Question:     q,
		Options:      []string{"가", "나", "다", "라", "마"},
		CorrectIndex: 2,
		Explanation:  "해설",
	}
}

func (s *CardRepositorySuite) TestLoadAll_MissingFile() {
	cards := s.repo.LoadAll(context.Background())
	s.NotNil(cards)
	s.Empty(cards)
}

func (s *CardRepositorySuite) TestLoadAll_CorruptFile() {
	s.writeFile(`{"not": "an array"`)
	s.Empty(s.repo.LoadAll(context.Background()))

	s.writeFile(`{"question": "q"}`)
	s.Empty(s.repo.LoadAll(context.Background()))
}

func (s *CardRepositorySuite) TestLoadAll_DropsRecordsWithoutOptionsList() {
	s.writeFile(`[
    {"id": "a", "question": "ok", "options": ["x", "y"], "correct_index": 1, "explanation": "", "interval": 3, "next_review": "2025-03-01"},
    {"id": "b", "question": "no options"},
    {"id": "c", "question": "string options", "options": "x,y"},
    {"id": "d", "question": "null options", "options": null},
    "garbage",
    {"id": "e", "question": "empty list", "options": [], "interval": 1, "next_review": "2025-03-01"}
]`)

	cards := s.repo.LoadAll(context.Background())

	// An empty list leaves no valid correct_index.
	s.Require().Len(cards, 1)
	s.Equal("a", cards[0].ID)
	s.Equal([]string{"x", "y"}, cards[0].Options)
	s.Equal(3, cards[0].Interval)
}

func (s *CardRepositorySuite) TestLoadAll_DropsOutOfRangeCorrectIndex() {
	s.writeFile(`[
    {"id": "ok", "question": "q", "options": ["x", "y"], "correct_index": 1, "interval": 1, "next_review": "2025-03-01"},
    {"id": "high", "question": "q", "options": ["x", "y"], "correct_index": 5, "interval": 1, "next_review": "2025-03-01"},
    {"id": "edge", "question": "q", "options": ["x", "y"], "correct_index": 2, "interval": 1, "next_review": "2025-03-01"},
    {"id": "negative", "question": "q", "options": ["x", "y"], "correct_index": -1, "interval": 1, "next_review": "2025-03-01"}
]`)

	cards := s.repo.LoadAll(context.Background())

	s.Require().Len(cards, 1)
	s.Equal("ok", cards[0].ID)
}

func (s *CardRepositorySuite) TestAppendCards_AssignsDefaults() {
	ctx := context.Background()

	created, err := s.repo.AppendCards(ctx, []models.NewCard{s.newCard("q1"), s.newCard("q2")})
	s.Require().NoError(err)
	s.Require().Len(created, 2)

	for _, c := range created {
		s.NotEmpty(c.ID)
		s.Equal(1, c.Interval)
		s.Equal("2025-03-10", c.NextReview)
	}
	s.NotEqual(created[0].ID, created[1].ID)

	loaded := s.repo.LoadAll(ctx)
	s.Equal(created, loaded)
}

func (s *CardRepositorySuite) TestAppendCard_KeepsOrderAndFileFormat() {
	ctx := context.Background()
	_, err := s.repo.AppendCard(ctx, s.newCard("첫 번째 <질문> & 답"))
	s.Require().NoError(err)
	_, err = s.repo.AppendCard(ctx, s.newCard("두 번째"))
	s.Require().NoError(err)

	cards := s.repo.LoadAll(ctx)
	s.Require().Len(cards, 2)
	s.Equal("첫 번째 <질문> & 답", cards[0].Question)
	s.Equal("두 번째", cards[1].Question)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	body := string(data)
	s.True(strings.HasPrefix(body, "[\n    {\n        \"id\""))
	s.Contains(body, "첫 번째 <질문> & 답")
	s.Contains(body, `"next_review": "2025-03-10"`)
}

func (s *CardRepositorySuite) TestDeleteMany_KeepsOthersInOrder() {
	ctx := context.Background()
	var news []models.NewCard
	for i := 0; i < 5; i++ {
		news = append(news, s.newCard(fmt.Sprintf("q%d", i)))
	}
	created, err := s.repo.AppendCards(ctx, news)
	s.Require().NoError(err)

	removed, err := s.repo.DeleteMany(ctx, []string{created[1].ID, created[3].ID})
	s.Require().NoError(err)
	s.Equal(2, removed)

	cards := s.repo.LoadAll(ctx)
	s.Require().Len(cards, 3)
	s.Equal([]string{created[0].ID, created[2].ID, created[4].ID},
		[]string{cards[0].ID, cards[1].ID, cards[2].ID})
}

func (s *CardRepositorySuite) TestDelete_UnknownIDIsNoop() {
	ctx := context.Background()
	_, err := s.repo.AppendCard(ctx, s.newCard("q"))
	s.Require().NoError(err)

	s.NoError(s.repo.Delete(ctx, "missing"))
	s.Len(s.repo.LoadAll(ctx), 1)
}

func (s *CardRepositorySuite) TestDeleteAll() {
	ctx := context.Background()
	_, err := s.repo.AppendCards(ctx, []models.NewCard{s.newCard("a"), s.newCard("b")})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteAll(ctx))

	s.Empty(s.repo.LoadAll(ctx))
	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("[]\n", string(data))
}

func (s *CardRepositorySuite) TestUpdateSchedule() {
	ctx := context.Background()
	created, err := s.repo.AppendCard(ctx, s.newCard("q"))
	s.Require().NoError(err)

	updated, err := s.repo.UpdateSchedule(ctx, created.ID, models.Correct, s.today)
	s.Require().NoError(err)
	s.Equal(3, updated.Interval)
	s.Equal("2025-03-13", updated.NextReview)

	updated, err = s.repo.UpdateSchedule(ctx, created.ID, models.Incorrect, s.today)
	s.Require().NoError(err)
	s.Equal(1, updated.Interval)
	s.Equal("2025-03-11", updated.NextReview)

	stored := s.repo.LoadAll(ctx)
	s.Require().Len(stored, 1)
	s.Equal(*updated, stored[0])
}

func (s *CardRepositorySuite) TestUpdateSchedule_UnknownID() {
	_, err := s.repo.UpdateSchedule(context.Background(), "missing", models.Correct, s.today)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))
}

func (s *CardRepositorySuite) TestDue() {
	ctx := context.Background()
	s.writeFile(`[
    {"id": "past", "question": "q", "options": ["a"], "interval": 1, "next_review": "2025-03-09"},
    {"id": "today", "question": "q", "options": ["a"], "interval": 1, "next_review": "2025-03-10"},
    {"id": "future", "question": "q", "options": ["a"], "interval": 1, "next_review": "2025-03-11"}
]`)

	due := s.repo.Due(ctx, s.today)

	s.Require().Len(due, 2)
	s.Equal("past", due[0].ID)
	s.Equal("today", due[1].ID)
}

func (s *CardRepositorySuite) TestLoadAll_AssignsStableIDsToLegacyRecords() {
	ctx := context.Background()
	s.writeFile(`[
    {"question": "legacy 1", "options": ["a", "b"], "correct_index": 0, "explanation": "", "interval": 1, "next_review": "2025-03-01"},
    {"question": "legacy 2", "options": ["a", "b"], "correct_index": 1, "explanation": "", "interval": 3, "next_review": "2025-03-02"}
]`)

	first := s.repo.LoadAll(ctx)
	s.Require().Len(first, 2)
	s.NotEmpty(first[0].ID)
	s.NotEqual(first[0].ID, first[1].ID)

	second := s.repo.LoadAll(ctx)
	s.Equal(first, second)
}

func (s *CardRepositorySuite) TestLoadAll_LegacyIDsDoNotDependOnRewrite() {
	ctx := context.Background()
	content := `[
    {"question": "same", "options": ["a", "b"], "correct_index": 0, "interval": 1, "next_review": "2025-03-01"},
    {"question": "same", "options": ["a", "b"], "correct_index": 0, "interval": 1, "next_review": "2025-03-01"}
]`
	load := func() []models.Card {
		path := filepath.Join(s.T().TempDir(), "cards.json")
		s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
		return jsonfile.NewCardRepository(path).LoadAll(ctx)
	}

	// Two stores over the same unrewritten content see the same ids.
	first, second := load(), load()

	s.Require().Len(first, 2)
	s.Equal(first, second)
	s.NotEqual(first[0].ID, first[1].ID, "identical records at different positions")
}

func (s *CardRepositorySuite) TestSaveAll_FailureKeepsPriorFile() {
	ctx := context.Background()
	repo := jsonfile.NewCardRepository(filepath.Join(s.T().TempDir(), "missing-dir", "cards.json"))

	err := repo.SaveAll(ctx, []models.Card{{ID: "x", Options: []string{"a"}, Interval: 1}})

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeIO))
}

func (s *CardRepositorySuite) TestConcurrentAppendsAreSerialized() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repo.AppendCard(ctx, s.newCard(fmt.Sprintf("q%d", i)))
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	s.Len(s.repo.LoadAll(ctx), 20)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
