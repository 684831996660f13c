package generator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/models"
)

type quizItem struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"min=2,dive,required"`
	CorrectIndex *int     `json:"correct_index" validate:"required,min=0"`
	Explanation  string   `json:"explanation"`
}

type topicItem struct {
	MainTopic   string            `json:"main_topic" validate:"required"`
	SubSections []json.RawMessage `json:"sub_sections"`
}

type sectionItem struct {
	Key    string  `json:"key" validate:"required"`
	SubKey *string `json:"sub_key"`
	Value  string  `json:"value"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		item := sl.Current().Interface().(quizItem)
		if item.CorrectIndex != nil && *item.CorrectIndex >= len(item.Options) {
			sl.ReportError(item.CorrectIndex, "correct_index", "CorrectIndex", "ltoptions", "")
		}
	}, quizItem{})
	return v
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	} else if rest := strings.TrimSpace(strings.TrimLeftFunc(s, isFenceTag)); strings.HasPrefix(rest, "[") || strings.HasPrefix(rest, "{") {
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// isFenceTag reports whether r can be part of a fence language tag such as
// "json".
func isFenceTag(r rune) bool {
	return r == '-' || r == '_' || r == '+' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// elements splits the model output into array elements. Output that is not
// JSON is a parse error; JSON that is not an array counts as empty.
func elements(raw string) ([]json.RawMessage, error) {
	clean := StripFences(raw)
	if !json.Valid([]byte(clean)) {
		var v any
		err := json.Unmarshal([]byte(clean), &v)
		return nil, errors.NewParseError(raw, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// DecodeQuiz turns model output into new cards. Items that fail validation
// are dropped; if none survive the result is an EMPTY_RESULT error.
func DecodeQuiz(ctx context.Context, raw string) ([]models.NewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("generator")

	items, err := elements(raw)
	if err != nil {
		return nil, err
	}

	cards := make([]models.NewCard, 0, len(items))
	for i, msg := range items {
		var item quizItem
		if err := json.Unmarshal(msg, &item); err != nil {
			log.Warn("dropping quiz item %d: %v", i, err)
			continue
		}
		if err := validate.Struct(item); err != nil {
			log.Warn("dropping quiz item %d: %v", i, err)
			continue
		}
		cards = append(cards, models.NewCard{
			Question:     item.Question,
			Options:      item.Options,
			CorrectIndex: *item.CorrectIndex,
			Explanation:  item.Explanation,
		})
	}
	if len(cards) == 0 {
		return nil, errors.NewEmptyResultError("model returned no usable questions")
	}
	return cards, nil
}

// DecodeOutline turns model output into a summary outline. Topics without a
// title and sections without a label are dropped, then topics left without
// sections.
func DecodeOutline(ctx context.Context, raw string) (models.Outline, error) {
	log := logger.FromContext(ctx).WithPrefix("generator")

	items, err := elements(raw)
	if err != nil {
		return nil, err
	}

	outline := make(models.Outline, 0, len(items))
	for i, msg := range items {
		var item topicItem
		if err := json.Unmarshal(msg, &item); err != nil {
			log.Warn("dropping topic %d: %v", i, err)
			continue
		}
		if err := validate.Struct(item); err != nil {
			log.Warn("dropping topic %d: %v", i, err)
			continue
		}

		topic := models.Topic{MainTopic: item.MainTopic}
		for j, secMsg := range item.SubSections {
			var sec sectionItem
			if err := json.Unmarshal(secMsg, &sec); err != nil {
				log.Warn("dropping section %d of topic %q: %v", j, item.MainTopic, err)
				continue
			}
			if err := validate.Struct(sec); err != nil {
				log.Warn("dropping section %d of topic %q: %v", j, item.MainTopic, err)
				continue
			}
			s := models.SubSection{Key: sec.Key, Value: sec.Value}
			if sec.SubKey != nil {
				s.SubKey = *sec.SubKey
			}
			topic.SubSections = append(topic.SubSections, s)
		}
		if len(topic.SubSections) == 0 {
			log.Warn("dropping topic %q: no usable sections", item.MainTopic)
			continue
		}
		outline = append(outline, topic)
	}
	if len(outline) == 0 {
		return nil, errors.NewEmptyResultError("model returned no usable topics")
	}
	return outline, nil
}
