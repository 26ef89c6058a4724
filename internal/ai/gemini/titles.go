package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed titles_prompt.md
var titlesPrompt string

const (
	systemInstruction   = "You are a recruiting and sales research assistant. Answer with JSON only."
	defaultMaxLogLength = 200
	maxSuggestions      = 8
	notSet              = "not specified"
)

// TitleSuggester asks Gemini for alternative phrasings of the target title.
type TitleSuggester struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewTitleSuggester(generator contentGenerator, logger *zap.Logger, maxLogLength int) *TitleSuggester {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TitleSuggester{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ExpandTitle returns lower-cased, unique title suggestions, without the
// target title itself.
func (s *TitleSuggester) ExpandTitle(ctx context.Context, c *criteria.OutreachCriteria) ([]string, error) {
	if c == nil {
		return nil, errors.New("criteria are required")
	}
	title := c.TargetTitle()
	if title == "" {
		return nil, errors.New("target title is required")
	}

	prompt := buildPrompt(c, title)
	s.logger.Debug("gemini generate content request",
		zap.String("title", title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.String("title", title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseTitles(raw, title)
}

func buildPrompt(c *criteria.OutreachCriteria, title string) string {
	replacer := strings.NewReplacer(
		"{{OUTREACH}}", string(c.OutreachType),
		"{{TITLE}}", title,
		"{{INDUSTRY}}", orNotSet(c.Industry),
		"{{COMPANY_SIZE}}", orNotSet(c.CompanySize),
		"{{LIMIT}}", strconv.Itoa(maxSuggestions),
	)
	return replacer.Replace(titlesPrompt)
}

func parseTitles(raw, title string) ([]string, error) {
	var items []any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &items); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	own := strings.ToLower(strings.TrimSpace(title))
	seen := map[string]struct{}{own: {}}
	titles := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			continue
		}
		text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		titles = append(titles, text)
		if len(titles) == maxSuggestions {
			break
		}
	}
	return titles, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func orNotSet(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notSet
	}
	return s
}
