package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all request types; validator.Validate is safe for
// concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MaxChapterCount caps the outline length a client may request. The
// ChapterCount validate tag enforces it.
const MaxChapterCount = 100

// GenerationRequest describes one article, story, news or novel-outline request.
type GenerationRequest struct {
	Topic          string      `json:"topic" validate:"required"`
	Tags           []string    `json:"tags,omitempty"`
	Keywords       []string    `json:"keywords,omitempty"`
	AuthorStyle    string      `json:"authorStyle" validate:"required"`
	ContentType    ContentType `json:"contentType" validate:"required"`
	NewspaperStyle string      `json:"newspaperStyle,omitempty"`
	ChapterCount   int         `json:"chapterCount,omitempty" validate:"gte=0,lte=100"`
	Language       Language    `json:"language" validate:"required"`
	MainIdea       string      `json:"mainIdea,omitempty"`
}

// Normalize trims free-text fields and lower-cases the enumerations so that
// "Article " and "article" are treated the same.
func (r *GenerationRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.AuthorStyle = strings.TrimSpace(r.AuthorStyle)
	r.NewspaperStyle = strings.TrimSpace(r.NewspaperStyle)
	r.MainIdea = strings.TrimSpace(r.MainIdea)
	r.ContentType = ContentType(strings.ToLower(strings.TrimSpace(string(r.ContentType))))
	r.Language = Language(strings.ToLower(strings.TrimSpace(string(r.Language))))
	r.Tags = compactStrings(r.Tags)
	r.Keywords = compactStrings(r.Keywords)
}

// Validate checks required fields, the enumerations, and the chapter count
// rule for novels. Errors wrap ErrValidation.
func (r GenerationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return translateValidationError(err)
	}
	if !r.ContentType.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnsupportedContentType, r.ContentType)
	}
	if !r.Language.IsValid() {
		return fmt.Errorf("%w: unsupported language %q (expected english or indonesian)", ErrValidation, r.Language)
	}
	if r.ContentType == ContentTypeNovel && r.ChapterCount < 1 {
		return fmt.Errorf("%w: chapterCount must be at least 1 for novels", ErrValidation)
	}
	return nil
}

// translateValidationError turns validator output into a single message that
// lists missing fields first, then any other rule violations.
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, "; "))
}

func compactStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
