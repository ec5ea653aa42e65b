package domain

// ContentType names the kind of artifact a generation request asks for.
type ContentType string

// Supported content types.
const (
	ContentTypeArticle    ContentType = "article"
	ContentTypeShortStory ContentType = "shortstory"
	ContentTypeNovel      ContentType = "novel"
	ContentTypeNews       ContentType = "news"
	ContentTypeShortNews  ContentType = "shortnews"
)

// ContentTypes lists every supported content type in a stable order.
var ContentTypes = []ContentType{
	ContentTypeArticle,
	ContentTypeShortStory,
	ContentTypeNovel,
	ContentTypeNews,
	ContentTypeShortNews,
}

// IsValid reports whether c is one of the supported content types.
func (c ContentType) IsValid() bool {
	for _, known := range ContentTypes {
		if c == known {
			return true
		}
	}
	return false
}

// Language is the output language of the generated text.
type Language string

// Supported output languages.
const (
	LanguageEnglish    Language = "english"
	LanguageIndonesian Language = "indonesian"
)

// IsValid reports whether l is a supported output language.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageIndonesian
}

// DisplayName is the language name used inside prompts.
func (l Language) DisplayName() string {
	if l == LanguageIndonesian {
		return "Indonesian (Bahasa Indonesia)"
	}
	return "English"
}
