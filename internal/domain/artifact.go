package domain

// Artifact is the result of a GenerationRequest. The set of implementations is
// closed: *ArticleResult for article-like types and *NovelOutlineResult for novels.
type Artifact interface {
	artifact()
}

// ArticleResult is returned for article, shortstory, news and shortnews requests.
type ArticleResult struct {
	RefinedTags       []string `json:"refinedTags"`
	TitleSelection    []string `json:"titleSelection"`
	SubtitleSelection []string `json:"subtitleSelection"`
	Content           string   `json:"content"`
}

func (*ArticleResult) artifact() {}

// OutlineChapter is one entry of a novel outline.
type OutlineChapter struct {
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
}

// NovelOutlineResult is returned for novel requests. len(Chapters) always
// equals the requested chapter count, numbered 1..N.
type NovelOutlineResult struct {
	TitleSelection []string         `json:"titleSelection"`
	Synopsis       string           `json:"synopsis"`
	Chapters       []OutlineChapter `json:"chapters"`
}

func (*NovelOutlineResult) artifact() {}

// ChapterResult carries the generated prose of one chapter.
type ChapterResult struct {
	Content string `json:"content"`
}
