package models

import "time"

// Category is the coarse classification assigned to every repository file
// during listing. Categories feed the selection heuristics and the
// analysis prompts.
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategoryConfiguration Category = "configuration"
	CategoryTest          Category = "test"
	CategoryEntryPoint    Category = "entry-point"
	CategorySourceCode    Category = "source-code"
	CategoryFrontend      Category = "frontend"
	CategoryOther         Category = "other"
)

// RepoMetadata is the descriptive metadata of a repository, fetched once
// per request and read-only afterwards.
type RepoMetadata struct {
	Owner       string   `json:"owner"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
}

// FileEntry is a single file discovered by the recursive listing. URL is
// the retrieval handle for the raw content.
type FileEntry struct {
	Path     string   `json:"path"`
	Name     string   `json:"name"`
	Size     int      `json:"size"`
	URL      string   `json:"url"`
	Category Category `json:"category"`
}

// SelectedFile is a FileEntry whose content has been fetched (and possibly
// truncated) for analysis, plus the structural tags sniffed from it.
type SelectedFile struct {
	FileEntry
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Analysis is the structured summary of a repository's character. It is
// either AI-derived or heuristically synthesized; the shape is identical
// in both cases and every field is always populated.
type Analysis struct {
	Purpose                string   `json:"purpose"`
	Themes                 []string `json:"themes"`
	Emotions               []string `json:"emotions"`
	TechnicalConcepts      []string `json:"technical_concepts"`
	MusicalMetaphors       []string `json:"musical_metaphors"`
	KeyFeatures            []string `json:"key_features"`
	InnovationLevel        string   `json:"innovation_level"` // low, medium, high
	Complexity             string   `json:"complexity"`       // simple, moderate, complex
	UserImpact             string   `json:"user_impact"`
	ArtisticInterpretation string   `json:"artistic_interpretation"`
}

// FileStats counts the files seen at each pipeline stage.
type FileStats struct {
	Total    int `json:"total"`
	Selected int `json:"selected"`
	Analyzed int `json:"analyzed"`
}

// FileRef identifies a selected file in the result payload.
type FileRef struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Category Category `json:"category"`
}

// StyleLyrics is one successful lyric generation in the multi-style path.
type StyleLyrics struct {
	Style  string `json:"style"`
	Lyrics string `json:"lyrics"`
}

// StyleFailure records a style whose lyric generation failed.
type StyleFailure struct {
	Style string `json:"style"`
	Error string `json:"error"`
}

// Result is the full response for one generation request.
type Result struct {
	Repository    RepoMetadata   `json:"repository"`
	Files         FileStats      `json:"files"`
	Analysis      Analysis       `json:"analysis"`
	SelectedFiles []FileRef      `json:"selected_files"`
	Style         string         `json:"style,omitempty"`
	ResolvedStyle string         `json:"resolved_style,omitempty"`
	Prompt        string         `json:"prompt"`
	Lyrics        string         `json:"lyrics,omitempty"`
	LyricsByStyle []StyleLyrics  `json:"lyrics_by_style,omitempty"`
	Failures      []StyleFailure `json:"failures,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
