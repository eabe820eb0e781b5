package facts

import (
	"path"
	"sort"
	"strings"
	"time"
)

const Version = "1.0"

// Language is a project language detected from its marker files.
type Language string

const (
	LangCPP        Language = "cpp"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
)

// Commit is one entry from the repository log. Subject is the first line of
// the message; Body holds the lines after a single blank separator line.
// A message with extra lines but no separator keeps an empty Body.
type Commit struct {
	Hash    string    `json:"hash"`
	Subject string    `json:"subject"`
	Body    string    `json:"body,omitempty"`
	Author  string    `json:"author,omitempty"`
	When    time.Time `json:"when,omitempty"`
}

// Facts is the snapshot of observable repository state built once per run.
// Rule predicates read it concurrently and must never mutate it.
type Facts struct {
	Root      string    `json:"root"`
	ScannedAt time.Time `json:"scanned_at"`
	Version   string    `json:"version"`

	// Files holds slash-separated paths relative to Root, sorted.
	Files     []string   `json:"files"`
	Commits   []Commit   `json:"commits,omitempty"`
	Languages []Language `json:"languages,omitempty"`

	contents map[string]string
	fileSet  map[string]struct{}
}

// New builds a Facts snapshot. files may arrive in any order; contents keys
// must be a subset of files.
func New(root string, files []string, contents map[string]string, commits []Commit, langs []Language) *Facts {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	set := make(map[string]struct{}, len(sorted))
	for _, p := range sorted {
		set[p] = struct{}{}
	}
	if contents == nil {
		contents = map[string]string{}
	}
	return &Facts{
		Root:      root,
		ScannedAt: time.Now().UTC(),
		Version:   Version,
		Files:     sorted,
		Commits:   commits,
		Languages: langs,
		contents:  contents,
		fileSet:   set,
	}
}

func (f *Facts) HasFile(rel string) bool {
	_, ok := f.fileSet[rel]
	return ok
}

// Glob reports the files whose path matches pattern (path.Match syntax,
// applied to the full relative path).
func (f *Facts) Glob(pattern string) []string {
	var out []string
	for _, p := range f.Files {
		if ok, _ := path.Match(pattern, p); ok {
			out = append(out, p)
		}
	}
	return out
}

// Content returns the captured text of rel, if the scanner read it.
func (f *Facts) Content(rel string) (string, bool) {
	s, ok := f.contents[rel]
	return s, ok
}

func (f *Facts) HasLanguage(l Language) bool {
	for _, have := range f.Languages {
		if have == l {
			return true
		}
	}
	return false
}

// SplitMessage splits a raw commit message into subject and body. The body
// starts after exactly one blank line; a message whose extra lines follow the
// subject directly is recorded with an empty body rather than rejected.
func SplitMessage(msg string) (subject, body string) {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	idx := strings.IndexByte(msg, '\n')
	if idx < 0 {
		return strings.TrimRight(msg, " \t"), ""
	}
	subject = strings.TrimRight(msg[:idx], " \t")
	rest := msg[idx+1:]
	if !strings.HasPrefix(rest, "\n") {
		return subject, ""
	}
	return subject, strings.TrimRight(strings.TrimPrefix(rest, "\n"), "\n")
}
