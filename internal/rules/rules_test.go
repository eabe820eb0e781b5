package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexoden/norms/internal/facts"
)

func snapshot(files []string, contents map[string]string, commits []facts.Commit, langs ...facts.Language) *facts.Facts {
	return facts.New("/repo", files, contents, commits, langs)
}

func commit(subject, body string) facts.Commit {
	return facts.Commit{Hash: "0123456789abcdef", Subject: subject, Body: body}
}

func TestCommitSubjectLength(t *testing.T) {
	long := "feat: add new thing that is definitely way too long for this"

	fd := evalCommitSubjectLength(snapshot(nil, nil, []facts.Commit{commit(long, "")}))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Contains(t, fd.Message, long)
	assert.Contains(t, fd.Message, "limit 50")
	assert.Equal(t, "01234567", fd.Location)

	fd = evalCommitSubjectLength(snapshot(nil, nil, []facts.Commit{commit("feat: short enough", "")}))
	assert.Equal(t, StatusPass, fd.Status)

	// several offenders report the first plus a count
	cs := []facts.Commit{commit(long, ""), commit("ok: fine", ""), commit(long+" again", "")}
	fd = evalCommitSubjectLength(snapshot(nil, nil, cs))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Contains(t, fd.Message, "1 more commits exceed the limit")

	fd = evalCommitSubjectLength(snapshot(nil, nil, nil))
	assert.Equal(t, StatusSkipped, fd.Status)
	assert.Equal(t, "no commits scanned", fd.Message)
}

func TestCommitSubjectLengthCountsRunes(t *testing.T) {
	// 50 runes, more than 50 bytes
	subject := strings.Repeat("ä", 50)
	fd := evalCommitSubjectLength(snapshot(nil, nil, []facts.Commit{commit(subject, "")}))
	assert.Equal(t, StatusPass, fd.Status)
}

func TestCommitType(t *testing.T) {
	cases := []struct {
		subject string
		status  Status
	}{
		{"feat: add thing", StatusPass},
		{"feat(api): add thing", StatusPass},
		{"feat!: drop thing", StatusPass},
		{"chore: tidy", StatusPass},
		{"Merge branch 'main' into dev", StatusPass},
		{"Revert \"feat: add thing\"", StatusPass},
		{"update stuff", StatusFail},
		{"wip: half done", StatusFail},
		{"feature: add thing", StatusFail},
	}
	for _, tc := range cases {
		fd := evalCommitType(snapshot(nil, nil, []facts.Commit{commit(tc.subject, "")}))
		assert.Equal(t, tc.status, fd.Status, "subject %q", tc.subject)
	}
}

func TestCommitTypeIndependentOfLength(t *testing.T) {
	// a well-typed subject that is over the length limit fails only the
	// length rule, not the type rule
	long := "feat: add new thing that is definitely way too long for this"
	f := snapshot(nil, nil, []facts.Commit{commit(long, "")})
	assert.Equal(t, StatusPass, evalCommitType(f).Status)
	assert.Equal(t, StatusFail, evalCommitSubjectLength(f).Status)
}

func TestCommitSubjectCase(t *testing.T) {
	cases := []struct {
		subject string
		status  Status
	}{
		{"feat: add thing", StatusPass},
		{"feat: Add thing", StatusWarn},
		{"feat: HTTP handler rework", StatusPass},
		{"feat: OAuth2 login", StatusPass},
		{"Merge branch 'x'", StatusPass},
	}
	for _, tc := range cases {
		fd := evalCommitSubjectCase(snapshot(nil, nil, []facts.Commit{commit(tc.subject, "")}))
		assert.Equal(t, tc.status, fd.Status, "subject %q", tc.subject)
	}
}

func TestCommitSubjectPunctuation(t *testing.T) {
	fd := evalCommitSubjectPunct(snapshot(nil, nil, []facts.Commit{commit("feat: add thing.", "")}))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Contains(t, fd.Message, `ends with "."`)

	fd = evalCommitSubjectPunct(snapshot(nil, nil, []facts.Commit{commit("feat: add thing", "")}))
	assert.Equal(t, StatusPass, fd.Status)
}

func TestCommitBodyWrap(t *testing.T) {
	wide := strings.Repeat("word ", 20) // 100 chars with spaces
	fd := evalCommitBodyWrap(snapshot(nil, nil, []facts.Commit{commit("feat: x", wide)}))
	assert.Equal(t, StatusWarn, fd.Status)

	url := "see https://" + strings.Repeat("a", 100) + ".example.com/path"
	fd = evalCommitBodyWrap(snapshot(nil, nil, []facts.Commit{commit("feat: x", strings.ReplaceAll(url, " ", "\n"))}))
	assert.Equal(t, StatusPass, fd.Status, "space-free long lines are tolerated")

	fd = evalCommitBodyWrap(snapshot(nil, nil, []facts.Commit{commit("feat: x", "short body\nwrapped fine")}))
	assert.Equal(t, StatusPass, fd.Status)
}

func TestRequiredFiles(t *testing.T) {
	readme, ok := Get("readme")
	require.True(t, ok)
	license, ok := Get("license-file")
	require.True(t, ok)
	meta, ok := Get("git-metadata-files")
	require.True(t, ok)

	full := snapshot([]string{"README.md", "LICENSE-MIT", ".gitignore", ".gitattributes"}, nil, nil)
	assert.Equal(t, StatusPass, readme.Eval(full).Status)
	assert.Equal(t, StatusPass, license.Eval(full).Status, "LICENSE-MIT matches the LICENSE* glob")
	assert.Equal(t, StatusPass, meta.Eval(full).Status)

	empty := snapshot(nil, nil, nil)
	assert.Equal(t, StatusFail, readme.Eval(empty).Status)
	assert.Equal(t, StatusFail, license.Eval(empty).Status)

	fd := meta.Eval(snapshot([]string{".gitignore"}, nil, nil))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Contains(t, fd.Message, ".gitattributes")
	assert.NotContains(t, fd.Message, ".gitignore,")
}

func TestLicenseRuleIndependent(t *testing.T) {
	// a missing license leaves every other file rule untouched
	f := snapshot([]string{"README.md", ".gitignore", ".gitattributes"}, nil, nil)
	readme, _ := Get("readme")
	license, _ := Get("license-file")
	meta, _ := Get("git-metadata-files")
	assert.Equal(t, StatusFail, license.Eval(f).Status)
	assert.Equal(t, StatusPass, readme.Eval(f).Status)
	assert.Equal(t, StatusPass, meta.Eval(f).Status)
}

const goodEditorConfig = `root = true

[*]
charset = utf-8
end_of_line = lf
indent_style = space
insert_final_newline = true
trim_trailing_whitespace = true

[*.go]
indent_style = tab
`

func TestEditorConfig(t *testing.T) {
	f := snapshot([]string{".editorconfig"}, map[string]string{".editorconfig": goodEditorConfig}, nil)
	assert.Equal(t, StatusPass, evalEditorConfig(f).Status)
	assert.Equal(t, StatusPass, evalEditorConfigRoot(f).Status)

	fd := evalEditorConfig(snapshot(nil, nil, nil))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Equal(t, "missing .editorconfig", fd.Message)

	partial := strings.ReplaceAll(goodEditorConfig, "insert_final_newline = true\n", "")
	fd = evalEditorConfig(snapshot([]string{".editorconfig"}, map[string]string{".editorconfig": partial}, nil))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Contains(t, fd.Message, "insert_final_newline=true")
	assert.NotContains(t, fd.Message, "charset")

	noRoot := strings.ReplaceAll(goodEditorConfig, "root = true\n", "")
	fd = evalEditorConfigRoot(snapshot([]string{".editorconfig"}, map[string]string{".editorconfig": noRoot}, nil))
	assert.Equal(t, StatusWarn, fd.Status)
}

func TestEditorConfigIgnoresOtherSections(t *testing.T) {
	// required keys set only under [*.go] do not count
	content := "[*.go]\ncharset = utf-8\nend_of_line = lf\nindent_style = space\ninsert_final_newline = true\ntrim_trailing_whitespace = true\n"
	fd := evalEditorConfig(snapshot([]string{".editorconfig"}, map[string]string{".editorconfig": content}, nil))
	assert.Equal(t, StatusFail, fd.Status)
}

func TestDevbox(t *testing.T) {
	cases := []struct {
		name    string
		content string
		status  Status
	}{
		{"package list", `{"packages": ["uv@latest", "git@latest"]}`, StatusPass},
		{"package map", `{"packages": {"uv": "latest"}}`, StatusPass},
		{"empty list", `{"packages": []}`, StatusWarn},
		{"no packages key", `{}`, StatusWarn},
		{"invalid json", `{not json`, StatusFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := snapshot([]string{"devbox.json"}, map[string]string{"devbox.json": tc.content}, nil)
			assert.Equal(t, tc.status, evalDevbox(f).Status)
		})
	}

	fd := evalDevbox(snapshot(nil, nil, nil))
	assert.Equal(t, StatusFail, fd.Status)
	assert.Equal(t, "missing devbox.json", fd.Message)
}

func TestEnvironmentRules(t *testing.T) {
	ci, _ := Get("ci-workflow")
	assert.Equal(t, StatusPass, ci.Eval(snapshot([]string{".github/workflows/ci.yaml"}, nil, nil)).Status)
	assert.Equal(t, StatusPass, ci.Eval(snapshot([]string{".github/workflows/ci.yml"}, nil, nil)).Status)
	assert.Equal(t, StatusFail, ci.Eval(snapshot([]string{".github/workflows/release.yaml"}, nil, nil)).Status)

	lang, _ := Get("language-detected")
	assert.Equal(t, StatusWarn, lang.Eval(snapshot(nil, nil, nil)).Status)
	assert.Equal(t, StatusPass, lang.Eval(snapshot(nil, nil, nil, facts.LangPython)).Status)
}

func TestConventionalHelpers(t *testing.T) {
	typ, ok := subjectType("feat(api)!: add x")
	assert.True(t, ok)
	assert.Equal(t, "feat", typ)

	_, ok = subjectType("no delimiter here")
	assert.False(t, ok)

	assert.Equal(t, "add x", subjectDescription("feat(api): add x"))
	assert.Equal(t, "plain subject", subjectDescription("plain subject"))

	assert.True(t, looksLikeAcronym("HTTP"))
	assert.True(t, looksLikeAcronym("OAuth2"))
	assert.False(t, looksLikeAcronym("Added"))
	assert.False(t, looksLikeAcronym("added"))
}
