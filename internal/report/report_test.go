package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexoden/norms/internal/facts"
	"github.com/aexoden/norms/internal/rules"
)

func sampleReport(findings ...rules.Finding) *Report {
	f := facts.New("/repo", nil, nil, nil, []facts.Language{facts.LangPython})
	return New("run-test", f, findings)
}

func finding(rule string, status rules.Status) rules.Finding {
	sev := rules.SeverityError
	if status == rules.StatusWarn {
		sev = rules.SeverityWarning
	}
	return rules.Finding{Rule: rule, Category: rules.CategoryDocs, Severity: sev, Status: status}
}

func TestNewCountsStatuses(t *testing.T) {
	r := sampleReport(
		finding("a", rules.StatusPass),
		finding("b", rules.StatusPass),
		finding("c", rules.StatusFail),
		finding("d", rules.StatusWarn),
		finding("e", rules.StatusSkipped),
	)
	assert.Equal(t, Summary{Passed: 2, Failed: 1, Warnings: 1, Skipped: 1}, r.Summary)
	assert.Equal(t, "/repo", r.Path)
	assert.Equal(t, "run-test", r.ID)
}

func TestExitCode(t *testing.T) {
	clean := sampleReport(finding("a", rules.StatusPass))
	failed := sampleReport(finding("a", rules.StatusFail), finding("b", rules.StatusWarn))
	warned := sampleReport(finding("a", rules.StatusPass), finding("b", rules.StatusWarn))
	skippedOnly := sampleReport(finding("a", rules.StatusSkipped))

	assert.Equal(t, ExitOK, ExitCode(clean, false))
	assert.Equal(t, ExitOK, ExitCode(clean, true))

	assert.Equal(t, ExitFailures, ExitCode(failed, false))
	assert.Equal(t, ExitFailures, ExitCode(failed, true), "failures dominate warnings under strict")

	assert.Equal(t, ExitOK, ExitCode(warned, false))
	assert.Equal(t, ExitWarnings, ExitCode(warned, true))

	assert.Equal(t, ExitOK, ExitCode(skippedOnly, false))
	assert.Equal(t, ExitOK, ExitCode(skippedOnly, true), "skipped never affects the exit code")
}

func TestRecountAfterRewrite(t *testing.T) {
	r := sampleReport(finding("a", rules.StatusFail))
	assert.Equal(t, 1, r.Summary.Failed)

	r.Findings[0].Status = rules.StatusSkipped
	r.Recount()
	assert.Equal(t, Summary{Skipped: 1}, r.Summary)
	assert.Equal(t, ExitOK, ExitCode(r, true))
}

func TestEmitJSONIsFindingsArray(t *testing.T) {
	r := sampleReport(
		finding("readme", rules.StatusPass),
		rules.Finding{Rule: "license-file", Category: rules.CategoryLicensing, Severity: rules.SeverityError, Status: rules.StatusFail, Message: "missing LICENSE file"},
	)

	var buf bytes.Buffer
	require.NoError(t, EmitJSON(&buf, r))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "readme", got[0]["rule"])
	assert.Equal(t, "pass", got[0]["status"])
	_, hasMessage := got[0]["message"]
	assert.False(t, hasMessage, "empty fields are omitted")
	assert.Equal(t, "missing LICENSE file", got[1]["message"])
}

func TestEmitJSONDeterministic(t *testing.T) {
	r := sampleReport(finding("a", rules.StatusPass), finding("b", rules.StatusFail))
	var one, two bytes.Buffer
	require.NoError(t, EmitJSON(&one, r))
	require.NoError(t, EmitJSON(&two, r))
	assert.Equal(t, one.Bytes(), two.Bytes())
}

func TestWriteText(t *testing.T) {
	r := sampleReport(
		finding("readme", rules.StatusPass),
		rules.Finding{Rule: "license-file", Category: rules.CategoryLicensing, Severity: rules.SeverityError, Status: rules.StatusFail, Message: "missing LICENSE file"},
		rules.Finding{Rule: "renovate", Category: rules.CategoryDependency, Severity: rules.SeverityWarning, Status: rules.StatusWarn, Message: "missing renovate.json"},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "license-file")
	assert.Contains(t, out, "missing LICENSE file")
	assert.Contains(t, out, "renovate")
	assert.Contains(t, out, "Summary: 1 passed, 1 failed, 1 warnings, 0 skipped")
}
