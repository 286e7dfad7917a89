package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/figura-dev/go-figura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_NoArgsShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "frobnicate")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, "unknown command: frobnicate")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, VersionProject+" "+Version)
}

func TestRender_FromStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "Hello, {name}!",
		CmdNameRender, "-t", "-", "name=World")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Hello, World!", stdout)
}

func TestRender_TypedPairs(t *testing.T) {
	code, stdout, stderr := runCLI(t, "{n} {f} {ok?y:n} {-:w}",
		CmdNameRender, "-t", "-",
		"n:int=3", "f:float=0.5", "ok:bool=true", "w:int=2")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "3 0.5 y --", stdout)
}

func TestRender_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.tpl")
	require.NoError(t, os.WriteFile(path, []byte("Hi {name}"), 0o644))

	code, stdout, stderr := runCLI(t, "", CmdNameRender, "-t", path, "name=Ada")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Hi Ada", stdout)
}

func TestRender_CustomDelimiters(t *testing.T) {
	code, stdout, stderr := runCLI(t, "Hello [name], {untouched}",
		CmdNameRender, "-t", "-", "-open", "[", "-close", "]", "name=World")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Hello World, {untouched}", stdout)
}

func TestRender_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.txt")

	code, stdout, stderr := runCLI(t, "{a}",
		CmdNameRender, "-t", "-", "-o", out, "a=done")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "done", string(data))
}

func TestRender_MissingTemplateFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameRender, "name=x")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgMissingTemplate)
}

func TestRender_ParseError(t *testing.T) {
	code, _, stderr := runCLI(t, "Hello {name", CmdNameRender, "-t", "-")

	assert.Equal(t, ExitCodeError, code)
	assert.Contains(t, stderr, ErrMsgParseFailed)
}

func TestRender_RenderError(t *testing.T) {
	code, _, stderr := runCLI(t, "{missing}", CmdNameRender, "-t", "-")

	assert.Equal(t, ExitCodeError, code)
	assert.Contains(t, stderr, ErrMsgRenderFailed)
}

func TestRender_BadPair(t *testing.T) {
	code, _, stderr := runCLI(t, "{a}", CmdNameRender, "-t", "-", "nonsense")

	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgInvalidPair)
}

func TestRender_BadDelimiter(t *testing.T) {
	code, _, stderr := runCLI(t, "{a}", CmdNameRender, "-t", "-", "-open", "[[", "a=x")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidDelim)
}

func TestValidate_Valid(t *testing.T) {
	code, stdout, stderr := runCLI(t, "{a>} literal {b}", CmdNameValidate, "-t", "-")

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, "valid: 3 segments")
	assert.Contains(t, stdout, "segment 0: right (explicit)")
	assert.Contains(t, stdout, "segment 2: left (implicit)")
}

func TestValidate_Invalid(t *testing.T) {
	code, _, stderr := runCLI(t, "{oops", CmdNameValidate, "-t", "-")

	assert.Equal(t, ExitCodeError, code)
	assert.Contains(t, stderr, ErrMsgParseFailed)
}

func TestParseContextPairs(t *testing.T) {
	ctx, err := parseContextPairs([]string{
		"s=text", "empty=", "n:int=-4", "f:float=1.25", "b:bool=false",
	})

	require.NoError(t, err)
	assert.Equal(t, figura.StringValue("text"), ctx["s"])
	assert.Equal(t, figura.StringValue(""), ctx["empty"])
	assert.Equal(t, figura.IntValue(-4), ctx["n"])
	assert.Equal(t, figura.FloatValue(1.25), ctx["f"])
	assert.Equal(t, figura.BoolValue(false), ctx["b"])
}

func TestParseContextPairs_Errors(t *testing.T) {
	for _, arg := range []string{"novalue", "=x", "n:int=abc", "x:blob=1"} {
		_, err := parseContextPairs([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestParseDelim(t *testing.T) {
	r, err := parseDelim("", '{')
	require.NoError(t, err)
	assert.Equal(t, '{', r)

	r, err = parseDelim("«", '{')
	require.NoError(t, err)
	assert.Equal(t, '«', r)

	_, err = parseDelim("ab", '{')
	assert.Error(t, err)
}
