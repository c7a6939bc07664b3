// cli_test.go runs the commands end to end through the root
// command, with output captured in buffers.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
)

const (
	testList   = "ENVLIST_CLI_TEST_LIST"
	helperVar  = "ENVLIST_WANT_HELPER_PROCESS"
	helperExit = "ENVLIST_HELPER_EXIT"
)

// sep is the platform separator as a string, for building raw values.
var sep = string(env.Separator)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// TestHelperProcess is not a real test. exec tests run the test binary as
// the child command and it prints the list variable it inherited.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperVar) != "1" {
		return
	}
	value, ok := os.LookupEnv(testList)
	if !ok {
		value = "<unset>"
	}
	fmt.Print(value)
	code, _ := strconv.Atoi(os.Getenv(helperExit))
	os.Exit(code)
}

func TestList(t *testing.T) {
	t.Setenv(testList, "/a"+sep+sep+"/b"+sep)

	stdout, _, err := runCLI(t, "list", testList)
	require.NoError(t, err)
	assert.Equal(t, "  0  /a\n  1  /b\n", stdout)
}

func TestList_JSON(t *testing.T) {
	t.Setenv(testList, "/a"+sep+"/b")

	stdout, _, err := runCLI(t, "list", "-o", "json", testList)
	require.NoError(t, err)

	var got variableResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, testList, got.Name)
	assert.True(t, got.Set)
	assert.Equal(t, []string{"/a", "/b"}, got.Elements)
}

func TestList_Unset(t *testing.T) {
	t.Setenv(testList, "")
	require.NoError(t, os.Unsetenv(testList))

	stdout, _, err := runCLI(t, "list", testList)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestGet(t *testing.T) {
	t.Setenv(testList, "/a"+sep+"/b")

	stdout, _, err := runCLI(t, "get", testList)
	require.NoError(t, err)
	assert.Equal(t, "/a"+sep+"/b\n", stdout)
}

func TestGet_NotFound(t *testing.T) {
	t.Setenv(testList, "")
	require.NoError(t, os.Unsetenv(testList))

	_, _, err := runCLI(t, "get", testList)
	require.Error(t, err)
	assert.Equal(t, model.ExitVarNotFound, model.ExitCodeFor(err))
}

func TestGet_InvalidName(t *testing.T) {
	_, _, err := runCLI(t, "get", "A=B")
	require.Error(t, err)
	assert.Equal(t, model.ExitInvalidArgument, model.ExitCodeFor(err))
}

func TestFirst(t *testing.T) {
	t.Setenv(testList, sep+"/a"+sep+"/b")

	stdout, _, err := runCLI(t, "first", testList)
	require.NoError(t, err)
	assert.Equal(t, "/a\n", stdout)

	t.Setenv(testList, sep+sep)
	_, _, err = runCLI(t, "first", testList)
	assert.Equal(t, model.ExitVarNotFound, model.ExitCodeFor(err))
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := runCLI(t, "get", "-o", "xml", "HOME")
	require.Error(t, err)
	assert.Equal(t, model.ExitInvalidArgument, model.ExitCodeFor(err))
}

// TestShow verifies that show reports edited values without modifying the
// process environment.
func TestShow(t *testing.T) {
	t.Setenv(testList, "/b")

	stdout, _, err := runCLI(t, "show",
		"--prepend", testList+"=/a",
		"--append", testList+"=/c"+sep+"/b",
		"--unset", "ENVLIST_CLI_TEST_NEVER_SET",
	)
	require.NoError(t, err)
	// Touched variables are reported in the order edits reach them:
	// unset edits run before prepend and append.
	assert.Equal(t,
		"ENVLIST_CLI_TEST_NEVER_SET (unset)\n"+testList+"=/a"+sep+"/c"+sep+"/b\n",
		stdout)

	assert.Equal(t, "/b", os.Getenv(testList), "show must not touch the process environment")
}

func TestShow_Remove(t *testing.T) {
	t.Setenv(testList, "/a"+sep+"/tmp"+sep+"/b")

	stdout, _, err := runCLI(t, "show", "--remove", testList+"=/tmp"+sep+"/none")
	require.NoError(t, err)
	assert.Equal(t, testList+"=/a"+sep+"/b\n", stdout)
}

func TestShow_ProfileYAML(t *testing.T) {
	t.Setenv(testList, "/tmp"+sep+"/usr/bin")
	path := filepath.Join(t.TempDir(), "dev.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
variables:
  `+testList+`:
    remove: [/tmp]
    prepend: [/opt/bin]
`), 0o644))

	stdout, _, err := runCLI(t, "show", "-o", "yaml", "--profile", path)
	require.NoError(t, err)

	var got []variableResult
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"/opt/bin", "/usr/bin"}, got[0].Elements)
}

func TestShow_ProfileNotFound(t *testing.T) {
	_, _, err := runCLI(t, "show", "--profile", filepath.Join(t.TempDir(), "none.jsonc"))
	require.Error(t, err)
	assert.Equal(t, model.ExitProfileNotFound, model.ExitCodeFor(err))
}

func TestShow_BadEditFlag(t *testing.T) {
	_, _, err := runCLI(t, "show", "--prepend", "PATH")
	require.Error(t, err)
	assert.Equal(t, model.ExitInvalidArgument, model.ExitCodeFor(err))
}

func TestShow_SeparatorInsideElement(t *testing.T) {
	_, _, err := runCLI(t, "show", "--profile", writeProfile(t, `{"variables": {"`+testList+`": {"append": ["/a`+sep+`/b"]}}}`))
	require.Error(t, err)
	assert.Equal(t, model.ExitInvalidArgument, model.ExitCodeFor(err))
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestExec runs the test binary as the child and checks the list variable
// it received for each kind of edit. The parent's own environment must be
// left as it was.
func TestExec(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		flags   []string
		want    string
	}{
		{name: "prepend", initial: "/b", flags: []string{"--prepend", testList + "=/a"}, want: "/a" + sep + "/b"},
		{name: "append", initial: "/b", flags: []string{"--append", testList + "=/c"}, want: "/b" + sep + "/c"},
		{name: "remove", initial: "/a" + sep + "/b" + sep + "/c", flags: []string{"--remove", testList + "=/b"}, want: "/a" + sep + "/c"},
		{name: "remove last element unsets", initial: "/a", flags: []string{"--remove", testList + "=/a"}, want: "<unset>"},
		{name: "unset", initial: "/a", flags: []string{"--unset", testList}, want: "<unset>"},
		{name: "set", initial: "/a", flags: []string{"--set", testList + "=raw value"}, want: "raw value"},
		{name: "no edits", initial: "/a", want: "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(testList, tt.initial)
			t.Setenv(helperVar, "1")
			t.Setenv(helperExit, "0")

			args := append([]string{"exec"}, tt.flags...)
			args = append(args, "--", os.Args[0], "-test.run=^TestHelperProcess$")
			stdout, _, err := runCLI(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			assert.Equal(t, tt.initial, os.Getenv(testList), "exec must not modify its own environment")
		})
	}
}

// TestExec_LooksUpCommandInEditedPATH puts a script in a fresh directory
// and runs it by bare name after prepending that directory to PATH.
func TestExec_LooksUpCommandInEditedPATH(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "envlist-test-tool")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho from-edited-path\n"), 0o755))

	stdout, _, err := runCLI(t, "exec", "--prepend", "PATH="+dir, "--", "envlist-test-tool")
	require.NoError(t, err)
	assert.Equal(t, "from-edited-path\n", stdout)
}

// TestChildEnviron checks that Windows per-drive entries, which no
// variable name can address, reach the child unchanged.
func TestChildEnviron(t *testing.T) {
	environ := []string{"A=1", `=C:=C:\src`, "B=2"}
	mem := env.NewMemory(environ)
	require.NoError(t, mem.Set("B", "3"))

	assert.Equal(t, []string{"A=1", "B=3", `=C:=C:\src`}, childEnviron(mem, environ))
}

func TestExec_ForwardsExitCode(t *testing.T) {
	t.Setenv(testList, "")
	t.Setenv(helperVar, "1")
	t.Setenv(helperExit, "7")

	_, _, err := runCLI(t, "exec", "--", os.Args[0], "-test.run=^TestHelperProcess$")
	require.Error(t, err)
	assert.Equal(t, model.ExitCode(7), model.ExitCodeFor(err))
}

func TestExec_CommandNotFound(t *testing.T) {
	_, _, err := runCLI(t, "exec", "--", filepath.Join(t.TempDir(), "no-such-binary"))
	require.Error(t, err)
	assert.Equal(t, model.ExitCommandFailed, model.ExitCodeFor(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Setenv(testList, "/a")

	_, stderr, err := runCLI(t, "list", "-v", testList)
	require.NoError(t, err)
	assert.Contains(t, stderr, "has 1 elements")
	assert.Contains(t, stderr, "loaded list")
}

func TestPrintError(t *testing.T) {
	t.Cleanup(func() { format = model.OutputText })

	var buf bytes.Buffer
	format = model.OutputText
	printError(&buf, "PATH is not set", nil)
	assert.Equal(t, "Error: PATH is not set\n", buf.String())

	buf.Reset()
	format = model.OutputJSON
	printError(&buf, "profile not found", os.ErrNotExist)
	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "profile not found", got["error"]["message"])
	assert.Equal(t, os.ErrNotExist.Error(), got["error"]["detail"])
}
