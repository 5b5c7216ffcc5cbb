package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/objectvalidation/internal/config"
)

const userSchema = `
id:
  allowed: false
name:
  type: string
  alwaysPresent: true
age:
  type: number
  required: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newEnv(stdin string) (env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return env{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		cfg:    config.Config{LogLevel: "info", LogFormat: "text", Addr: ":0"},
	}, &stdout, &stderr
}

func TestRun_Usage(t *testing.T) {
	e, _, stderr := newEnv("")
	assert.Equal(t, exitUsage, e.run(nil))
	assert.Equal(t, exitUsage, e.run([]string{"frobnicate"}))
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestCheck(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)

	t.Run("valid stdin", func(t *testing.T) {
		e, stdout, _ := newEnv(`{"name":"Ada","age":36}`)
		assert.Equal(t, exitOK, e.run([]string{"check", "-schema", schema}))
		assert.Equal(t, "-: valid\n", stdout.String())
	})

	t.Run("invalid file", func(t *testing.T) {
		obj := writeFile(t, "obj.json", `{"id":1,"name":""}`)
		e, stdout, stderr := newEnv("")
		assert.Equal(t, exitInvalid, e.run([]string{"check", "-schema", schema, obj}))
		assert.Equal(t, obj+": invalid (3 violations)\n", stdout.String())
		assert.Contains(t, stderr.String(), `Property \"id\" cannot be present.`)
		assert.Contains(t, stderr.String(), "code=object_property_required")
	})

	t.Run("single violation", func(t *testing.T) {
		e, stdout, _ := newEnv(`{"name":"Ada"}`)
		assert.Equal(t, exitInvalid, e.run([]string{"check", "-schema", schema}))
		assert.Equal(t, "-: invalid (1 violation)\n", stdout.String())
	})

	t.Run("fail fast", func(t *testing.T) {
		e, stdout, stderr := newEnv(`{"id":1,"name":""}`)
		assert.Equal(t, exitInvalid, e.run([]string{"check", "-schema", schema, "-fail-fast"}))
		assert.Equal(t, "-: invalid: Property \"id\" cannot be present.\n", stdout.String())
		assert.Contains(t, stderr.String(), "code=object_property_forbidden")
	})

	t.Run("force required false", func(t *testing.T) {
		e, stdout, _ := newEnv(`{"name":"Ada"}`)
		assert.Equal(t, exitOK, e.run([]string{"check", "-schema", schema, "-force-required", "false"}))
		assert.Equal(t, "-: valid\n", stdout.String())
	})

	t.Run("bad force required", func(t *testing.T) {
		e, _, _ := newEnv(`{}`)
		assert.Equal(t, exitUsage, e.run([]string{"check", "-schema", schema, "-force-required", "maybe"}))
	})

	t.Run("missing schema flag", func(t *testing.T) {
		e, _, _ := newEnv(`{}`)
		assert.Equal(t, exitUsage, e.run([]string{"check"}))
	})

	t.Run("not json", func(t *testing.T) {
		e, _, stderr := newEnv(`[1, 2]`)
		assert.Equal(t, exitUsage, e.run([]string{"check", "-schema", schema}))
		assert.Contains(t, stderr.String(), "cannot decode object")
	})
}

func TestOpenAPI(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)
	e, stdout, _ := newEnv("")
	require.Equal(t, exitOK, e.run([]string{"openapi", "-schema", schema}))
	assert.Contains(t, stdout.String(), `"required"`)
	assert.Contains(t, stdout.String(), `"minLength"`)
}

func TestLint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		schema := writeFile(t, "user.yaml", userSchema)
		e, stdout, _ := newEnv("")
		assert.Equal(t, exitOK, e.run([]string{"lint", "-schema", schema}))
		assert.Equal(t, schema+": ok\n", stdout.String())
	})

	t.Run("problems", func(t *testing.T) {
		schema := writeFile(t, "bad.yaml", "id:\n  forbidden: true\n  type: string\nname:\n  type: text\n")
		e, stdout, _ := newEnv("")
		assert.Equal(t, exitInvalid, e.run([]string{"lint", "-schema", schema}))
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], schema+": id: "))
		assert.True(t, strings.HasPrefix(lines[1], schema+": name: "))
	})

	t.Run("unreadable", func(t *testing.T) {
		e, _, _ := newEnv("")
		assert.Equal(t, exitUsage, e.run([]string{"lint", "-schema", filepath.Join(t.TempDir(), "none.yaml")}))
	})
}

func TestServe_BadDir(t *testing.T) {
	e, _, stderr := newEnv("")
	assert.Equal(t, exitUsage, e.run([]string{"serve", "-schemas", filepath.Join(t.TempDir(), "missing")}))
	assert.Contains(t, stderr.String(), "cannot load schemas")
}
