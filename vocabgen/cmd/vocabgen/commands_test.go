package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeVocab(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vocab")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testVocab = `namespace foaf <http://xmlns.com/foaf/0.1/> {
	class Person;
	property name, givenname @deprecated;
}`

func TestGenerateToStdout(t *testing.T) {
	out, err := run(t, "generate", "--pkg", "terms", "--skip-deprecated", writeVocab(t, testVocab))
	require.NoError(t, err)
	assert.Contains(t, out, "package terms")
	assert.Contains(t, out, "// Source: test.vocab")
	assert.Contains(t, out, `FOAF.Term("Person")`)
	assert.NotContains(t, out, "givenname")
}

func TestGenerateToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "foaf_gen.go")
	out, err := run(t, "generate", "-o", target, "--prefixes=false", writeVocab(t, testVocab))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `const FOAF ast.Namespace = "http://xmlns.com/foaf/0.1/"`)
	assert.NotContains(t, string(data), "Prefixes")
}

func TestGenerateRemovesOutputOnError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "bad_gen.go")
	_, err := run(t, "generate", "-o", target, writeVocab(t, `namespace foaf <http://xmlns.com/foaf/0.1> { class Person; }`))
	assert.ErrorContains(t, err, "invalid vocabulary")
	assert.NoFileExists(t, target)
}

func TestCheck(t *testing.T) {
	good := writeVocab(t, testVocab)
	bad := writeVocab(t, `namespace foaf { }`)

	out, err := run(t, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, good+": ok")

	_, err = run(t, "check", good, bad)
	assert.ErrorContains(t, err, bad)
	assert.ErrorContains(t, err, "parse vocabulary")
}

func TestArgsRequired(t *testing.T) {
	_, err := run(t, "generate")
	assert.Error(t, err)
	_, err = run(t, "check")
	assert.Error(t, err)
}
