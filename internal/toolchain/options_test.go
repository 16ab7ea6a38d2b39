package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pecan/internal/language"
)

func TestBuildExecutionOptionsRejectsUnknownLanguage(t *testing.T) {
	_, err := BuildExecutionOptions(language.Unknown, "print(1)", "", 1, 65536)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotSupportedLanguage)
}

func TestBuildExecutionOptionsPythonHasNoCompileStep(t *testing.T) {
	opts, err := BuildExecutionOptions(language.Python, "print(1)", "", 1, 65536)
	require.NoError(t, err)
	assert.Nil(t, opts.Compile)
	assert.Equal(t, "main.py", opts.AdditionalFiles[0].FileName)
	assert.Equal(t, "print(1)", opts.AdditionalFiles[0].FileContent)
	assert.NotEmpty(t, opts.Mounts)
	assert.Equal(t, []string{"main.py"}, opts.Args)
}

func TestBuildExecutionOptionsCHasCompileStepAndNoMounts(t *testing.T) {
	opts, err := BuildExecutionOptions(language.C, "int main(){return 0;}", "", 1, 65536)
	require.NoError(t, err)
	require.NotNil(t, opts.Compile)
	assert.Equal(t, "/usr/bin/gcc", opts.Compile.CompilerPath)
	assert.Equal(t, []string{"-o", "main", "main.c"}, opts.Compile.Args)
	assert.Empty(t, opts.Mounts)
	assert.Equal(t, "main", opts.BinaryPath)
}

func TestBuildExecutionOptionsKotlinSharesJavaRuntimeMount(t *testing.T) {
	opts, err := BuildExecutionOptions(language.Kotlin, "fun main() {}", "", 1, 65536)
	require.NoError(t, err)
	require.NotNil(t, opts.Compile)
	assert.Equal(t, javaDirDefault, opts.Compile.Env["JAVA_HOME"])
	require.Len(t, opts.Mounts, 1)
	assert.Equal(t, javaMountDefault, opts.Mounts[0].MountPoint)
	assert.Contains(t, opts.BinaryPath, javaMountDefault)
}

func TestBuildExecutionOptionsTypeScriptRunsOnMountedNode(t *testing.T) {
	opts, err := BuildExecutionOptions(language.TypeScript, "console.log(1)", "", 1, 65536)
	require.NoError(t, err)
	require.NotNil(t, opts.Compile)
	assert.Equal(t, []string{"main.ts"}, opts.Compile.Args)
	assert.Equal(t, []string{"main.js"}, opts.Args)
	require.Len(t, opts.Mounts, 1)
	assert.Equal(t, nodeMountDefault, opts.Mounts[0].MountPoint)
}

func TestBuildExecutionOptionsPropagatesLimits(t *testing.T) {
	opts, err := BuildExecutionOptions(language.Go, "package main\nfunc main() {}", "hello", 2.5, 131072)
	require.NoError(t, err)
	assert.Equal(t, 2.5, opts.TimeLimitS)
	assert.Equal(t, float64(131072), opts.MemoryLimitKB)
	assert.Equal(t, "hello", opts.Stdin)
}
