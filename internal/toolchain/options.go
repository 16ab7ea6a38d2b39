package toolchain

import (
	"fmt"

	"pecan/internal/language"
	"pecan/internal/sandboxpool"
)

// ErrNotSupportedLanguage is returned by BuildExecutionOptions for any
// language outside the known toolchain table.
var ErrNotSupportedLanguage = fmt.Errorf("toolchain: language not supported")

// BuildExecutionOptions is the pure, I/O-free builder that turns a
// language, source text, stdin, and limits into a sandboxpool.ExecutionOptions
// ready to hand to the sandbox manager. It performs no I/O.
func BuildExecutionOptions(l language.Language, code, stdin string, timeLimitS, memoryLimitKB float64) (sandboxpool.ExecutionOptions, error) {
	tc, ok := Get(l)
	if !ok {
		return sandboxpool.ExecutionOptions{}, fmt.Errorf("%w: %s", ErrNotSupportedLanguage, l)
	}

	opts := sandboxpool.ExecutionOptions{
		AdditionalFiles: []sandboxpool.AdditionalFile{
			{FileName: tc.SourceFileName, FileContent: code},
		},
		BinaryPath:    tc.Runtime.BinaryPath,
		Args:          tc.Runtime.Args,
		Stdin:         stdin,
		TimeLimitS:    timeLimitS,
		MemoryLimitKB: memoryLimitKB,
	}

	if tc.Compile != nil {
		opts.Compile = &sandboxpool.CompileOptions{
			CompilerPath: tc.Compile.CompilerPath,
			Env:          tc.Compile.Env,
			Args:         tc.Compile.Args,
		}
	}

	for _, m := range tc.Runtime.Mounts {
		opts.Mounts = append(opts.Mounts, sandboxpool.DirMount{
			DirectoryPath: m.SourcePath,
			MountPoint:    m.TargetPath,
		})
	}

	return opts, nil
}
