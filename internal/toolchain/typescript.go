package toolchain

import "path/filepath"

// TypeScript language toolchain: tsc compiles on the host to plain JS,
// which then runs on the same mounted Node runtime as the Node toolchain.

const (
	typescriptLanguage   = "typescript"
	typescriptVersion    = "5.7.3"
	tscBinRel            = "bin/tsc"
	typescriptSourceFile = "main.ts"
	typescriptJSFile     = "main.js"
)

var typescriptDirDefault = toolchainDirDefault(typescriptLanguage)

func toolchainTypeScript() Toolchain {
	return Toolchain{
		Name:           typescriptLanguage,
		Identifier:     typescriptLanguage,
		Version:        typescriptVersion,
		SourceFileName: typescriptSourceFile,
		Compile: &CompileSpec{
			CompilerPath: filepath.Join(typescriptDirDefault, tscBinRel),
			Args:         []string{typescriptSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: filepath.Join(nodeMountDefault, nodeBinRel),
			Mounts: []Mount{
				{SourcePath: nodeDirDefault, TargetPath: nodeMountDefault},
			},
			Args: []string{typescriptJSFile},
		},
	}
}
