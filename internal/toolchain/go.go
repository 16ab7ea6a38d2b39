package toolchain

import "path/filepath"

// Go language toolchain, versioned under /opt/toolchains/go/current.

const (
	goLanguage   = "go"
	goVersion    = "1.23.3"
	goBinRel     = "bin/go"
	goSourceFile = "main.go"
	goBinaryFile = "main"
)

var goDirDefault = toolchainDirDefault(goLanguage)

func toolchainGo() Toolchain {
	return Toolchain{
		Name:           goLanguage,
		Identifier:     goLanguage,
		Version:        goVersion,
		SourceFileName: goSourceFile,
		Compile: &CompileSpec{
			CompilerPath: filepath.Join(goDirDefault, goBinRel),
			Args:         []string{"build", "-o", goBinaryFile, goSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: goBinaryFile,
		},
	}
}
