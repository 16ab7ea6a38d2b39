package toolchain

import "path/filepath"

// Rust language toolchain, versioned under /opt/toolchains/rust/current.
// rustc produces a static-ish binary, so no runtime mount is needed.

const (
	rustLanguage   = "rust"
	rustVersion    = "1.81.0"
	rustcBinRel    = "bin/rustc"
	rustSourceFile = "main.rs"
	rustBinaryFile = "main"
)

var rustDirDefault = toolchainDirDefault(rustLanguage)

func toolchainRust() Toolchain {
	return Toolchain{
		Name:           rustLanguage,
		Identifier:     rustLanguage,
		Version:        rustVersion,
		SourceFileName: rustSourceFile,
		Compile: &CompileSpec{
			CompilerPath: filepath.Join(rustDirDefault, rustcBinRel),
			Args:         []string{"-o", rustBinaryFile, rustSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: rustBinaryFile,
		},
	}
}
