package toolchain

// C language toolchain. gcc/g++ come from the system package manager rather
// than a versioned /opt/toolchains tree, since libc dependencies make a
// relocatable C/C++ toolchain impractical.

const (
	cLanguage  = "c"
	cVersion   = "11"
	gccBin     = "/usr/bin/gcc"
	cSourceFile = "main.c"
	cBinaryFile = "main"
)

func toolchainC() Toolchain {
	return Toolchain{
		Name:           cLanguage,
		Identifier:     cLanguage,
		Version:        cVersion,
		SourceFileName: cSourceFile,
		Compile: &CompileSpec{
			CompilerPath: gccBin,
			Args:         []string{"-o", cBinaryFile, cSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: cBinaryFile,
		},
	}
}
