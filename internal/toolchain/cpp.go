package toolchain

// C++ language toolchain. Same system-compiler rationale as C.

const (
	cppLanguage   = "cpp"
	cppVersion    = "11"
	gxxBin        = "/usr/bin/g++"
	cppSourceFile = "main.cpp"
	cppBinaryFile = "main"
)

func toolchainCpp() Toolchain {
	return Toolchain{
		Name:           cppLanguage,
		Identifier:     cppLanguage,
		Version:        cppVersion,
		SourceFileName: cppSourceFile,
		Compile: &CompileSpec{
			CompilerPath: gxxBin,
			Args:         []string{"-o", cppBinaryFile, cppSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: cppBinaryFile,
		},
	}
}
