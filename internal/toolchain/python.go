package toolchain

import "path/filepath"

// Python language toolchain: no compile step, interpreter mounted in.

const (
	pythonLanguage   = "python"
	pythonVersion    = "3.12.7"
	pythonBinRel     = "bin/python3"
	pythonSourceFile = "main.py"
)

var (
	pythonDirDefault   = toolchainDirDefault(pythonLanguage)
	pythonMountDefault = mountPointDefault(pythonLanguage)
)

func toolchainPython() Toolchain {
	return Toolchain{
		Name:           pythonLanguage,
		Identifier:     pythonLanguage,
		Version:        pythonVersion,
		SourceFileName: pythonSourceFile,
		Runtime: RuntimeSpec{
			BinaryPath: filepath.Join(pythonMountDefault, pythonBinRel),
			Mounts: []Mount{
				{SourcePath: pythonDirDefault, TargetPath: pythonMountDefault},
			},
			Args: []string{pythonSourceFile},
		},
	}
}
