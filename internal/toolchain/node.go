package toolchain

import "path/filepath"

// Node.js language toolchain: no compile step, interpreter mounted in.

const (
	nodeLanguage   = "node"
	nodeVersion    = "20.18.0"
	nodeBinRel     = "bin/node"
	nodeSourceFile = "main.js"
)

var (
	nodeDirDefault   = toolchainDirDefault(nodeLanguage)
	nodeMountDefault = mountPointDefault(nodeLanguage)
)

func toolchainNode() Toolchain {
	return Toolchain{
		Name:           nodeLanguage,
		Identifier:     nodeLanguage,
		Version:        nodeVersion,
		SourceFileName: nodeSourceFile,
		Runtime: RuntimeSpec{
			BinaryPath: filepath.Join(nodeMountDefault, nodeBinRel),
			Mounts: []Mount{
				{SourcePath: nodeDirDefault, TargetPath: nodeMountDefault},
			},
			Args: []string{nodeSourceFile},
		},
	}
}
