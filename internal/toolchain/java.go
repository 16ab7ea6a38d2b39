package toolchain

import "path/filepath"

// Java language toolchain, versioned under /opt/toolchains/java/current and
// mounted into the sandbox at /opt/java so the JVM can resolve its own
// runtime libraries at execution time.

const (
	javaLanguage   = "java"
	javaVersion    = "17"
	javaBinRel     = "bin/java"
	javacBinRel    = "bin/javac"
	javaSourceFile = "Main.java"
	javaClassName  = "Main"
)

var (
	javaDirDefault   = toolchainDirDefault(javaLanguage)
	javaMountDefault = mountPointDefault(javaLanguage)
)

func javaRuntimeArgs() []string {
	return []string{
		"-Xmx128m",
		"-Xms16m",
		"-Xss512k",
		"-XX:MaxMetaspaceSize=128m",
		"-XX:ReservedCodeCacheSize=64m",
		"-XX:MaxDirectMemorySize=32m",
		"-XX:CompressedClassSpaceSize=64m",
	}
}

func toolchainJava() Toolchain {
	return Toolchain{
		Name:           javaLanguage,
		Identifier:     javaLanguage,
		Version:        javaVersion,
		SourceFileName: javaSourceFile,
		Compile: &CompileSpec{
			CompilerPath: filepath.Join(javaDirDefault, javacBinRel),
			Args:         []string{javaSourceFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: filepath.Join(javaMountDefault, javaBinRel),
			Mounts: []Mount{
				{SourcePath: javaDirDefault, TargetPath: javaMountDefault},
			},
			Args: append(javaRuntimeArgs(), javaClassName),
		},
	}
}
