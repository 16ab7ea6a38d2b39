package toolchain

import "path/filepath"

// Kotlin language toolchain. kotlinc needs JAVA_HOME to compile, and the
// compiled jar runs on the same mounted JVM as the Java toolchain.

const (
	kotlinLanguage   = "kotlin"
	kotlinVersion    = "2.0.21"
	kotlincBinRel    = "kotlinc/bin/kotlinc"
	kotlinSourceFile = "Main.kt"
	kotlinJarFile    = "Main.jar"
)

var kotlinDirDefault = toolchainDirDefault(kotlinLanguage)

func toolchainKotlin() Toolchain {
	return Toolchain{
		Name:           kotlinLanguage,
		Identifier:     kotlinLanguage,
		Version:        kotlinVersion,
		SourceFileName: kotlinSourceFile,
		Compile: &CompileSpec{
			CompilerPath: filepath.Join(kotlinDirDefault, kotlincBinRel),
			Env:          map[string]string{"JAVA_HOME": javaDirDefault},
			Args:         []string{kotlinSourceFile, "-include-runtime", "-d", kotlinJarFile},
		},
		Runtime: RuntimeSpec{
			BinaryPath: filepath.Join(javaMountDefault, javaBinRel),
			Mounts: []Mount{
				{SourcePath: javaDirDefault, TargetPath: javaMountDefault},
			},
			Args: append(javaRuntimeArgs(), "-jar", kotlinJarFile),
		},
	}
}
