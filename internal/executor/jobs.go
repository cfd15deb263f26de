package executor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forgec/forgec/internal/builderrs"
	"github.com/forgec/forgec/internal/scan"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// runCommand executes argv, capturing stdout and stderr separately, and
// returns them along with the process exit code.
func runCommand(argv []string) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	stdout, stderr = outBuf.String(), errBuf.String()

	if runErr == nil {
		return stdout, stderr, 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return stdout, stderr, exitErr.ExitCode(), runErr
	}
	return stdout, stderr, -1, runErr
}

// runCompile executes a compile command, writing the object file and a
// sibling make-style .d dependency record on success.
func runCompile(argv []string, source, object string) error {
	if err := os.MkdirAll(filepath.Dir(object), 0o755); err != nil {
		return err
	}

	stdout, stderr, code, err := runCommand(argv)
	if err != nil {
		return builderrs.NewCompileError(argv, stdout, stderr, code)
	}

	return writeDependencyRecord(object, source)
}

// writeDependencyRecord writes <object>: <source>\n\t<include>\n... to the
// sibling .d file, per spec.md §6's dependency record format.
func writeDependencyRecord(object, source string) error {
	depPath := strings.TrimSuffix(object, filepath.Ext(object)) + ".d"

	var sb strings.Builder
	sb.WriteString(object)
	sb.WriteString(": ")
	sb.WriteString(source)
	sb.WriteByte('\n')
	for _, inc := range scan.ExtractIncludes(source) {
		sb.WriteByte('\t')
		sb.WriteString(inc)
		sb.WriteByte('\n')
	}

	return os.WriteFile(depPath, []byte(sb.String()), 0o644)
}

// runLink executes a link command.
func runLink(argv []string) error {
	outPath := argv[len(argv)-1]
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	stdout, stderr, code, err := runCommand(argv)
	if err != nil {
		return builderrs.NewLinkError(argv, stdout, stderr, code)
	}
	return nil
}

// runArchive executes an `ar rcs` invocation.
func runArchive(objects []string, archivePath string) error {
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	argv := append([]string{"ar", "rcs", archivePath}, objects...)

	stdout, stderr, code, err := runCommand(argv)
	if err != nil {
		return builderrs.NewArchiveError(argv, stdout, stderr, code)
	}
	return nil
}
