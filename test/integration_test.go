//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("VOXKEY_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "VOXKEY_TEST_BIN not set; build voxkey and point it at the binary")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func runVoxkey(t *testing.T, stdin string, args ...string) (logDir, stdout string) {
	t.Helper()
	logDir = t.TempDir()
	cmdArgs := append([]string{"-test", "-tui=false", "-logpath", logDir}, args...)

	cmd := exec.Command(testBinary, cmdArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = os.Environ()

	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("voxkey exited with error: %v\noutput: %s", err, out)
	}
	return logDir, string(out)
}

func readLog(t *testing.T, logDir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", filename, err)
	}
	return string(data)
}

func TestCommandIsLogged(t *testing.T) {
	logDir, out := runVoxkey(t, cmds("VOICE", "SAY control shift t", "QUIT"))
	if !strings.Contains(out, `said "control shift t": executed`) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(readLog(t, logDir, "command_log.txt"), "control shift t") {
		t.Error("command missing from command_log.txt")
	}
}

func TestPausedDropsEverything(t *testing.T) {
	logDir, out := runVoxkey(t, cmds("SAY control c", "SAY hello", "QUIT"))
	if strings.Contains(out, "key press") {
		t.Errorf("paused session injected keys:\n%s", out)
	}
	if strings.TrimSpace(readLog(t, logDir, "command_log.txt")) != "" {
		t.Error("paused session wrote commands")
	}
}

func TestDictationPastes(t *testing.T) {
	logDir, out := runVoxkey(t, cmds("SAY hello world", "SAY hello world"), "-voice")
	if strings.Count(out, `said "hello world": dictated`) != 2 {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Count(readLog(t, logDir, "command_log.txt"), "11 chars") != 2 {
		t.Error("expected two dictation lines in command_log.txt")
	}
}

func TestSessionDiagnostics(t *testing.T) {
	logDir, _ := runVoxkey(t, cmds("MODE voice", "GRAMMAR", "SAY tab", "QUIT"))
	diag := readLog(t, logDir, "diagnostics_log.txt")
	for _, want := range []string{"session_start", "state_change", `"channel":"grammar"`, "session_end"} {
		if !strings.Contains(diag, want) {
			t.Errorf("diagnostics_log.txt missing %s", want)
		}
	}
}

func TestGrammarHotkeyRejectsBadCombo(t *testing.T) {
	cmd := exec.Command(testBinary, "-test", "-grammar-key", "ctrl+banana")
	if err := cmd.Run(); err == nil {
		t.Fatal("expected a non-zero exit for an unknown key")
	}
}
