package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	minicCmd     = "go run ./cmd/minic check"
	checkTimeout = 30 * time.Second // Timeout for one analyzer run, build included
	expectPrefix = "// expect:"
)

type testResult struct {
	fileName string
	passed   bool
	output   string // Contains detailed error/mismatch info on failure
	isGood   bool   // True for good tests, false for bad tests
}

func main() {
	// --- Run Good Tests Sequentially ---
	fmt.Println("\n🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join("tests/good", "*.c"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	failedTests := []testResult{}

	for _, file := range goodFiles {
		fmt.Printf("→ Running good test: %s\n", filepath.Base(file))
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s\n", res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  ❌ %s\n", res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	// --- Run Bad Tests Sequentially ---
	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join("tests/bad", "*.c"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		fmt.Printf("→ Running bad test: %s\n", filepath.Base(file))
		res := runBadTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s (Failed as expected)\n", res.fileName)
			badPassed++
		} else {
			fmt.Printf("  ❌ %s (Unexpected Result)\n", res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	// --- Reporting ---
	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed) // Passed = Failed as expected
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	} else {
		fmt.Println("\n🎉 All tests passed!")
	}
}

// runGoodTest expects the analyzer to accept the file.
func runGoodTest(file string) testResult {
	res := testResult{fileName: filepath.Base(file), isGood: true}

	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %s", minicCmd, file))
	outputBytes, err := runCommandWithTimeout(cmd, checkTimeout)
	output := string(outputBytes)

	if err != nil {
		res.output = fmt.Sprintf("Analysis failed: %v\nOutput:\n%s", err, output)
		return res
	}
	if strings.Contains(output, "Syntax Error:") || strings.Contains(output, "Semantic Error:") {
		res.output = fmt.Sprintf("Analysis produced unexpected errors:\nOutput:\n%s", output)
		return res
	}
	res.passed = true
	return res
}

// runBadTest expects the analyzer to reject the file with the message named
// on its "// expect:" line.
func runBadTest(file string) testResult {
	res := testResult{fileName: filepath.Base(file), isGood: false}

	expected, err := expectedMessage(file)
	if err != nil {
		res.output = err.Error()
		return res
	}

	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %s", minicCmd, file))
	outputBytes, err := runCommandWithTimeout(cmd, checkTimeout)
	output := string(outputBytes)

	switch {
	case err != nil && strings.Contains(output, expected):
		res.passed = true
	case err != nil:
		res.output = fmt.Sprintf("Failed, but without %q.\nExit Err: %v\nOutput:\n%s", expected, err, output)
	default:
		res.output = fmt.Sprintf("Expected failure but got success.\nOutput:\n%s", output)
	}
	return res
}

func expectedMessage(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, expectPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, expectPrefix)), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s: missing %q line", file, expectPrefix)
}

func runCommandWithTimeout(cmd *exec.Cmd, timeout time.Duration) ([]byte, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out // Capture both stdout and stderr

	err := cmd.Start()
	if err != nil {
		return out.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		if killErr := cmd.Process.Kill(); killErr != nil {
			return out.Bytes(), fmt.Errorf("command '%s' timed out after %v and failed to kill: %w", cmd.String(), timeout, killErr)
		}
		return out.Bytes(), fmt.Errorf("command '%s' timed out after %v", cmd.String(), timeout)
	case err := <-done:
		return out.Bytes(), err
	}
}
