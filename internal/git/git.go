package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

type ChangedFile struct {
	Path         string
	ChangedLines []int
}

// chunkHeader matches "@@ -oldStart,oldLen +newStart,newLen @@"; only the new
// side is captured.
var chunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// GetChangedFiles runs git diff against baseRef in dir and returns the changed
// files with the 1-based line numbers they now occupy. Paths are relative
// to dir.
func GetChangedFiles(ctx context.Context, dir, baseRef string) ([]ChangedFile, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "-U0", "--no-color", "--relative", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

// Lines indexes changed lines by path.
func Lines(files []ChangedFile) map[string][]int {
	out := make(map[string][]int, len(files))
	for _, f := range files {
		out[f.Path] = f.ChangedLines
	}
	return out
}

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			if currentFile != nil {
				changes = append(changes, *currentFile)
				currentFile = nil
			}
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				currentFile = &ChangedFile{Path: strings.TrimPrefix(parts[3], "b/"), ChangedLines: []int{}}
			}
			continue
		}

		if currentFile == nil {
			continue
		}

		// Deleted files report /dev/null as their new side.
		if strings.HasPrefix(line, "+++ /dev/null") {
			currentFile = nil
			continue
		}

		if strings.HasPrefix(line, "@@") {
			matches := chunkHeader.FindStringSubmatch(line)
			if len(matches) < 2 {
				continue
			}
			startLine, _ := strconv.Atoi(matches[1])
			count := 1
			if matches[2] != "" {
				count, _ = strconv.Atoi(matches[2])
			}
			// A zero count is a pure deletion; nothing exists on the new side.
			for i := 0; i < count; i++ {
				currentFile.ChangedLines = append(currentFile.ChangedLines, startLine+i)
			}
		}
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read diff: %w", err)
	}
	return changes, nil
}
