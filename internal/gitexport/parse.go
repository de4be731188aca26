package gitexport

import (
	"strconv"
	"strings"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// historyCommit is one commit parsed from the name-status log, oldest first.
type historyCommit struct {
	Hash      string
	Timestamp int64
	Author    string
	Email     string
	Subject   string
	Changes   []fileChange
}

// fileChange is one name-status line within a commit. Path is the path the
// event lands on, which for renames and copies is the destination.
type fileChange struct {
	Op   schema.ChangeOp
	Path string
	From string // source path for renames, empty otherwise
}

// parseHistoryLog turns the raw `git log --reverse --name-status` output into
// commit records. Lines that belong to a malformed header are dropped along
// with the header so one bad commit cannot poison the rest of the history.
func parseHistoryLog(out []byte) []historyCommit {
	lines := strings.Split(string(out), "\n")
	var commits []historyCommit
	var current *historyCommit

	for _, l := range lines {
		l = strings.Trim(l, " \t\r\n'")

		if strings.HasPrefix(l, "--") {
			// Commit header line
			commit, ok := parseCommitHeader(l)
			if !ok {
				current = nil
				continue
			}
			commits = append(commits, commit)
			current = &commits[len(commits)-1]
			continue
		}
		if l == "" || current == nil {
			continue // Skip blank lines and orphaned status lines
		}

		change, ok := parseNameStatusLine(l)
		if !ok {
			continue
		}
		current.Changes = append(current.Changes, change)
	}

	return commits
}

// parseCommitHeader extracts the commit fields from a `--%h|%at|%an|%ae|%s`
// header line. The subject is the last field and may itself contain pipes.
func parseCommitHeader(line string) (historyCommit, bool) {
	if !strings.HasPrefix(line, "--") || len(line) < 5 { // --x|y|z minimum
		return historyCommit{}, false
	}
	parts := strings.SplitN(line[2:], "|", 5) // hash|epoch|author|email|subject
	if len(parts) < 4 {
		return historyCommit{}, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return historyCommit{}, false
	}
	commit := historyCommit{
		Hash:      parts[0],
		Timestamp: ts,
		Author:    parts[2],
		Email:     parts[3],
	}
	if len(parts) == 5 {
		commit.Subject = parts[4]
	}
	return commit, true
}

// parseNameStatusLine maps one `<status>\t<path>` line to a change event.
// Renames and copies carry two tab-separated paths; the destination is the
// path the event is recorded against. Unmerged and broken-pair statuses are
// skipped because they carry no usable file state.
func parseNameStatusLine(line string) (fileChange, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return fileChange{}, false
	}

	status := parts[0]
	switch status[0] {
	case 'A':
		return fileChange{Op: schema.OpAdded, Path: parts[1]}, true
	case 'M', 'T':
		return fileChange{Op: schema.OpModified, Path: parts[1]}, true
	case 'D':
		return fileChange{Op: schema.OpDeleted, Path: parts[1]}, true
	case 'R':
		if len(parts) < 3 {
			return fileChange{}, false
		}
		return fileChange{Op: schema.OpRenamed, Path: parts[2], From: parts[1]}, true
	case 'C':
		if len(parts) < 3 {
			return fileChange{}, false
		}
		return fileChange{Op: schema.OpAdded, Path: parts[2]}, true
	default:
		return fileChange{}, false
	}
}

// ancestorDirs lists every directory prefix of a file path from shallowest to
// deepest, excluding the repository root. "src/util/a.go" yields "src" and
// "src/util".
func ancestorDirs(path string) []string {
	var dirs []string
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			dirs = append(dirs, path[:i])
		}
	}
	return dirs
}
