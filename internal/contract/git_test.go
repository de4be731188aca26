package contract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// runGit runs a git command against dir with a fixed test identity.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	fullArgs := append([]string{
		"-C", dir,
		"-c", "user.name=Test User",
		"-c", "user.email=test@example.com",
	}, args...)
	out, err := exec.Command("git", fullArgs...).CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(out))
}

// initTestRepo creates a throwaway repository with two commits so the
// client methods have real history to read.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.txt"), []byte("one\n"), 0o644))
	runGit(t, dir, "add", "first.txt")
	runGit(t, dir, "commit", "-m", "add first file")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "second.txt"), []byte("two\n"), 0o644))
	runGit(t, dir, "add", "nested/second.txt")
	runGit(t, dir, "commit", "-m", "add second file")

	return dir
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	// 1. Setup the Mock
	mockClient := new(MockGitClient)

	// Define the expected input arguments for the mock's 'Run' method.
	const expectedRepoPath = "/path/to/repo"
	expectedArgs := []string{"log", "-1", "--oneline"}

	// Define the expected output values.
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	// The `Run` method implementation in MockGitClient converts the inputs
	// (ctx, repoPath string, args ...string) into a single []any array
	// for `m.Called()`. We must match this structure in `.On()`.
	var calledArgs []any
	ctx := context.Background()
	calledArgs = append(calledArgs, ctx, expectedRepoPath)
	for _, arg := range expectedArgs {
		calledArgs = append(calledArgs, arg)
	}

	// 2. Program the Mock Behavior
	mockClient.
		On("Run", calledArgs...).              // Expect a call with these arguments.
		Return(expectedOutput, expectedError). // Program the values to return.
		Once()                                 // Expect the call to happen exactly once.

	// 3. Execute the Code Under Test (i.e., call the mock method)
	actualOutput, actualError := mockClient.Run(ctx, expectedRepoPath, expectedArgs...)

	// 4. Assertions
	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client, "NewLocalGitClient should return a LocalGitClient instance")
}

// TestLocalGitClient_Run tests the Run method with various scenarios.
func TestLocalGitClient_Run(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initTestRepo(t)

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		expectError bool
	}{
		{
			name:     "status in valid repo",
			repoPath: repoRoot,
			args:     []string{"status"},
		},
		{
			name:        "invalid repo path",
			repoPath:    "/nonexistent/path",
			args:        []string{"status"},
			expectError: true,
		},
		{
			name:        "invalid git command",
			repoPath:    repoRoot,
			args:        []string{"invalid-command"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.expectError {
				assert.Error(t, err, "Run should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "Run should not return an error for %s", tt.name)
			}
		})
	}
}

// TestLocalGitClient_GetRepoRoot tests the GetRepoRoot method.
func TestLocalGitClient_GetRepoRoot(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoDir := initTestRepo(t)

	// Resolving from the top of the repository
	root, err := client.GetRepoRoot(ctx, repoDir)
	require.NoError(t, err, "GetRepoRoot should not return an error for a repository")
	assert.DirExists(t, filepath.Join(root, ".git"), "resolved root should contain .git")

	// Resolving from a nested directory lands on the same root
	nested, err := client.GetRepoRoot(ctx, filepath.Join(repoDir, "nested"))
	require.NoError(t, err, "GetRepoRoot should not return an error for a subdirectory")
	assert.Equal(t, root, nested, "GetRepoRoot should return the same root for nested paths")

	// Test with invalid path
	_, err = client.GetRepoRoot(ctx, "/nonexistent/path")
	assert.Error(t, err, "GetRepoRoot should return an error for non-git directory")
}

// TestLocalGitClient_GetRepoHash tests the GetRepoHash method.
func TestLocalGitClient_GetRepoHash(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoDir := initTestRepo(t)

	hash, err := client.GetRepoHash(ctx, repoDir)
	require.NoError(t, err, "GetRepoHash should not return an error")
	assert.Len(t, hash, 40, "GetRepoHash should return a full commit hash")

	_, err = client.GetRepoHash(ctx, t.TempDir())
	assert.Error(t, err, "GetRepoHash should return an error outside a repository")
}

// TestLocalGitClient_GetHistoryLog tests the GetHistoryLog method.
func TestLocalGitClient_GetHistoryLog(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoDir := initTestRepo(t)

	out, err := client.GetHistoryLog(ctx, repoDir)
	require.NoError(t, err, "GetHistoryLog should not return an error")

	log := string(out)
	assert.Contains(t, log, "add first file")
	assert.Contains(t, log, "add second file")
	assert.Contains(t, log, "first.txt")
	assert.Contains(t, log, "nested/second.txt")
	assert.Contains(t, log, "test@example.com")

	// Oldest commit first so replaying the log reproduces creation order
	firstIdx := strings.Index(log, "add first file")
	secondIdx := strings.Index(log, "add second file")
	assert.Less(t, firstIdx, secondIdx, "history should run oldest commit first")

	// Header lines carry the '--' marker
	assert.True(t, strings.HasPrefix(log, "--"), "history should start with a commit header")
}

// TestLocalGitClient_ListFilesAtRef tests the ListFilesAtRef method.
func TestLocalGitClient_ListFilesAtRef(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoDir := initTestRepo(t)

	// Test with HEAD
	files, err := client.ListFilesAtRef(ctx, repoDir, "HEAD")
	require.NoError(t, err, "ListFilesAtRef should not return an error for HEAD")
	assert.ElementsMatch(t, []string{"first.txt", "nested/second.txt"}, files)

	// Test with invalid ref
	_, err = client.ListFilesAtRef(ctx, repoDir, "invalid-ref")
	assert.Error(t, err, "ListFilesAtRef should return an error for invalid ref")
}
