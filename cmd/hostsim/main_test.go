package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/govm-net/guestsdk/tai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVectorsCommand(t *testing.T) {
	out, err := execute(t, "vectors")
	require.NoError(t, err)
	assert.Contains(t, out, "92c3c41082a361676521a46e616d65a4436f6c65")
	assert.Contains(t, out, "92c2c4086261642061726773")
	assert.Contains(t, out, "926492a743726561746f72a446756c6c")
	assert.Contains(t, out, "93d92e516d54654e")
}

func TestTransferCommand(t *testing.T) {
	out, err := execute(t, "transfer", "--from", "alice", "--to", "bob", "--units", "30", "--fund", "100")
	require.NoError(t, err)
	assert.Regexp(t, `alice\s+70\s+unlocked`, out)
	assert.Regexp(t, `bob\s+130\s+unlocked`, out)
}

func TestTransferCommandInsufficientFunds(t *testing.T) {
	out, err := execute(t, "transfer", "--units", "101", "--fund", "100")
	require.Error(t, err)
	assert.Contains(t, out, "failed: error during transfer")
	assert.Regexp(t, `alice\s+100`, out)
}

func TestLockCommand(t *testing.T) {
	out, err := execute(t, "lock", "--account", "bob", "--kind", "deposit")
	require.NoError(t, err)
	assert.Contains(t, out, "transfer alice -> bob (1)")
	assert.Contains(t, out, "failed: destination account locked")
	assert.Regexp(t, `transfer bob -> alice \(1\)\s+ok`, out)
	assert.Regexp(t, `bob\s+99\s+\(Owner, Deposit\)`, out)
	// The failed deposit is not rolled back in partial mode.
	assert.Regexp(t, `alice\s+100\s+unlocked`, out)
}

func TestLockCommandAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("atomic_transfer: true\n"), 0o644))
	out, err := execute(t, "--config", path, "lock", "--account", "bob", "--kind", "deposit")
	require.NoError(t, err)
	assert.Regexp(t, `alice\s+101\s+unlocked`, out)
}

func TestLockCommandBadKind(t *testing.T) {
	_, err := execute(t, "lock", "--kind", "sideways")
	assert.Error(t, err)
}

func TestParseLockKind(t *testing.T) {
	for in, want := range map[string]tai.LockType{
		"none":      tai.LockNone,
		"DEPOSIT":   tai.LockDeposit,
		" withdraw": tai.LockWithdraw,
		"Full":      tai.LockFull,
	} {
		got, err := parseLockKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: kv\nlog:\n  level: warn\n"), 0o644))
	out, err := execute(t, "--config", path, "transfer", "--units", "5")
	require.NoError(t, err)
	assert.Regexp(t, `bob\s+105`, out)

	require.NoError(t, os.WriteFile(path, []byte("memory_size: -1\n"), 0o644))
	_, err = execute(t, "--config", path, "transfer")
	assert.Error(t, err)
}

func TestRunCommandMissingModule(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.wasm"))
	assert.Error(t, err)
}
