package platform

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLockStateDirIsExclusivePerKey(t *testing.T) {
	defer goleak.VerifyNone(t)
	key := t.TempDir()

	lock, err := LockStateDir(key)
	require.NoError(t, err)
	assert.NotEmpty(t, lock.Address())

	_, err = LockStateDir(key)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Contains(t, err.Error(), "pid "+strconv.Itoa(os.Getpid()))

	require.NoError(t, lock.Release())

	again, err := LockStateDir(key)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLockStateDirRecognisesForeignListener(t *testing.T) {
	key := filepath.Join(t.TempDir(), "state with spaces")
	foreign, err := net.Listen("tcp", lockAddress(key))
	require.NoError(t, err)
	defer foreign.Close()

	_, err = LockStateDir(key)
	require.ErrorIs(t, err, ErrPortTaken)
	assert.NotErrorIs(t, err, ErrAlreadyRunning)
}

func TestNilLockIsSafe(t *testing.T) {
	var lock *InstanceLock
	assert.NoError(t, lock.Release())
	assert.Empty(t, lock.Address())
}

func TestLockAddressIsStableAndInRange(t *testing.T) {
	address := lockAddress("/home/user/.config/Pomodoro")
	assert.Equal(t, address, lockAddress("/home/user/.config/Pomodoro"))

	host, portText, err := net.SplitHostPort(address)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host)
	port, err := strconv.Atoi(portText)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestConfigDirEndsWithAppName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := ConfigDir("Pomodoro")
	require.NoError(t, err)
	assert.Equal(t, "Pomodoro", filepath.Base(dir))
}
