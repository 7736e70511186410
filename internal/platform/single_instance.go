package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrAlreadyRunning reports that another timer owns the same state directory.
	ErrAlreadyRunning = errors.New("instance already running")
	// ErrPortTaken reports that the lock port belongs to some other program.
	ErrPortTaken = errors.New("lock port in use by another program")
)

const (
	lockBanner    = "pomodoro-lock"
	holderTimeout = 500 * time.Millisecond
)

// InstanceLock keeps one timer per state directory. It listens on a loopback
// port derived from the directory and answers every connection with the
// owner's pid, so a second process can tell who holds it.
type InstanceLock struct {
	listener net.Listener
	key      string
	served   chan struct{}
}

// LockStateDir takes the lock for key, normally the state directory.
func LockStateDir(key string) (*InstanceLock, error) {
	address := lockAddress(key)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, identifyHolder(address, key)
	}

	lock := &InstanceLock{
		listener: listener,
		key:      key,
		served:   make(chan struct{}),
	}
	go lock.serve()
	return lock, nil
}

// Release frees the lock and waits for the answering goroutine to exit.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	<-lock.served
	return err
}

// Address returns the loopback address backing the lock.
func (lock *InstanceLock) Address() string {
	if lock == nil || lock.listener == nil {
		return ""
	}
	return lock.listener.Addr().String()
}

func (lock *InstanceLock) serve() {
	defer close(lock.served)
	for {
		conn, err := lock.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(holderTimeout))
		_, _ = fmt.Fprintf(conn, "%s %d %s\n", lockBanner, os.Getpid(), lock.key)
		_ = conn.Close()
	}
}

// identifyHolder asks whoever owns address to introduce itself.
func identifyHolder(address, key string) error {
	conn, err := net.DialTimeout("tcp", address, holderTimeout)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPortTaken, address)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(holderTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPortTaken, address)
	}
	fields := strings.SplitN(strings.TrimSuffix(line, "\n"), " ", 3)
	if len(fields) != 3 || fields[0] != lockBanner || fields[2] != key {
		return fmt.Errorf("%w: %s", ErrPortTaken, address)
	}
	pid, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPortTaken, address)
	}
	return fmt.Errorf("%w (pid %d): %s", ErrAlreadyRunning, pid, key)
}

func lockAddress(key string) string {
	const (
		firstPort = 20000
		portCount = 20000
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(firstPort+int(hash.Sum32()%portCount)))
}
