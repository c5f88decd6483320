// Package bus locates and dials the desktop session bus.
package bus

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/godbus/dbus/v5"
)

const addressEnv = "DBUS_SESSION_BUS_ADDRESS"

// Address returns the session bus address. When the variable is missing from
// our own environment (launched from a scrubbed shell or a timer unit) it is
// taken from the parent process, then from the conventional per-user socket.
func Address() (string, error) {
	if addr := os.Getenv(addressEnv); addr != "" {
		return addr, nil
	}
	if addr, err := procEnv(os.Getppid(), addressEnv); err == nil && addr != "" {
		return addr, nil
	}
	socket := filepath.Join("/run/user", strconv.Itoa(os.Getuid()), "bus")
	if _, err := os.Stat(socket); err == nil {
		return "unix:path=" + socket, nil
	}
	return "", fmt.Errorf("no session bus: %s is unset", addressEnv)
}

// Connect opens a private connection to the session bus.
func Connect() (*dbus.Conn, error) {
	addr, err := Address()
	if err != nil {
		return nil, err
	}

	conn, err := dbus.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send hello: %w", err)
	}
	return conn, nil
}

// procEnv reads one variable from /proc/<pid>/environ.
func procEnv(pid int, key string) (string, error) {
	path := fmt.Sprintf("/proc/%d/environ", pid)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	prefix := []byte(key + "=")
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Split(scanNull)
	for scanner.Scan() {
		if entry := scanner.Bytes(); bytes.HasPrefix(entry, prefix) {
			return string(entry[len(prefix):]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error scanning environ: %w", err)
	}
	return "", fmt.Errorf("environment variable %s not found", key)
}

// scanNull is a bufio.SplitFunc for NUL separated records.
func scanNull(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
