// Package loginctl follows logind so the clocks can be held while nobody is
// at the desk.
package loginctl

import (
	"context"
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
)

const (
	ReasonLocked = "locked"
	ReasonSleep  = "sleep"

	login1Service   = "org.freedesktop.login1"
	login1Path      = "/org/freedesktop/login1"
	managerIface    = "org.freedesktop.login1.Manager"
	sessionIface    = "org.freedesktop.login1.Session"
	propertiesIface = "org.freedesktop.DBus.Properties"
)

// Holder is told when a reason to freeze the clocks starts or ends.
// engine.Engine implements it.
type Holder interface {
	Hold(reason string, held bool)
}

// Watch holds h while this process's login session is locked or the system
// is asleep. It returns when ctx is done.
func Watch(ctx context.Context, h Holder) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	session, err := currentSession(conn)
	if err != nil {
		return err
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchInterface(managerIface),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		return fmt.Errorf("add match failed: %w", err)
	}
	// watch for property changes (session locked)
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(session),
		dbus.WithMatchInterface(propertiesIface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		return fmt.Errorf("add match for PropertiesChanged failed: %w", err)
	}

	if locked, err := lockedHint(conn, session); err == nil && locked {
		h.Hold(ReasonLocked, true)
	}

	c := make(chan *dbus.Signal, 10)
	conn.Signal(c)
	defer conn.RemoveSignal(c)

	log.Println("Watching logind session", session)
	for {
		select {
		case sig := <-c:
			if reason, held, ok := interpret(sig, session); ok {
				h.Hold(reason, held)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// interpret maps a logind signal to a hold change.
func interpret(sig *dbus.Signal, session dbus.ObjectPath) (reason string, held bool, ok bool) {
	if sig == nil {
		return "", false, false
	}
	switch sig.Name {
	case managerIface + ".PrepareForSleep":
		if len(sig.Body) == 0 {
			return "", false, false
		}
		sleeping, valid := sig.Body[0].(bool)
		return ReasonSleep, sleeping, valid

	case propertiesIface + ".PropertiesChanged":
		if sig.Path != session || len(sig.Body) < 2 {
			return "", false, false
		}
		iface, valid := sig.Body[0].(string)
		if !valid || iface != sessionIface {
			return "", false, false
		}
		changed, valid := sig.Body[1].(map[string]dbus.Variant)
		if !valid {
			return "", false, false
		}
		val, exists := changed["LockedHint"]
		if !exists {
			return "", false, false
		}
		locked, valid := val.Value().(bool)
		return ReasonLocked, locked, valid
	}
	return "", false, false
}

// currentSession resolves the caller's session object path.
func currentSession(conn *dbus.Conn) (dbus.ObjectPath, error) {
	var path dbus.ObjectPath
	err := conn.Object(login1Service, login1Path).
		Call(managerIface+".GetSession", 0, "auto").Store(&path)
	if err != nil {
		return "", fmt.Errorf("failed to find login session: %w", err)
	}
	return path, nil
}

func lockedHint(conn *dbus.Conn, session dbus.ObjectPath) (bool, error) {
	var v dbus.Variant
	err := conn.Object(login1Service, session).
		Call(propertiesIface+".Get", 0, sessionIface, "LockedHint").Store(&v)
	if err != nil {
		return false, err
	}
	locked, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type for LockedHint")
	}
	return locked, nil
}
