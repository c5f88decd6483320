package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
	notifyMethod         = notificationsService + ".Notify"

	appName = "Kensho"
	appIcon = "appointment-soon"
	summary = "Mindful check-in"
)

// DesktopNotifier shows reminders through org.freedesktop.Notifications.
// A clock's new reminder replaces its previous one on screen.
type DesktopNotifier struct {
	obj     dbus.BusObject
	timeout time.Duration

	mu       sync.Mutex
	replaces map[string]uint32
}

// NewDesktopNotifier uses conn, which must be a session bus connection.
func NewDesktopNotifier(conn *dbus.Conn, timeout time.Duration) *DesktopNotifier {
	return newDesktopNotifier(conn.Object(notificationsService, notificationsPath), timeout)
}

func newDesktopNotifier(obj dbus.BusObject, timeout time.Duration) *DesktopNotifier {
	return &DesktopNotifier{
		obj:      obj,
		timeout:  timeout,
		replaces: map[string]uint32{},
	}
}

func (d *DesktopNotifier) NotifyDue(ctx context.Context, e Event) error {
	d.mu.Lock()
	replaces := d.replaces[e.Key]
	d.mu.Unlock()

	hints := map[string]dbus.Variant{
		"urgency":    dbus.MakeVariant(byte(1)),
		"sound-name": dbus.MakeVariant(SoundName(e.SoundID)),
		"category":   dbus.MakeVariant("presence"),
	}

	call := d.obj.CallWithContext(ctx, notifyMethod, 0,
		appName,
		replaces,
		appIcon,
		summary,
		Message(e),
		[]string{},
		hints,
		int32(d.timeout/time.Millisecond),
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("failed to read notification id: %w", err)
	}
	d.mu.Lock()
	d.replaces[e.Key] = id
	d.mu.Unlock()
	return nil
}
