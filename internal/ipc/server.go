package ipc

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// Serve claims ServiceName on conn and exports ctrl until ctx is done.
func Serve(ctx context.Context, conn *dbus.Conn, ctrl Controller) error {
	reply, err := conn.RequestName(ServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("failed to request name: %s already owned", ServiceName)
	}
	defer conn.ReleaseName(ServiceName)

	svc := &Service{Engine: ctrl}
	if err := conn.Export(svc, dbus.ObjectPath(ObjectPath), InterfaceName); err != nil {
		return fmt.Errorf("failed to export interface: %w", err)
	}

	node := &introspect.Node{
		Name: ObjectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{Name: InterfaceName, Methods: introspect.Methods(svc)},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), dbus.ObjectPath(ObjectPath), "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection: %w", err)
	}

	<-ctx.Done()
	return nil
}

// Call invokes method on a running Kensho instance and stores the reply in
// out.
func Call(conn *dbus.Conn, method string, out []interface{}, args ...interface{}) error {
	obj := conn.Object(ServiceName, dbus.ObjectPath(ObjectPath))
	call := obj.Call(InterfaceName+"."+method, 0, args...)
	if call.Err != nil {
		return fmt.Errorf("%s: %w", method, call.Err)
	}
	if len(out) == 0 {
		return nil
	}
	if err := call.Store(out...); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}
