// Package notify delivers "clock is due" reminders.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/SoarinFerret/kensho/internal/clock"
)

// Event describes a clock that just reached its interval.
type Event struct {
	Key        string
	Identifier string
	Label      string
	SoundID    string
}

// Notifier receives due events. Implementations must not touch clock state.
type Notifier interface {
	NotifyDue(ctx context.Context, e Event) error
}

// Message is the notification body for e.
func Message(e Event) string {
	return fmt.Sprintf("%s is ready for a check-in.", e.Label)
}

// SoundName maps a reminder id to a freedesktop sound theme name.
func SoundName(soundID string) string {
	switch clock.NormalizeSound(soundID) {
	case clock.SoundMetronome:
		return "bell"
	default:
		return "message-new-instant"
	}
}

// LogNotifier writes due events to the standard logger.
type LogNotifier struct{}

func (LogNotifier) NotifyDue(_ context.Context, e Event) error {
	log.Printf("%s (%s): %s [sound=%s]", e.Identifier, e.Key, Message(e), clock.NormalizeSound(e.SoundID))
	return nil
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyDue(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyDue(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
