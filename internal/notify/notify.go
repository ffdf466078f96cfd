// Package notify shows desktop notifications without blocking the game loop.
package notify

import (
	"fmt"
	"log"

	"github.com/ncruces/zenity"
)

type sendFunc func(text string, options ...zenity.Option) error

type Notifier struct {
	title string
	send  sendFunc
	errs  chan error
}

func NewNotifier(title string) *Notifier {
	return &Notifier{
		title: title,
		send:  zenity.Notify,
		errs:  make(chan error, 1),
	}
}

// Celebrate sends text as a notification in the background.
func (n *Notifier) Celebrate(text string) {
	go func() {
		err := n.send(text, zenity.Title(n.title), zenity.InfoIcon)
		if err == nil {
			return
		}
		err = fmt.Errorf("notification failed: %w", err)
		log.Printf("Warning: %v", err)
		select {
		case n.errs <- err:
		default:
		}
	}()
}

// Err returns a pending delivery error, if any, without blocking.
func (n *Notifier) Err() error {
	select {
	case err := <-n.errs:
		return err
	default:
		return nil
	}
}
