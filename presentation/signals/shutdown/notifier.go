package shutdown

import (
	"os"
	"os/signal"
)

// Notifier subscribes channels to process signals through os/signal.
type Notifier struct {
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *Notifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}
