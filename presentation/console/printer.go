package console

import (
	"fmt"
	"io"
	"net/netip"
	"sync"
	"udpreceiver/domain/datagram"
)

// Printer writes listener events in the receiver's stdout format:
//
//	Listening on 127.0.0.1:9877...
//	Received data from ('127.0.0.1', 50123):
//	hello
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Listening(addr netip.AddrPort) {
	p.write(fmt.Sprintf("Listening on %s...\n", addr))
}

func (p *Printer) Received(d datagram.Datagram, text string) {
	p.write(fmt.Sprintf("Received data from %s:\n%s\n", SenderTuple(d.Sender), text))
}

// SenderTuple renders an address as ('ip', port).
func SenderTuple(addr netip.AddrPort) string {
	return fmt.Sprintf("('%s', %d)", addr.Addr(), addr.Port())
}

func (p *Printer) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.out, s)
}
