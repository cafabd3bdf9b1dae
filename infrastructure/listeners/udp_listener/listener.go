package udp_listener

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync/atomic"
	"udpreceiver/application"
	"udpreceiver/domain/datagram"
	"udpreceiver/domain/listener"
	"udpreceiver/infrastructure/settings"

	"github.com/rs/zerolog"
	"golang.org/x/net/ipv4"
)

var ErrAlreadyStarted = errors.New("listener already started")

type listenFunc func(network string, laddr *net.UDPAddr) (application.UdpListenerConn, error)

func listenUDP(network string, laddr *net.UDPAddr) (application.UdpListenerConn, error) {
	return net.ListenUDP(network, laddr)
}

// Listener owns one UDP socket and runs a single receive loop over it.
type Listener struct {
	settings settings.Settings
	handler  application.DatagramHandler
	recorder application.StatsRecorder
	logger   zerolog.Logger
	listen   listenFunc

	started   atomic.Bool
	state     atomic.Int32
	localAddr atomic.Pointer[netip.AddrPort]
	ready     chan struct{}
}

func NewListener(
	settings settings.Settings,
	handler application.DatagramHandler,
	recorder application.StatsRecorder,
	logger zerolog.Logger,
) *Listener {
	return &Listener{
		settings: settings,
		handler:  handler,
		recorder: recorder,
		logger:   logger,
		listen:   listenUDP,
		ready:    make(chan struct{}),
	}
}

func (l *Listener) State() listener.State {
	return listener.State(l.state.Load())
}

// LocalAddr is the bound address; zero until the listener is Listening.
func (l *Listener) LocalAddr() netip.AddrPort {
	if addr := l.localAddr.Load(); addr != nil {
		return *addr
	}
	return netip.AddrPort{}
}

// Ready is closed once the socket is bound.
func (l *Listener) Ready() <-chan struct{} {
	return l.ready
}

// Start binds the socket and serves datagrams until ctx is cancelled, which
// returns nil. A read failure returns a *listener.ReceiveError; a malformed
// payload under the stop policy returns a *datagram.DecodeError.
func (l *Listener) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	conn, bindErr := l.bind()
	if bindErr != nil {
		return bindErr
	}
	defer func() {
		_ = conn.Close()
	}()

	stopClose := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stopClose()

	local := l.boundAddr(conn)
	l.localAddr.Store(&local)
	l.state.Store(int32(listener.Listening))
	close(l.ready)

	l.logger.Debug().Str("addr", local.String()).Str("policy", string(l.settings.DecodeErrorPolicy)).Msg("listener bound")
	l.handler.Listening(local)

	return l.serve(ctx, conn)
}

func (l *Listener) bind() (application.UdpListenerConn, error) {
	address := l.settings.StringAddr()

	addr, resolveErr := l.settings.UdpAddr()
	if resolveErr != nil {
		return nil, listener.NewBindError(address, listener.Unresolvable, resolveErr)
	}

	conn, listenErr := l.listen("udp4", addr)
	if listenErr != nil {
		return nil, listener.NewBindError(address, classifyBindError(listenErr), listenErr)
	}

	if udpConn, ok := conn.(*net.UDPConn); ok {
		if cmErr := ipv4.NewPacketConn(udpConn).SetControlMessage(ipv4.FlagDst, true); cmErr != nil {
			l.logger.Debug().Err(cmErr).Msg("destination address reporting unavailable")
		}
	}

	return conn, nil
}

func (l *Listener) boundAddr(conn application.UdpListenerConn) netip.AddrPort {
	if udpAddr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		addrPort := udpAddr.AddrPort()
		return netip.AddrPortFrom(addrPort.Addr().Unmap(), addrPort.Port())
	}
	return netip.AddrPort{}
}

func (l *Listener) serve(ctx context.Context, conn application.UdpListenerConn) error {
	dataBuf := make([]byte, datagram.MaxPayloadBytes)
	oobBuf := ipv4.NewControlMessage(ipv4.FlagDst)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			n, oobn, flags, sender, readErr := conn.ReadMsgUDPAddrPort(dataBuf, oobBuf)
			if readErr != nil {
				if ctx.Err() != nil {
					return nil
				}
				return listener.NewReceiveError(readErr)
			}

			d := datagram.Datagram{
				Payload:     dataBuf[:n],
				Sender:      netip.AddrPortFrom(sender.Addr().Unmap(), sender.Port()),
				Destination: destination(oobBuf[:oobn]),
				Truncated:   truncated(flags),
			}
			if processErr := l.process(d); processErr != nil {
				return processErr
			}
		}
	}
}

func (l *Listener) process(d datagram.Datagram) error {
	l.recorder.RecordDatagram(len(d.Payload))

	if d.Truncated {
		l.recorder.RecordTruncated()
		l.logger.Warn().
			Str("sender", d.Sender.String()).
			Str("dst", destinationField(d)).
			Int("kept", len(d.Payload)).
			Msg("datagram exceeded receive buffer, excess bytes discarded")
	}

	text, decodeErr := d.Text()
	if decodeErr != nil {
		l.recorder.RecordDecodeError()
		if l.settings.DecodeErrorPolicy == listener.StopOnDecodeError {
			return decodeErr
		}
		l.logger.Error().
			Err(decodeErr).
			Str("sender", d.Sender.String()).
			Str("dst", destinationField(d)).
			Int("length", len(d.Payload)).
			Msg("dropping datagram")
		return nil
	}

	l.handler.Received(d, text)
	return nil
}

// destinationField is empty where the platform does not report the local address.
func destinationField(d datagram.Datagram) string {
	if !d.Destination.IsValid() {
		return ""
	}
	return d.Destination.String()
}

func destination(oob []byte) netip.Addr {
	if len(oob) == 0 {
		return netip.Addr{}
	}
	var cm ipv4.ControlMessage
	if err := cm.Parse(oob); err != nil || cm.Dst == nil {
		return netip.Addr{}
	}
	addr, ok := netip.AddrFromSlice(cm.Dst.To4())
	if !ok {
		return netip.Addr{}
	}
	return addr
}
