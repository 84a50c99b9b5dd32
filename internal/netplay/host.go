package netplay

import (
	"context"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Host listens on cfg's address and waits for one peer. The host plays
// Black and moves first.
func Host(ctx context.Context, cfg config.NetConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", cfg.Address())
	}
	defer ln.Close()

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("local_ip", LocalIP()).
		Msg("waiting for a player to join")
	return Accept(ctx, ln)
}

// Accept waits on ln for one peer and returns the host's session. It does
// not close ln.
func Accept(ctx context.Context, ln net.Listener) (*Session, error) {
	type accepted struct {
		conn net.Conn
		err  error
	}
	ch := make(chan accepted, 1)
	go func() {
		conn, err := ln.Accept()
		ch <- accepted{conn, err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			return nil, errors.Wrap(a.err, "accept")
		}
		log.Info().Str("peer", a.conn.RemoteAddr().String()).Msg("player joined")
		return NewSession(a.conn, checkers.Black), nil
	case <-ctx.Done():
		// Unblock Accept; the connection, if one raced in, is dropped.
		ln.Close()
		if a := <-ch; a.err == nil {
			a.conn.Close()
		} else if !closedConn(a.err) {
			log.Debug().Err(a.err).Msg("accept after cancel")
		}
		return nil, ctx.Err()
	}
}

// Join connects to a host within cfg.DialTimeout. The joiner plays Red and
// draws the board inverted.
func Join(ctx context.Context, cfg config.NetConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", cfg.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", cfg.Address())
	}
	log.Info().Str("host", conn.RemoteAddr().String()).Msg("joined game")
	return NewSession(conn, checkers.Red), nil
}

// LocalIP returns the first non-loopback IPv4 address of this machine, for
// telling the other player where to connect. It falls back to 127.0.0.1.
func LocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}
