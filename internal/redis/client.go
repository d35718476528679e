// Package redis wraps the go-redis client behind an interface so the craft
// stores can be backed by a single node, a cluster or an in-memory server.
package redis

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iniside/velesarc-craft/internal/errors"
)

// MemoryAddr selects the embedded in-memory server instead of a network
// endpoint
const MemoryAddr = "memory"

// Options tunes the client connection pool
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
	ReadOnly        bool // cluster mode routing
}

func (o *Options) tlsConfig() *tls.Config {
	if !o.UseTLS {
		return nil
	}
	return &tls.Config{
		InsecureSkipVerify: true, // #nosec G402 self-signed certs
	}
}

// NewClient creates a client for a single instance
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:            endpoint,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// NewClusterClient creates a client for cluster mode
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.InvalidArgument("redis: at least one endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:        endpoints,
		MinIdleConns: opts.MinIdleConns,
		PoolSize:     opts.PoolSize,
		MaxRetries:   opts.MaxRetries,
		ReadOnly:     opts.ReadOnly,
		TLSConfig:    opts.tlsConfig(),
	}), nil
}

// NewInMemory starts an embedded server and returns a client for it. The
// returned func stops the server.
func NewInMemory() (Client, func(), error) {
	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, errors.Wrap(err, "redis: failed to start in-memory server")
	}
	client, err := NewClient(mr.Addr(), nil)
	if err != nil {
		mr.Close()
		return nil, nil, err
	}
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

// Open picks the client for addr: MemoryAddr for the embedded server, a
// comma separated list for a cluster, otherwise a single node.
func Open(addr string, opts *Options) (Client, func(), error) {
	addr = strings.TrimSpace(addr)
	switch {
	case addr == MemoryAddr:
		return NewInMemory()
	case strings.Contains(addr, ","):
		parts := strings.Split(addr, ",")
		endpoints := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				endpoints = append(endpoints, p)
			}
		}
		client, err := NewClusterClient(endpoints, opts)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		client, err := NewClient(addr, opts)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}
}
