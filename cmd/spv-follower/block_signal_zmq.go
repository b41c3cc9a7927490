//go:build zmq

package main

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"syscall"
	"time"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

const (
	hashBlockTopic = "hashblock"
	// recvTimeout bounds each receive so cancellation is noticed without traffic.
	recvTimeout = time.Second
)

// startBlockSignal subscribes to bitcoind's hashblock feed. Each announced
// block wakes the follower; notifications coalesce while it is busy.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, fmt.Errorf("create zmq socket: %w", err)
	}
	if err := configureSubscriber(sub, addr); err != nil {
		_ = sub.Close()
		return nil, err
	}

	logger = logger.Named("zmq").With(zap.String("addr", addr))
	notify := make(chan struct{}, 1)

	go func() {
		defer func() {
			_ = sub.Close()
		}()
		for ctx.Err() == nil {
			parts, err := sub.RecvMessageBytes(0)
			if err != nil {
				if zmq4.AsErrno(err) == zmq4.Errno(syscall.EAGAIN) {
					continue
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			// topic, block hash, little-endian sequence
			if len(parts) != 3 || len(parts[1]) != 32 || len(parts[2]) != 4 {
				logger.Warn("skip malformed hashblock message", zap.Int("parts", len(parts)))
				continue
			}
			logger.Debug("block announced",
				zap.String("hash", hex.EncodeToString(parts[1])),
				zap.Uint32("sequence", binary.LittleEndian.Uint32(parts[2])),
			)

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, nil
}

func configureSubscriber(sub *zmq4.Socket, addr string) error {
	if err := sub.SetRcvtimeo(recvTimeout); err != nil {
		return fmt.Errorf("set zmq receive timeout: %w", err)
	}
	if err := sub.SetSubscribe(hashBlockTopic); err != nil {
		return fmt.Errorf("subscribe %s: %w", hashBlockTopic, err)
	}
	if err := sub.Connect(addr); err != nil {
		return fmt.Errorf("connect zmq: %w", err)
	}
	return nil
}
