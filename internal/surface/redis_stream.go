package surface

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"ecofly/radar/internal/geo"
	"ecofly/radar/internal/render"
)

const (
	DefaultStreamKey    = "ecofly:render"
	DefaultStreamMaxLen = 10000
)

// OpKind names a mirrored surface operation.
type OpKind string

const (
	OpCreateMarker         OpKind = "create_marker"
	OpUpdateMarkerPosition OpKind = "update_marker_position"
	OpUpdateMarkerIcon     OpKind = "update_marker_icon"
	OpRemoveMarker         OpKind = "remove_marker"
	OpCreateTrail          OpKind = "create_trail"
	OpUpdateTrail          OpKind = "update_trail"
	OpRemoveTrail          OpKind = "remove_trail"
	OpCreateLine           OpKind = "create_line"
	OpUpdateLine           OpKind = "update_line"
	OpRemoveLine           OpKind = "remove_line"
)

// Op is one successful surface operation as replayed by a remote map client.
type Op struct {
	Seq      uint64        `msgpack:"seq"`
	Kind     OpKind        `msgpack:"kind"`
	Handle   render.Handle `msgpack:"handle"`
	Position *geo.LatLng   `msgpack:"position,omitempty"`
	Icon     *render.Icon  `msgpack:"icon,omitempty"`
	Points   []geo.LatLng  `msgpack:"points,omitempty"`
	Style    *render.Style `msgpack:"style,omitempty"`
	At       time.Time     `msgpack:"at"`
}

// DecodeOp parses the payload of one stream entry.
func DecodeOp(data []byte) (Op, error) {
	var op Op
	if err := msgpack.Unmarshal(data, &op); err != nil {
		return Op{}, fmt.Errorf("failed to decode render op: %w", err)
	}
	return op, nil
}

// RedisStream decorates a Surface and mirrors every operation the inner
// surface accepted into a Redis stream. Operations are buffered and written
// in one pipeline per Flush.
type RedisStream struct {
	inner  render.Surface
	client *redis.Client
	stream string
	maxLen int64
	log    *zap.SugaredLogger

	mu      sync.Mutex
	seq     uint64
	pending []Op
}

var (
	_ render.Surface = (*RedisStream)(nil)
	_ render.Flusher = (*RedisStream)(nil)
)

// NewRedisStream wraps inner. A nil client keeps the buffering behavior but
// discards batches on Flush.
func NewRedisStream(inner render.Surface, client *redis.Client, stream string, maxLen int64, log *zap.SugaredLogger) *RedisStream {
	if stream == "" {
		stream = DefaultStreamKey
	}
	if maxLen <= 0 {
		maxLen = DefaultStreamMaxLen
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &RedisStream{inner: inner, client: client, stream: stream, maxLen: maxLen, log: log}
}

func (s *RedisStream) record(op Op) {
	s.mu.Lock()
	s.seq++
	op.Seq = s.seq
	op.At = time.Now().UTC()
	s.pending = append(s.pending, op)
	s.mu.Unlock()
}

func (s *RedisStream) CreateMarker(pos geo.LatLng, icon render.Icon) (render.Handle, error) {
	h, err := s.inner.CreateMarker(pos, icon)
	if err != nil {
		return "", err
	}
	s.record(Op{Kind: OpCreateMarker, Handle: h, Position: &pos, Icon: &icon})
	return h, nil
}

func (s *RedisStream) UpdateMarkerPosition(h render.Handle, pos geo.LatLng) error {
	if err := s.inner.UpdateMarkerPosition(h, pos); err != nil {
		return err
	}
	s.record(Op{Kind: OpUpdateMarkerPosition, Handle: h, Position: &pos})
	return nil
}

func (s *RedisStream) UpdateMarkerIcon(h render.Handle, icon render.Icon) error {
	if err := s.inner.UpdateMarkerIcon(h, icon); err != nil {
		return err
	}
	s.record(Op{Kind: OpUpdateMarkerIcon, Handle: h, Icon: &icon})
	return nil
}

func (s *RedisStream) RemoveMarker(h render.Handle) error {
	if err := s.inner.RemoveMarker(h); err != nil {
		return err
	}
	s.record(Op{Kind: OpRemoveMarker, Handle: h})
	return nil
}

func (s *RedisStream) CreateTrail(points []geo.LatLng, style render.Style) (render.Handle, error) {
	h, err := s.inner.CreateTrail(points, style)
	if err != nil {
		return "", err
	}
	s.record(Op{Kind: OpCreateTrail, Handle: h, Points: copyPoints(points), Style: &style})
	return h, nil
}

func (s *RedisStream) UpdateTrail(h render.Handle, points []geo.LatLng) error {
	if err := s.inner.UpdateTrail(h, points); err != nil {
		return err
	}
	s.record(Op{Kind: OpUpdateTrail, Handle: h, Points: copyPoints(points)})
	return nil
}

func (s *RedisStream) RemoveTrail(h render.Handle) error {
	if err := s.inner.RemoveTrail(h); err != nil {
		return err
	}
	s.record(Op{Kind: OpRemoveTrail, Handle: h})
	return nil
}

func (s *RedisStream) CreateLine(points []geo.LatLng, style render.Style) (render.Handle, error) {
	h, err := s.inner.CreateLine(points, style)
	if err != nil {
		return "", err
	}
	s.record(Op{Kind: OpCreateLine, Handle: h, Points: copyPoints(points), Style: &style})
	return h, nil
}

func (s *RedisStream) UpdateLine(h render.Handle, points []geo.LatLng) error {
	if err := s.inner.UpdateLine(h, points); err != nil {
		return err
	}
	s.record(Op{Kind: OpUpdateLine, Handle: h, Points: copyPoints(points)})
	return nil
}

func (s *RedisStream) RemoveLine(h render.Handle) error {
	if err := s.inner.RemoveLine(h); err != nil {
		return err
	}
	s.record(Op{Kind: OpRemoveLine, Handle: h})
	return nil
}

// Pending returns the number of buffered operations.
func (s *RedisStream) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush writes the buffered operations with a single pipelined XADD batch.
// A failed batch is dropped; the next cycle's operations carry on from the
// next sequence number so consumers can detect the gap.
func (s *RedisStream) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 || s.client == nil {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, op := range batch {
		data, err := msgpack.Marshal(&op)
		if err != nil {
			s.log.Warnw("failed to encode render op", "op", op.Kind, "seq", op.Seq, "error", err)
			continue
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			MaxLen: s.maxLen,
			Approx: true,
			Values: map[string]interface{}{
				"op":   string(op.Kind),
				"data": data,
			},
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mirror %d render ops: %w", len(batch), err)
	}
	return nil
}

func copyPoints(points []geo.LatLng) []geo.LatLng {
	return append([]geo.LatLng(nil), points...)
}
