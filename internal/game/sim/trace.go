package sim

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
)

// TraceEntry is one applied operation of a simulated run.
type TraceEntry struct {
	At      time.Duration  `json:"at"`
	Action  engine.Action  `json:"action"`
	Price   int            `json:"price,omitempty"`
	Events  []engine.Event `json:"events,omitempty"`
	Wood    int            `json:"wood"`
	Beer    int            `json:"beer"`
	AxeLvl  int            `json:"axeLevel"`
	Workers int            `json:"workers"`
}

// TraceWriter writes TraceEntry values as zstd-compressed JSON lines.
type TraceWriter struct {
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter wraps w. The caller still owns and closes w.
func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &TraceWriter{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Write appends one entry.
func (t *TraceWriter) Write(e TraceEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes buffered entries and ends the zstd frame.
func (t *TraceWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		_ = t.enc.Close()
		return err
	}
	return t.enc.Close()
}

// ReadTrace decodes every entry written by a TraceWriter.
func ReadTrace(r io.Reader) ([]TraceEntry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []TraceEntry
	jd := json.NewDecoder(dec)
	for {
		var e TraceEntry
		if err := jd.Decode(&e); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func traceEntry(at time.Duration, a engine.Action, res engine.Result) TraceEntry {
	workers := 0
	for _, n := range res.Snapshot.Workers {
		workers += n
	}
	return TraceEntry{
		At:      at,
		Action:  a,
		Price:   res.Price,
		Events:  res.Events,
		Wood:    res.Snapshot.Resources.Wood,
		Beer:    res.Snapshot.Resources.Beer,
		AxeLvl:  res.Snapshot.AxeLevel,
		Workers: workers,
	}
}
