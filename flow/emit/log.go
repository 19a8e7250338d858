package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter implements Emitter by writing structured log output to a writer.
//
// Supports two output modes:
//   - Text mode (default): human-readable format with key=value pairs
//   - JSON mode: machine-readable JSON format, one event per line
//
// Example text output:
//
//	[enter] flowID=signup seq=1 step=account from= to=account
//
// Example JSON output:
//
//	{"flowID":"signup","seq":1,"step":"account","from":"","to":"account","msg":"enter","meta":null}
//
// Usage:
//
//	// Text output to stdout
//	emitter := emit.NewLogEmitter(os.Stdout, false)
//
//	// JSON output to file
//	f, _ := os.Create("events.jsonl")
//	defer f.Close()
//	emitter := emit.NewLogEmitter(f, true)
type LogEmitter struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a new LogEmitter.
//
// Parameters:
//   - writer: where to write the log output (nil defaults to os.Stdout)
//   - jsonMode: if true, emit JSON lines; if false, emit text format
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{
		writer:   writer,
		jsonMode: jsonMode,
	}
}

// Emit writes an event to the configured writer.
func (l *LogEmitter) Emit(event Event) {
	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

// emitJSON writes the event as a single JSON line (JSONL format).
func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		FlowID string                 `json:"flowID"`
		Seq    int                    `json:"seq"`
		Step   string                 `json:"step"`
		From   string                 `json:"from"`
		To     string                 `json:"to"`
		Msg    string                 `json:"msg"`
		Meta   map[string]interface{} `json:"meta"`
	}{
		FlowID: event.FlowID,
		Seq:    event.Seq,
		Step:   event.Step,
		From:   event.From,
		To:     event.To,
		Msg:    event.Msg,
		Meta:   event.Meta,
	})
	if err != nil {
		// Fallback to error message if marshal fails
		fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}

	fmt.Fprintf(l.writer, "%s\n", data)
}

// emitText writes the event as human-readable text.
func (l *LogEmitter) emitText(event Event) {
	fmt.Fprintf(l.writer, "[%s] flowID=%s seq=%d step=%s from=%s to=%s",
		event.Msg, event.FlowID, event.Seq, event.Step, event.From, event.To)

	if len(event.Meta) > 0 {
		metaJSON, err := json.Marshal(event.Meta)
		if err == nil {
			fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}

	fmt.Fprint(l.writer, "\n")
}
