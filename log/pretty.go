package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colorize each kind of field.
type palette struct {
	key      lipgloss.Style
	str      lipgloss.Style
	num      lipgloss.Style
	yes      lipgloss.Style
	no       lipgloss.Style
	duration lipgloss.Style
	time     lipgloss.Style
	trace    lipgloss.Style
	debug    lipgloss.Style
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
}

// makePalette binds all styles to a renderer for w, so the color profile
// follows the capabilities of the actual output.
func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	return palette{
		key:      r.NewStyle().Foreground(lipgloss.Color("8")),
		str:      r.NewStyle().Foreground(lipgloss.Color("6")),
		num:      r.NewStyle().Foreground(lipgloss.Color("3")),
		yes:      r.NewStyle().Foreground(lipgloss.Color("2")),
		no:       r.NewStyle().Foreground(lipgloss.Color("1")),
		duration: r.NewStyle().Foreground(lipgloss.Color("5")),
		time:     r.NewStyle().Foreground(lipgloss.Color("4")),
		trace:    r.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),
		debug:    r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		info:     r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:     r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		err:      r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p palette) level(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return p.err
	case level >= slog.LevelWarn:
		return p.warn
	case level >= slog.LevelInfo:
		return p.info
	case level >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler implements a colorized text or JSON handler.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	json   bool
	style  palette
	attrs  []slog.Attr
	prefix string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	asJSON bool,
) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		json:  asJSON,
		style: makePalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	levelAttr := slog.Any(slog.LevelKey, r.Level)
	fields = h.builtin(fields, levelAttr)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)
	if h.json {
		h.writeJSON(buf, r.Level, fields)
	} else {
		h.writeText(buf, r.Level, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		clone.attrs = flatten(clone.attrs, h.prefix, a)
	}

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

// builtin applies the ReplaceAttr hook to a built-in attribute and appends
// the result unless it was dropped.
func (h *prettyHandler) builtin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, a)
}

// flatten appends a, expanding groups into dotted keys.
func flatten(fields []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return fields
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range group {
			fields = flatten(fields, prefix, ga)
		}

		return fields
	}

	if a.Key == "" {
		return fields
	}

	a.Key = prefix + a.Key

	return append(fields, a)
}

func (h *prettyHandler) writeText(
	buf *bytes.Buffer,
	level slog.Level,
	fields []slog.Attr,
) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')

		if a.Key == slog.LevelKey {
			buf.WriteString(h.style.level(level).Render(a.Value.String()))

			continue
		}

		buf.WriteString(h.textValue(a.Value))
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) textValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " =\"\t\n") {
			s = strconv.Quote(s)
		}

		return h.style.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.duration.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.time.Render(v.Time().Format(time.RFC3339))

	default:
		return h.style.str.Render(v.String())
	}
}

func (h *prettyHandler) writeJSON(
	buf *bytes.Buffer,
	level slog.Level,
	fields []slog.Attr,
) {
	buf.WriteString("{\n")

	for i, a := range fields {
		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")

		if a.Key == slog.LevelKey {
			buf.WriteString(h.style.level(level).Render(
				strconv.Quote(a.Value.String())))
		} else {
			buf.WriteString(h.jsonValue(a.Value))
		}

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

func (h *prettyHandler) jsonValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(strconv.Quote(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		return h.textValue(v)

	case slog.KindDuration:
		return h.style.duration.Render(strconv.Quote(v.Duration().String()))

	case slog.KindTime:
		return h.style.time.Render(
			strconv.Quote(v.Time().Format(time.RFC3339Nano)))
	}

	x := v.Any()
	if err, ok := x.(error); ok {
		return h.style.str.Render(strconv.Quote(err.Error()))
	}

	b, err := json.Marshal(x)
	if err != nil {
		return h.style.str.Render(strconv.Quote(fmt.Sprint(x)))
	}

	return h.style.str.Render(string(b))
}
