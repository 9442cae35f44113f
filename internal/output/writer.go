package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/plurcast/plurcast/internal/errors"
)

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, Envelope{OK: true, SchemaVersion: SchemaVersion, Data: data})
}

func (w Writer) WriteError(format Format, pe *errors.PlurError) error {
	errObj := &ErrorObject{Code: pe.Code, Message: pe.Message, Details: pe.Details}
	return w.write(format, Envelope{OK: false, SchemaVersion: SchemaVersion, Error: errObj})
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ok\t%v\n", env.OK)
	_, _ = fmt.Fprintf(tw, "schema_version\t%d\n", env.SchemaVersion)
	if !env.OK {
		if env.Error != nil {
			_, _ = fmt.Fprintf(tw, "error.code\t%s\n", env.Error.Code)
			_, _ = fmt.Fprintf(tw, "error.message\t%s\n", env.Error.Message)
		}
		return tw.Flush()
	}
	writeTableData(tw, "data", env.Data)
	return tw.Flush()
}

// writeTableData 把 data 展平为 key\tvalue 行；map 按 key 排序保证稳定输出。
func writeTableData(tw *tabwriter.Writer, prefix string, data any) {
	switch v := data.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeTableData(tw, prefix+"."+k, v[k])
		}
	case []any:
		for i, item := range v {
			writeTableData(tw, fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	default:
		// 其余类型（含结构体）走 JSON 单行
		b, err := json.Marshal(v)
		if err != nil {
			_, _ = fmt.Fprintf(tw, "%s\t%v\n", prefix, v)
			return
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", prefix, strings.ReplaceAll(string(b), "\n", " "))
	}
}

func writeCSV(out io.Writer, env Envelope) error {
	// CSV 仅作为人类可读/流式占位；结构化场景建议用 json/yaml。
	cw := csv.NewWriter(out)
	defer cw.Flush()
	_ = cw.Write([]string{"ok", fmt.Sprintf("%v", env.OK)})
	_ = cw.Write([]string{"schema_version", fmt.Sprintf("%d", env.SchemaVersion)})
	if !env.OK && env.Error != nil {
		_ = cw.Write([]string{"error.code", string(env.Error.Code)})
		_ = cw.Write([]string{"error.message", env.Error.Message})
	}
	return cw.Error()
}
