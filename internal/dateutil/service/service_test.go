package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	mdwlog "github.com/msto63/mdw-dateutil/foundation/core/log"
	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
	"github.com/msto63/mdw-dateutil/pkg/core/logging"
)

func newTestService(t *testing.T, cfg Config) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.Logger = logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: "dateutil-test",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	}), "dateutil-test")

	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, &buf
}

func TestNewService(t *testing.T) {
	svc, err := NewService(Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if svc.UTCParsing() != datex.UTCStrict {
		t.Errorf("UTCParsing() = %v, want strict", svc.UTCParsing())
	}
	if svc.defaultPattern != datex.DefaultPattern {
		t.Errorf("defaultPattern = %q", svc.defaultPattern)
	}

	if _, err := NewService(Config{UTCParsing: datex.UTCParsing(9)}); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("NewService(bad mode) error = %v, want INVALID_CONFIG", err)
	}
}

func TestOperations(t *testing.T) {
	ops := Operations()
	if len(ops) != 14 {
		t.Fatalf("len(Operations()) = %d, want 14", len(ops))
	}

	commands := make(map[string]bool)
	for i, op := range ops {
		if i > 0 && ops[i-1].Name >= op.Name {
			t.Errorf("Operations() not sorted at %q", op.Name)
		}
		if op.Name == "" || op.Command == "" || op.Description == "" || len(op.Args) == 0 {
			t.Errorf("incomplete operation %+v", op)
		}
		if commands[op.Command] {
			t.Errorf("duplicate command %q", op.Command)
		}
		commands[op.Command] = true
	}

	format, ok := Lookup("format")
	if !ok || format.MinArgs() != 1 || format.MaxArgs() != 2 {
		t.Errorf("Lookup(format) = %+v, %v", format, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) = ok")
	}

	compare, _ := Lookup("compare")
	if !strings.HasPrefix(compare.Description, "-1 when baseDate is before compDate") {
		t.Errorf("compare description = %q", compare.Description)
	}
}

func TestInvoke(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	tests := []struct {
		op   string
		args []string
		want interface{}
	}{
		{"calcAge", []string{"20210304", "20000305"}, 20},
		{"calcAge", []string{"20210305", "20000305"}, 21},
		{"addYears", []string{"20200229", "1"}, "20210228"},
		{"addMonths", []string{"20210131", "1"}, "20210228"},
		{"addMonths", []string{"20210331", "-1"}, "20210228"},
		{"addDays", []string{"20211231", "1"}, "20220101"},
		{"format", []string{"20210304", "YYYYMM"}, "202103"},
		{"format", []string{"2021-03-04"}, "2021-03-04T00:00:00+00:00"},
		{"endOfMonth", []string{"20200201"}, "20200229"},
		{"endOfMonth", []string{"202102"}, "20210228"},
		{"compare", []string{"20211111", "20211112"}, -1},
		{"compare", []string{"20211112", "20211111"}, 1},
		{"compare", []string{"20211111", "20211111"}, 0},
		{"diffDays", []string{"20211111", "20211231"}, 50},
		{"epochSecToUtc", []string{"0"}, "19700101 000000"},
		{"epochMilliSecToUtc", []string{"1500"}, "19700101 000001.500"},
		{"utcToEpochSec", []string{"19700101 000001"}, int64(1)},
		{"utcToEpochMilliSec", []string{"19700101 000001.500"}, int64(1500)},
		{"utcToJst", []string{"20211231 150000"}, "20220101 000000"},
		{"jstToUtc", []string{"20220101 000000"}, "20211231 150000"},
	}

	for _, tt := range tests {
		t.Run(tt.op+"/"+strings.Join(tt.args, ","), func(t *testing.T) {
			res, err := svc.Invoke(ctx, tt.op, tt.args...)
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if res.Operation != tt.op {
				t.Errorf("Operation = %q, want %q", res.Operation, tt.op)
			}
			if res.Value != tt.want {
				t.Errorf("Value = %#v, want %#v", res.Value, tt.want)
			}
		})
	}
}

func TestInvoke_MatchesLibrary(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	direct, _ := datex.AddMonths("20240131", 13)
	res, err := svc.Invoke(context.Background(), "addMonths", "20240131", "13")
	if err != nil || res.Value != direct {
		t.Errorf("Invoke(addMonths) = %v, %v; want %q", res, err, direct)
	}
}

func TestInvoke_Errors(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	tests := []struct {
		name     string
		op       string
		args     []string
		sentinel error
		code     mdwerror.Code
	}{
		{"unknown operation", "addWeeks", []string{"20210101", "1"}, ErrUnknownOperation, mdwerror.CodeNotFound},
		{"too few args", "addDays", []string{"20210101"}, ErrArgumentCount, mdwerror.CodeInvalidInput},
		{"too many args", "endOfMonth", []string{"202101", "x"}, ErrArgumentCount, mdwerror.CodeInvalidInput},
		{"invalid date", "addDays", []string{"20210230", "1"}, datex.ErrInvalidInput, mdwerror.CodeInvalidInput},
		{"non-numeric operand", "addDays", []string{"20210101", "one"}, datex.ErrInvalidInput, mdwerror.CodeInvalidInput},
		{"non-numeric epoch", "epochSecToUtc", []string{"1e3"}, datex.ErrInvalidInput, mdwerror.CodeInvalidInput},
		{"invalid month", "endOfMonth", []string{"202013"}, datex.ErrInvalidInput, mdwerror.CodeInvalidInput},
		{"lenient utc in strict mode", "utcToJst", []string{"1970-01-01 00:00:00"}, datex.ErrInvalidInput, mdwerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Invoke(ctx, tt.op, tt.args...)
			if err == nil {
				t.Fatalf("Invoke() = %+v, want error", res)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match %v", err, tt.sentinel)
			}
			if got := mdwerror.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestInvoke_ErrorClassifiers(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	_, err := svc.Invoke(ctx, "nope")
	if !IsUnknownOperation(err) || IsInvalidInput(err) {
		t.Errorf("unknown operation classified wrong: %v", err)
	}
	_, err = svc.Invoke(ctx, "compare", "20211111")
	if !IsInvalidInput(err) {
		t.Errorf("arity error not invalid input: %v", err)
	}
}

func TestInvoke_Cancelled(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Invoke(ctx, "addDays", "20210101", "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Invoke() error = %v, want context.Canceled", err)
	}
}

func TestInvoke_LenientMode(t *testing.T) {
	svc, _ := newTestService(t, Config{UTCParsing: datex.UTCLenient})

	res, err := svc.Invoke(context.Background(), "utcToJst", "1970-01-01 00:00:00")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Value != "19700101 090000" {
		t.Errorf("Value = %v", res.Value)
	}
}

func TestInvoke_DefaultPattern(t *testing.T) {
	svc, _ := newTestService(t, Config{DefaultPattern: "YYYY/MM/DD"})

	res, err := svc.Invoke(context.Background(), "format", "20210304")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Value != "2021/03/04" {
		t.Errorf("Value = %v, want 2021/03/04", res.Value)
	}

	res, err = svc.Invoke(context.Background(), "format", "20210304", "")
	if err != nil || res.Value != "2021-03-04T00:00:00+00:00" {
		t.Errorf("explicit empty pattern = %v, %v", res, err)
	}
}

func TestInvoke_Logging(t *testing.T) {
	svc, buf := newTestService(t, Config{})
	ctx := context.Background()

	if _, err := svc.Invoke(ctx, "addDays", "20210101", "1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"addDays completed"`) {
		t.Errorf("missing completion log in %s", buf.String())
	}

	buf.Reset()
	_, _ = svc.Invoke(ctx, "addDays", "2021", "1")
	out := buf.String()
	if !strings.Contains(out, `"addDays failed"`) || !strings.Contains(out, `"error_code":"INVALID_INPUT"`) {
		t.Errorf("missing failure log in %s", out)
	}
	if !strings.Contains(out, `"level":"`+mdwlog.LevelInfo.String()+`"`) {
		t.Errorf("invalid input should log at info level: %s", out)
	}
}

func TestInvokeBatch(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	reqs := []Request{
		{ID: "a", Op: "addDays", Args: []string{"20210101", "-1"}},
		{ID: "b", Op: "addDays", Args: []string{"2021011", "1"}},
		{ID: "c", Op: "nope"},
		{ID: "d", Op: "compare", Args: []string{"20210102", "20210101"}},
	}

	out := svc.InvokeBatch(context.Background(), reqs)
	if len(out) != len(reqs) {
		t.Fatalf("len = %d, want %d", len(out), len(reqs))
	}

	if out[0].ID != "a" || out[0].Value != "20201231" || out[0].Error != "" {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].Value != nil || out[1].Code != string(mdwerror.CodeInvalidInput) || out[1].Error == "" {
		t.Errorf("out[1] = %+v", out[1])
	}
	if out[2].Code != string(mdwerror.CodeNotFound) {
		t.Errorf("out[2] = %+v", out[2])
	}
	if out[3].Value != 1 || out[3].Operation != "compare" {
		t.Errorf("out[3] = %+v", out[3])
	}
}
