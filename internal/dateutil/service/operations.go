package service

import (
	"sort"

	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
)

// Operation describes one invokable date operation
type Operation struct {
	// Name is the canonical operation name used by gRPC and batch requests
	Name string `json:"name" yaml:"name"`
	// Command is the CLI subcommand name
	Command     string   `json:"command" yaml:"command"`
	Args        []string `json:"args" yaml:"args"`
	Description string   `json:"description" yaml:"description"`
	// Optional is the number of trailing arguments that may be omitted
	Optional int `json:"optional,omitempty" yaml:"optional,omitempty"`

	run func(s *Service, args []string) (interface{}, error)
}

// MinArgs returns the smallest accepted argument count
func (o Operation) MinArgs() int {
	return len(o.Args) - o.Optional
}

// MaxArgs returns the largest accepted argument count
func (o Operation) MaxArgs() int {
	return len(o.Args)
}

func dateInt(fn func(string, int) (string, error)) func(*Service, []string) (interface{}, error) {
	return func(_ *Service, args []string) (interface{}, error) {
		n, err := datex.ParseOperand(args[1])
		if err != nil {
			return nil, err
		}
		return fn(args[0], n)
	}
}

func epoch(fn func(int64) (string, error)) func(*Service, []string) (interface{}, error) {
	return func(_ *Service, args []string) (interface{}, error) {
		n, err := datex.ParseEpoch(args[0])
		if err != nil {
			return nil, err
		}
		return fn(n)
	}
}

func twoDates(fn func(string, string) (int, error)) func(*Service, []string) (interface{}, error) {
	return func(_ *Service, args []string) (interface{}, error) {
		return fn(args[0], args[1])
	}
}

var registry = map[string]Operation{
	"calcAge": {
		Command:     "age",
		Args:        []string{"baseDate", "birthday"},
		Description: "Full years from birthday (YYYYMMDD) to baseDate (YYYYMMDD)",
		run:         twoDates(datex.CalcAge),
	},
	"addYears": {
		Command:     "add-years",
		Args:        []string{"baseDate", "years"},
		Description: "Add years to a YYYYMMDD date, clamping to the end of month",
		run:         dateInt(datex.AddYears),
	},
	"addMonths": {
		Command:     "add-months",
		Args:        []string{"baseDate", "months"},
		Description: "Add months to a YYYYMMDD date, clamping to the end of month",
		run:         dateInt(datex.AddMonths),
	},
	"addDays": {
		Command:     "add-days",
		Args:        []string{"baseDate", "days"},
		Description: "Add days to a YYYYMMDD date",
		run:         dateInt(datex.AddDays),
	},
	"format": {
		Command:     "format",
		Args:        []string{"input", "pattern"},
		Optional:    1,
		Description: "Format a free-form date with a token pattern",
		run: func(s *Service, args []string) (interface{}, error) {
			pattern := s.defaultPattern
			if len(args) > 1 {
				pattern = args[1]
			}
			return datex.Format(args[0], pattern)
		},
	},
	"endOfMonth": {
		Command:     "end-of-month",
		Args:        []string{"date"},
		Description: "Last day of the month of a YYYYMMDD or YYYYMM value",
		run: func(_ *Service, args []string) (interface{}, error) {
			return datex.EndOfMonth(args[0])
		},
	},
	"compare": {
		Command:     "compare",
		Args:        []string{"baseDate", "compDate"},
		Description: "-1 when baseDate is before compDate, 0 on the same day, 1 when later",
		run:         twoDates(datex.Compare),
	},
	"diffDays": {
		Command:     "diff-days",
		Args:        []string{"fromDate", "toDate"},
		Description: "Whole days from fromDate to toDate",
		run:         twoDates(datex.DiffDays),
	},
	"epochSecToUtc": {
		Command:     "epoch-to-utc",
		Args:        []string{"epochSec"},
		Description: "Unix seconds to YYYYMMDD HHmmss in UTC",
		run:         epoch(datex.EpochSecToUTC),
	},
	"epochMilliSecToUtc": {
		Command:     "epoch-ms-to-utc",
		Args:        []string{"epochMilliSec"},
		Description: "Unix milliseconds to YYYYMMDD HHmmss.SSS in UTC",
		run:         epoch(datex.EpochMilliSecToUTC),
	},
	"utcToEpochSec": {
		Command:     "utc-to-epoch",
		Args:        []string{"utc"},
		Description: "YYYYMMDD HHmmss in UTC to Unix seconds",
		run: func(s *Service, args []string) (interface{}, error) {
			return s.converter.UTCToEpochSec(args[0])
		},
	},
	"utcToEpochMilliSec": {
		Command:     "utc-to-epoch-ms",
		Args:        []string{"utc"},
		Description: "YYYYMMDD HHmmss.SSS in UTC to Unix milliseconds",
		run: func(s *Service, args []string) (interface{}, error) {
			return s.converter.UTCToEpochMilliSec(args[0])
		},
	},
	"utcToJst": {
		Command:     "utc-to-jst",
		Args:        []string{"utc"},
		Description: "YYYYMMDD HHmmss in UTC to Japan Standard Time",
		run: func(s *Service, args []string) (interface{}, error) {
			return s.converter.UTCToJST(args[0])
		},
	},
	"jstToUtc": {
		Command:     "jst-to-utc",
		Args:        []string{"jst"},
		Description: "YYYYMMDD HHmmss in Japan Standard Time to UTC",
		run: func(s *Service, args []string) (interface{}, error) {
			return s.converter.JSTToUTC(args[0])
		},
	},
}

func init() {
	for name, op := range registry {
		op.Name = name
		registry[name] = op
	}
}

// Operations returns all operations sorted by name
func Operations() []Operation {
	ops := make([]Operation, 0, len(registry))
	for _, op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Lookup returns the operation with the given canonical name
func Lookup(name string) (Operation, bool) {
	op, ok := registry[name]
	return op, ok
}
