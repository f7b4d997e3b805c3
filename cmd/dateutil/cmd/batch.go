package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	coreGrpc "github.com/msto63/mdw-dateutil/pkg/core/grpc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newBatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.yaml|->",
		Short: "Evaluate a YAML list of operations",
		Long: `Evaluate a YAML list of operations, read from a file or from stdin ("-").

  - op: addMonths
    args: ["20210131", "1"]
  - id: age
    op: calcAge
    args: ["20210304", "20000305"]

Every request is evaluated even when others fail. The exit status is
non-zero if any request failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args[0])
		},
	}
}

// readRequests decodes the batch file. Requests without an id are numbered from 1.
func readRequests(r io.Reader) ([]service.Request, error) {
	var reqs []service.Request
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&reqs); err != nil && err != io.EOF {
		return nil, mdwerror.Wrap(err, "invalid batch file").WithCode(mdwerror.CodeInvalidInput)
	}
	for i := range reqs {
		if reqs[i].ID == "" {
			reqs[i].ID = strconv.Itoa(i + 1)
		}
	}
	return reqs, nil
}

func runBatch(cmd *cobra.Command, opts *options, path string) error {
	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return mdwerror.Wrap(err, "failed to open batch file").
				WithCode(mdwerror.CodeNotFound).
				WithDetail("path", path)
		}
		defer f.Close()
		in = f
	}

	reqs, err := readRequests(in)
	if err != nil {
		return err
	}

	b, err := opts.backend(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	runID := uuid.New().String()
	ctx := coreGrpc.WithRequestID(cmd.Context(), runID)
	opts.cliLogger(cmd.ErrOrStderr()).Debug("batch started", "run_id", runID, "requests", len(reqs))

	responses, err := b.InvokeBatch(ctx, reqs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range responses {
		if r.Error != "" {
			failed++
		}
	}

	if opts.out.json {
		if err := opts.out.JSON(responses); err != nil {
			return err
		}
	} else {
		printBatch(opts.out, reqs, responses)
	}

	if failed > 0 {
		if !opts.out.json {
			opts.out.Error(fmt.Sprintf("%d of %d requests failed", failed, len(responses)))
		}
		return errReported
	}
	return nil
}

func printBatch(p *printer, reqs []service.Request, responses []service.Response) {
	for i, r := range responses {
		call := fmt.Sprintf("%s(%s)", r.Operation, strings.Join(reqs[i].Args, ", "))
		prefix := p.styles.label.Render(r.ID) + " " + call + " "
		if r.Error != "" {
			fmt.Fprintln(p.out, prefix+p.styles.err.Render("error: "+r.Error))
			continue
		}
		fmt.Fprintln(p.out, prefix+"= "+p.styles.value.Render(fmt.Sprint(r.Value)))
	}
}
