package backend

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
	"github.com/utwente-fmt/dftcalc-sub000/interval"
)

// IMCA drives the IMCA interactive Markov chain analyzer, used for
// models whose dynamic gates introduce nondeterminism an ordinary CTMC
// checker like mrmc cannot resolve.
type IMCA struct {
	BinPath string
}

func (i *IMCA) Name() string { return "imca" }

func (i *IMCA) BuildQuery(n *dft.Node, q Query) ([]byte, error) {
	switch q.Kind {
	case QueryTimeBound:
		return []byte(fmt.Sprintf("--timebound=%g\n", q.Time)), nil
	case QueryExpectedTime:
		return []byte("--expectedtime\n"), nil
	case QueryCustom:
		return []byte(q.Custom + "\n"), nil
	default:
		return nil, fmt.Errorf("backend: imca does not support query kind %d", q.Kind)
	}
}

func (i *IMCA) Run(ctx context.Context, modelPath string, query []byte) ([]byte, error) {
	bin := i.BinPath
	if bin == "" {
		bin = "imca"
	}
	args := append([]string{modelPath}, strings.Fields(string(query))...)
	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	log.Debug().Str("backend", i.Name()).Str("model", modelPath).Msg("running checker")
	err := cmd.Run()
	log.Debug().Str("backend", i.Name()).Dur("elapsed", time.Since(start)).Err(err).Msg("checker finished")
	if err != nil {
		return nil, fmt.Errorf("backend: imca run: %w", err)
	}
	return out.Bytes(), nil
}

func (i *IMCA) ParseResult(raw []byte) (interval.Bound, RunStats, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			if lo, hi, ok := strings.Cut(field, ".."); ok {
				loV, err1 := strconv.ParseFloat(lo, 64)
				hiV, err2 := strconv.ParseFloat(hi, 64)
				if err1 == nil && err2 == nil {
					return interval.Approx(loV, hiV), RunStats{}, nil
				}
			}
		}
	}
	return interval.Bound{}, RunStats{}, fmt.Errorf("backend: imca: no parseable interval in output")
}
