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

// MRMC drives the mrmc Markov reward model checker over a CTMC exported
// from a composed automaton.
type MRMC struct {
	// BinPath overrides the mrmc executable path; empty means "mrmc" on
	// the caller's PATH.
	BinPath string
}

func (m *MRMC) Name() string { return "mrmc" }

// BuildQuery renders a PCTL/CSL-style time-bounded or steady-state
// property line in mrmc's own input grammar.
func (m *MRMC) BuildQuery(n *dft.Node, q Query) ([]byte, error) {
	switch q.Kind {
	case QueryTimeBound:
		return []byte(fmt.Sprintf("P{ <= %g } [ true U fail ]\n", q.Time)), nil
	case QuerySteady:
		return []byte("S{ > 0 } [ fail ]\n"), nil
	case QueryCustom:
		return []byte(q.Custom + "\n"), nil
	default:
		return nil, fmt.Errorf("backend: mrmc does not support query kind %d", q.Kind)
	}
}

func (m *MRMC) Run(ctx context.Context, modelPath string, query []byte) ([]byte, error) {
	bin := m.BinPath
	if bin == "" {
		bin = "mrmc"
	}
	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, "ctmc", modelPath)
	cmd.Stdin = bytes.NewReader(query)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	log.Debug().Str("backend", m.Name()).Str("model", modelPath).Msg("running checker")
	err := cmd.Run()
	log.Debug().Str("backend", m.Name()).Dur("elapsed", time.Since(start)).Err(err).Msg("checker finished")
	if err != nil {
		return nil, fmt.Errorf("backend: mrmc run: %w", err)
	}
	return out.Bytes(), nil
}

// ParseResult reads mrmc's "Prob: <lo> <hi>" (or plain "Result: <v>")
// output line into a Bound.
func (m *MRMC) ParseResult(raw []byte) (interval.Bound, RunStats, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Prob:") {
			fields := strings.Fields(strings.TrimPrefix(line, "Prob:"))
			if len(fields) == 2 {
				lo, err1 := strconv.ParseFloat(fields[0], 64)
				hi, err2 := strconv.ParseFloat(fields[1], 64)
				if err1 == nil && err2 == nil {
					return interval.Approx(lo, hi), RunStats{}, nil
				}
			}
		}
		if strings.HasPrefix(line, "Result:") {
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "Result:")), 64)
			if err == nil {
				return interval.Approx(v, v), RunStats{}, nil
			}
		}
	}
	return interval.Bound{}, RunStats{}, fmt.Errorf("backend: mrmc: no parseable result line in output")
}
