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

// Storm drives the Storm probabilistic model checker, used for the
// exact-result path: it can emit an exact rational answer instead of the
// iterative approximation mrmc/imca produce.
type Storm struct {
	BinPath string
	Exact   bool
}

func (s *Storm) Name() string { return "storm" }

func (s *Storm) BuildQuery(n *dft.Node, q Query) ([]byte, error) {
	var prop string
	switch q.Kind {
	case QueryTimeBound:
		prop = fmt.Sprintf("P=? [ F<=%g \"fail\" ]", q.Time)
	case QueryUnbounded:
		prop = "P=? [ F \"fail\" ]"
	case QuerySteady:
		prop = "LRA=? [ \"fail\" ]"
	case QueryCustom:
		prop = q.Custom
	default:
		return nil, fmt.Errorf("backend: storm does not support query kind %d", q.Kind)
	}
	return []byte(prop), nil
}

func (s *Storm) Run(ctx context.Context, modelPath string, query []byte) ([]byte, error) {
	bin := s.BinPath
	if bin == "" {
		bin = "storm"
	}
	args := []string{"--jani", modelPath, "--prop", string(query)}
	if s.Exact {
		args = append(args, "--exact")
	}
	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	log.Debug().Str("backend", s.Name()).Str("model", modelPath).Bool("exact", s.Exact).Msg("running checker")
	err := cmd.Run()
	log.Debug().Str("backend", s.Name()).Dur("elapsed", time.Since(start)).Err(err).Msg("checker finished")
	if err != nil {
		return nil, fmt.Errorf("backend: storm run: %w", err)
	}
	return out.Bytes(), nil
}

// ParseResult reads Storm's "Result (for initial states): <v>" line,
// folding it into a degenerate exact Bound when s.Exact is set and the
// value parses as a decimal rather than a float approximation.
func (s *Storm) ParseResult(raw []byte) (interval.Bound, RunStats, error) {
	const marker = "Result (for initial states): "
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		valStr := strings.TrimSpace(line[idx+len(marker):])
		if s.Exact {
			d, err := decimalParse(valStr)
			if err == nil {
				return interval.Degenerate(d), RunStats{}, nil
			}
		}
		v, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return interval.Bound{}, RunStats{}, fmt.Errorf("backend: storm: unparseable result %q: %w", valStr, err)
		}
		return interval.Approx(v, v), RunStats{}, nil
	}
	return interval.Bound{}, RunStats{}, fmt.Errorf("backend: storm: no result line in output")
}
