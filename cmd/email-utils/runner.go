package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/di"
	"go.uber.org/zap"
)

// result is the outcome of a per-address operation
type result struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	OK     bool   `json:"ok"`
}

type runner struct {
	engine *core.Engine
	flags  *di.CLIFlags
	out    io.Writer
	logger *zap.Logger
}

func newRunner(engine *core.Engine, flags *di.CLIFlags, out io.Writer, logger *zap.Logger) *runner {
	return &runner{
		engine: engine,
		flags:  flags,
		out:    out,
		logger: logger,
	}
}

// run applies the list flags, then the selected operation to input
func (r *runner) run(input io.Reader) error {
	if err := r.prepareLists(); err != nil {
		return err
	}

	if r.flags.Operation == "extract" {
		text, err := io.ReadAll(input)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return r.writeList(r.engine.Aggregator.ExtractFromText(string(text)))
	}

	addresses, err := readLines(input)
	if err != nil {
		return err
	}

	r.logger.Debug("Running operation",
		zap.String("op", r.flags.Operation),
		zap.Int("inputs", len(addresses)))

	return r.dispatch(addresses)
}

func (r *runner) prepareLists() error {
	lists := r.engine.Lists

	if path := r.flags.DisposableList; path != "" && !lists.LoadPath(core.ListDisposable, path) {
		return fmt.Errorf("failed to load disposable list: %s", path)
	}
	if path := r.flags.Allowlist; path != "" && !lists.LoadPath(core.ListAllowlist, path) {
		return fmt.Errorf("failed to load allowlist: %s", path)
	}

	if domains := di.SplitList(r.flags.AddDisposable); len(domains) > 0 {
		lists.Add(core.ListDisposable, domains...)
	}
	if domains := di.SplitList(r.flags.AddAllowlist); len(domains) > 0 {
		lists.Add(core.ListAllowlist, domains...)
	}

	return nil
}

func (r *runner) dispatch(addresses []string) error {
	e := r.engine
	f := r.flags

	switch f.Operation {
	case "validate":
		results := e.Aggregator.ValidateAll(addresses)
		if f.JSON {
			return r.writeJSON(results)
		}
		for _, res := range results {
			state := "invalid"
			if res.Valid {
				state = "valid"
			}
			fmt.Fprintf(r.out, "%s\t%s\n", state, res.Input)
		}
		return nil

	case "normalize":
		return r.each(addresses, e.Parser.Normalize)

	case "ascii":
		return r.each(addresses, func(raw string) (string, bool) {
			if !e.Parser.IsValid(raw) {
				return "", false
			}
			return e.Parser.ToASCII(raw), true
		})

	case "classify":
		return r.each(addresses, func(raw string) (string, bool) {
			class, ok := e.Classifier.Classify(raw)
			return string(class), ok
		})

	case "score":
		breakdowns := make([]core.ScoreBreakdown, 0, len(addresses))
		for _, raw := range addresses {
			breakdowns = append(breakdowns, e.Scorer.Breakdown(raw, f.CheckMX))
		}
		if f.JSON {
			return r.writeJSON(breakdowns)
		}
		for _, b := range breakdowns {
			fmt.Fprintf(r.out, "%d\t%s\n", b.Score, b.Address)
		}
		return nil

	case "anonymize":
		return r.each(addresses, e.Transformer.Anonymize)

	case "mask":
		return r.each(addresses, func(raw string) (string, bool) {
			return e.Transformer.Mask(raw, f.ShowFirst, f.ShowLast)
		})

	case "hash":
		opts := core.HashOptions{HashDomain: f.HashDomain, Length: f.HashLength}
		return r.each(addresses, func(raw string) (string, bool) {
			return e.Transformer.Hash(raw, opts)
		})

	case "placeholder":
		return r.each(addresses, e.Transformer.Placeholder)

	case "tag":
		return r.each(addresses, func(raw string) (string, bool) {
			addr, ok := e.Subaddress.AddTag(raw, f.Tag)
			return addr.String(), ok
		})

	case "untag":
		return r.each(addresses, e.Subaddress.RemoveTag)

	case "dedupe":
		return r.writeList(e.Aggregator.RemoveDuplicates(addresses, f.IgnoreSubaddress))

	case "group":
		groups := e.Aggregator.GroupByDomain(addresses)
		if f.JSON {
			return r.writeJSON(groups)
		}
		domains := make([]string, 0, len(groups))
		for domain := range groups {
			domains = append(domains, domain)
		}
		sort.Strings(domains)
		for _, domain := range domains {
			fmt.Fprintf(r.out, "%s\t%s\n", domain, strings.Join(groups[domain], ", "))
		}
		return nil

	case "top":
		top := e.Aggregator.TopDomains(addresses, f.Top)
		if f.JSON {
			return r.writeJSON(top)
		}
		for _, dc := range top {
			fmt.Fprintf(r.out, "%d\t%s\n", dc.Count, dc.Domain)
		}
		return nil

	case "stats":
		stats := e.Aggregator.GetStatistics(addresses)
		if f.JSON {
			return r.writeJSON(stats)
		}
		return r.writeStats(stats)

	case "filter":
		return r.filter(addresses)

	default:
		return fmt.Errorf("unknown operation: %s", f.Operation)
	}
}

func (r *runner) filter(addresses []string) error {
	e := r.engine
	out := e.Aggregator.FilterValid(addresses)

	if patterns := di.SplitList(r.flags.Patterns); len(patterns) > 0 {
		out = e.Aggregator.FilterByPatterns(out, patterns, !r.flags.Exclude)
	}

	if types := di.SplitList(r.flags.Types); len(types) > 0 {
		classes := make([]core.Classification, 0, len(types))
		for _, t := range types {
			class, ok := parseClassification(t)
			if !ok {
				return fmt.Errorf("unknown provider type: %s", t)
			}
			classes = append(classes, class)
		}
		out = e.Aggregator.FilterByProviderType(out, classes...)
	}

	return r.writeList(out)
}

// each applies fn to every address. Text output skips failures.
func (r *runner) each(addresses []string, fn func(string) (string, bool)) error {
	results := make([]result, 0, len(addresses))
	for _, raw := range addresses {
		out, ok := fn(raw)
		if !ok {
			out = ""
		}
		results = append(results, result{Input: raw, Output: out, OK: ok})
	}

	if r.flags.JSON {
		return r.writeJSON(results)
	}

	for _, res := range results {
		if !res.OK {
			r.logger.Warn("Skipping address",
				zap.String("op", r.flags.Operation),
				zap.String("input", res.Input))
			continue
		}
		fmt.Fprintln(r.out, res.Output)
	}
	return nil
}

func (r *runner) writeList(items []string) error {
	if r.flags.JSON {
		return r.writeJSON(items)
	}
	for _, item := range items {
		fmt.Fprintln(r.out, item)
	}
	return nil
}

func (r *runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func (r *runner) writeStats(stats core.Statistics) error {
	fmt.Fprintf(r.out, "Total: %d\n", stats.Total)
	fmt.Fprintf(r.out, "Valid: %d (%.2f%%)\n", stats.Valid, stats.ValidPercentage)
	fmt.Fprintf(r.out, "Invalid: %d\n", stats.Invalid)
	if stats.Valid == 0 {
		return nil
	}

	fmt.Fprintf(r.out, "Subaddressed: %d\n", stats.Subaddressed)
	fmt.Fprintf(r.out, "Unique domains: %d\n", stats.UniqueDomains)

	fmt.Fprintf(r.out, "\n=== Provider Types ===\n")
	for _, class := range core.Classifications {
		fmt.Fprintf(r.out, "%s: %d\n", class, stats.Classifications[class])
	}

	fmt.Fprintf(r.out, "\n=== Top Domains ===\n")
	for _, dc := range stats.TopDomains {
		fmt.Fprintf(r.out, "%s: %d\n", dc.Domain, dc.Count)
	}
	return nil
}

// readLines returns the non-blank lines of input
func readLines(input io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

func parseClassification(value string) (core.Classification, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, class := range core.Classifications {
		if string(class) == value {
			return class, true
		}
	}
	return "", false
}
