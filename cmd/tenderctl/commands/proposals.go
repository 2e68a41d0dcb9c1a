package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// proposalFlags are the raw catalog filter options.
type proposalFlags struct {
	name       string
	contractor string
	inn        string
	contract   string
	okved      string
	facility   string
	social     string
	min        string
	max        string
	period     string
}

func ProposalsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("proposals", flag.ExitOnError)
	var f proposalFlags
	fs.StringVar(&f.name, "name", "", "Proposal name contains")
	fs.StringVar(&f.contractor, "contractor", "", "Contractor name contains")
	fs.StringVar(&f.inn, "inn", "", "Contractor INN")
	fs.StringVar(&f.contract, "contract", "", "Contract number")
	fs.StringVar(&f.okved, "okved", "", "Comma-separated OKVED codes")
	fs.StringVar(&f.facility, "facility", "", "Comma-separated facilities")
	fs.StringVar(&f.social, "social", "", "Comma-separated social facilities")
	fs.StringVar(&f.min, "min", "", "Minimum full price")
	fs.StringVar(&f.max, "max", "", "Maximum full price")
	fs.StringVar(&f.period, "period", "", "Creation period: today or month")
	all := fs.Bool("all", false, "Follow the cursor until the catalog is exhausted")
	format := fs.String("format", "table", "Output format (table, json)")
	fs.Parse(args)

	filter, err := buildFilter(f, time.Now())
	if err != nil {
		return err
	}

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.session.Authorize(); err != nil {
		return fmt.Errorf("%w: run `tenderctl login` first", err)
	}

	if _, err := p.scroller.Apply(ctx, filter); err != nil {
		return err
	}
	for *all && p.scroller.HasMore() {
		if _, err := p.scroller.LoadMore(ctx); err != nil {
			return err
		}
	}

	items := p.scroller.Items()
	if *format == "json" {
		return printJSON(p.out, items)
	}

	rows := make([][]string, 0, len(items))
	for _, raw := range items {
		rows = append(rows, proposalRow(raw))
	}
	printTable(p.out, []string{"ID", "NAME", "CONTRACTOR", "OKVED", "PRICE"}, rows)
	if p.scroller.HasMore() {
		fmt.Fprintln(p.out, "\nMore proposals available, use --all to fetch everything.")
	}
	return nil
}

func buildFilter(f proposalFlags, now time.Time) (domain.ProposalFilter, error) {
	filter := domain.ProposalFilter{
		ProposalName:     f.name,
		ContractorName:   f.contractor,
		ContractorInn:    f.inn,
		ContractNumber:   f.contract,
		OkvedCodes:       splitList(f.okved),
		Facilities:       splitList(f.facility),
		SocialFacilities: splitList(f.social),
	}

	var err error
	if filter.PriceRange.Min, err = parsePrice("min", f.min); err != nil {
		return filter, err
	}
	if filter.PriceRange.Max, err = parsePrice("max", f.max); err != nil {
		return filter, err
	}

	switch f.period {
	case "":
	case "today":
		filter.Period = domain.PeriodToday(now)
	case "month":
		filter.Period = domain.PeriodMonth(now)
	default:
		return filter, fmt.Errorf("%w: period must be today or month", domain.ErrInvalidFilter)
	}
	return filter, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePrice(name, s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidFilter, name)
	}
	return &v, nil
}

// proposalRow picks the listed columns out of an opaque item.
func proposalRow(raw json.RawMessage) []string {
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return []string{"?", string(raw), "", "", ""}
	}
	col := func(key string) string {
		switch v := item[key].(type) {
		case nil:
			return ""
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	}
	return []string{col("proposalId"), col("proposalName"), col("contractorName"), col("okvedCode"), col("fullProposalPrice")}
}
