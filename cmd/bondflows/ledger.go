package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/cashflow"
	"github.com/meenmo/fixbond/instruments/bonds"
	"github.com/meenmo/fixbond/internal/logging"
	"github.com/meenmo/fixbond/utils"
)

// cashflowJSON is one ledger entry. Rate and Notional are set for coupons,
// including zero-rate ones, and absent for the redemption.
type cashflowJSON struct {
	Kind         string   `json:"kind"`
	AccrualStart string   `json:"accrual_start,omitempty"`
	AccrualEnd   string   `json:"accrual_end,omitempty"`
	PaymentDate  string   `json:"payment_date"`
	Rate         *float64 `json:"rate,omitempty"`
	Notional     *float64 `json:"notional,omitempty"`
	Amount       float64  `json:"amount"`
}

// centsJSON is the minor-unit row consumed by the pricing tools.
type centsJSON struct {
	Date      string `json:"date"`
	Coupon    int64  `json:"coupon"`
	Principal int64  `json:"principal"`
}

type bondOutput struct {
	TaskID         string         `json:"task_id,omitempty"`
	SettlementDays int            `json:"settlement_days,omitempty"`
	Schedule       []string       `json:"schedule,omitempty"`
	Cashflows      []cashflowJSON `json:"cashflows,omitempty"`
	CashflowsCents []centsJSON    `json:"cashflows_cents,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
	Error          string         `json:"error,omitempty"`
}

type renderFunc func(*bond.Bond) bondOutput

func ledgerCmd(a *app) *cobra.Command {
	var inputPath string
	var cents bool

	c := &cobra.Command{
		Use:   "ledger",
		Short: "Build the cash-flow ledger of one bond or an array of bonds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			render := renderLedger
			if cents {
				render = func(b *bond.Bond) bondOutput { return renderCents(b, a.cfg.MinorUnitPlaces) }
			}
			return a.run(cmd, inputPath, render)
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "JSON or YAML input path (reads stdin if omitted)")
	c.Flags().BoolVar(&cents, "cents", false, "emit per-date rows in integer minor units")
	return c
}

func scheduleCmd(a *app) *cobra.Command {
	var inputPath string

	c := &cobra.Command{
		Use:   "schedule",
		Short: "Print the accrual schedule dates of one bond or an array of bonds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, inputPath, renderSchedule)
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "JSON or YAML input path (reads stdin if omitted)")
	return c
}

// run decodes the input, builds every bond and writes one output row per
// input, keeping the single-object or array shape of the input.
func (a *app) run(cmd *cobra.Command, inputPath string, render renderFunc) error {
	out := cmd.OutOrStdout()

	raw, err := readInput(inputPath, cmd.InOrStdin())
	if err != nil {
		return a.fail(out, fmt.Sprintf("read input: %v", err))
	}
	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		return a.fail(out, fmt.Sprintf("parse input: %v", err))
	}

	outputs, err := a.buildAll(cmd.Context(), inputs, render)
	if err != nil {
		return err
	}

	hadError := false
	for _, o := range outputs {
		if o.Error != "" {
			hadError = true
		}
	}

	if isArray {
		err = writeJSON(out, outputs)
	} else {
		err = writeJSON(out, outputs[0])
	}
	if err != nil {
		return err
	}
	if hadError {
		return errFailed
	}
	return nil
}

func (a *app) buildAll(ctx context.Context, inputs []bondInput, render renderFunc) ([]bondOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	outputs := make([]bondOutput, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			taskCtx := logging.WithLogger(ctx, a.logger.With("task_id", in.TaskID))
			outputs[i] = buildOne(taskCtx, in, render)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// buildOne constructs a single bond with the logger carried by ctx.
func buildOne(ctx context.Context, in bondInput, render renderFunc) bondOutput {
	logger := logging.FromContext(ctx)
	b, err := in.build(bond.WithLogger(logger))
	if err != nil {
		logger.Debug("bond rejected", "error", err)
		return bondOutput{TaskID: in.TaskID, Error: err.Error()}
	}
	o := render(b)
	o.TaskID = in.TaskID
	return o
}

func (a *app) fail(w io.Writer, msg string) error {
	a.logger.Error(msg)
	if err := writeJSON(w, bondOutput{Error: msg}); err != nil {
		return err
	}
	return errFailed
}

func renderLedger(b *bond.Bond) bondOutput {
	ledger := b.Cashflows()
	rows := make([]cashflowJSON, 0, len(ledger))
	for _, cf := range ledger {
		row := cashflowJSON{
			Kind:        cf.Kind.String(),
			PaymentDate: utils.FormatDate(cf.Date()),
			Amount:      cf.Amount(),
		}
		if cf.Kind == cashflow.KindCoupon {
			row.AccrualStart = utils.FormatDate(cf.Coupon.AccrualStart)
			row.AccrualEnd = utils.FormatDate(cf.Coupon.AccrualEnd)
			rate, notional := cf.Coupon.Rate, cf.Coupon.Notional
			row.Rate = &rate
			row.Notional = &notional
		}
		rows = append(rows, row)
	}
	return bondOutput{
		SettlementDays: b.SettlementDays(),
		Cashflows:      rows,
		Warnings:       warnings(b),
	}
}

func renderCents(b *bond.Bond, places int32) bondOutput {
	cents := bonds.FromCashflows(b.DatedCashflows(), places)
	rows := make([]centsJSON, 0, len(cents))
	for _, cf := range cents {
		rows = append(rows, centsJSON{
			Date:      utils.FormatDate(cf.Date),
			Coupon:    cf.CouponCents,
			Principal: cf.PrincipalCents,
		})
	}
	return bondOutput{
		SettlementDays: b.SettlementDays(),
		CashflowsCents: rows,
		Warnings:       warnings(b),
	}
}

func renderSchedule(b *bond.Bond) bondOutput {
	dates := b.Schedule().Dates()
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, utils.FormatDate(d))
	}
	return bondOutput{Schedule: out}
}

func warnings(b *bond.Bond) []string {
	var out []string
	for _, w := range b.Warnings() {
		out = append(out, string(w))
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
