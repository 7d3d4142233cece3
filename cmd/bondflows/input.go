package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/instruments/bonds"
	"github.com/meenmo/fixbond/schedule"
	"github.com/meenmo/fixbond/utils"
)

// bondInput is one bond in the input document. JSON input is read through the
// YAML decoder, so both formats share these keys.
type bondInput struct {
	TaskID            string    `yaml:"task_id"`
	FaceAmount        *float64  `yaml:"face_amount"`
	IssueDate         string    `yaml:"issue_date"`
	DatedDate         string    `yaml:"dated_date"`
	MaturityDate      string    `yaml:"maturity_date"`
	SettlementDays    int       `yaml:"settlement_days"`
	CouponRates       []float64 `yaml:"coupon_rates"`
	Frequency         string    `yaml:"frequency"`
	Calendar          string    `yaml:"calendar"`
	DayCount          string    `yaml:"day_count"`
	AccrualConvention string    `yaml:"accrual_convention"`
	PaymentConvention string    `yaml:"payment_convention"`
	RedemptionPercent *float64  `yaml:"redemption_percent"`

	// Market names a preset (e.g. US_TREASURY) filling unset conventions.
	Market string `yaml:"market"`

	// StubDate selects the explicit-date encoding; StubType the legacy one.
	StubDate  string `yaml:"stub_date"`
	StubType  string `yaml:"stub_type"`
	FromEnd   bool   `yaml:"from_end"`
	LongFinal bool   `yaml:"long_final"`
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if f, ok := stdin.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input: pass --input or pipe a document on stdin")
		}
	}
	return io.ReadAll(stdin)
}

// parseInputs accepts a single bond or a sequence of bonds and reports which.
func parseInputs(raw []byte) ([]bondInput, bool, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, false, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var inputs []bondInput
		if err := root.Decode(&inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	case yaml.MappingNode:
		var input bondInput
		if err := root.Decode(&input); err != nil {
			return nil, false, err
		}
		return []bondInput{input}, false, nil
	default:
		return nil, false, fmt.Errorf("input must be a bond object or an array of bonds")
	}
}

// build constructs the bond, taking the legacy path when stub_type is set.
func (in bondInput) build(opts ...bond.Option) (*bond.Bond, error) {
	terms, err := in.terms()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.StubType) != "" {
		if in.StubDate != "" {
			return nil, fmt.Errorf("stub_date and stub_type are mutually exclusive")
		}
		if in.FaceAmount != nil && *in.FaceAmount != bond.LegacyFaceAmount {
			return nil, fmt.Errorf("face_amount is fixed at %v when stub_type is set", bond.LegacyFaceAmount)
		}
		st, err := schedule.ParseStubType(in.StubType)
		if err != nil {
			return nil, err
		}
		return bond.NewFixedCouponBondFromStubType(legacyTerms(terms),
			bond.StubRule{Type: st, FromEnd: in.FromEnd, LongFinal: in.LongFinal}, opts...)
	}

	stub := bond.StubDate{FromEnd: in.FromEnd, LongFinal: in.LongFinal}
	if in.StubDate != "" {
		if stub.Date, err = utils.ParseDate(in.StubDate); err != nil {
			return nil, fmt.Errorf("invalid stub_date: %w", err)
		}
	}
	return bond.NewFixedCouponBond(terms, stub, opts...)
}

func (in bondInput) terms() (bond.Terms, error) {
	dated, err := utils.ParseDate(in.DatedDate)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("invalid dated_date: %w", err)
	}
	maturity, err := utils.ParseDate(in.MaturityDate)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("invalid maturity_date: %w", err)
	}
	issue := dated
	if in.IssueDate != "" {
		if issue, err = utils.ParseDate(in.IssueDate); err != nil {
			return bond.Terms{}, fmt.Errorf("invalid issue_date: %w", err)
		}
	}

	terms := bond.Terms{
		FaceAmount:        valueOr(in.FaceAmount, 100),
		IssueDate:         issue,
		DatedDate:         dated,
		MaturityDate:      maturity,
		SettlementDays:    in.SettlementDays,
		CouponRates:       in.CouponRates,
		RedemptionPercent: valueOr(in.RedemptionPercent, 100),
	}
	if in.Frequency != "" {
		if terms.Frequency, err = schedule.ParseFrequency(in.Frequency); err != nil {
			return bond.Terms{}, err
		}
	}
	if in.Calendar != "" {
		if terms.Calendar, err = calendar.Parse(in.Calendar); err != nil {
			return bond.Terms{}, err
		}
	}
	if in.DayCount != "" {
		dc, err := daycount.Parse(in.DayCount)
		if err != nil {
			return bond.Terms{}, err
		}
		terms.DayCounter = dc
	}
	if in.AccrualConvention != "" {
		if terms.AccrualConvention, err = calendar.ParseConvention(in.AccrualConvention); err != nil {
			return bond.Terms{}, err
		}
	}
	if in.PaymentConvention != "" {
		if terms.PaymentConvention, err = calendar.ParseConvention(in.PaymentConvention); err != nil {
			return bond.Terms{}, err
		}
	}

	if in.Market != "" {
		mc, err := bonds.LookupMarket(in.Market)
		if err != nil {
			return bond.Terms{}, err
		}
		terms = mc.Apply(terms)
	}
	if terms.AccrualConvention == "" {
		terms.AccrualConvention = calendar.Following
	}
	if terms.PaymentConvention == "" {
		terms.PaymentConvention = calendar.Following
	}
	return terms, nil
}

func legacyTerms(t bond.Terms) bond.LegacyTerms {
	return bond.LegacyTerms{
		IssueDate:         t.IssueDate,
		DatedDate:         t.DatedDate,
		MaturityDate:      t.MaturityDate,
		SettlementDays:    t.SettlementDays,
		CouponRates:       t.CouponRates,
		Frequency:         t.Frequency,
		Calendar:          t.Calendar,
		DayCounter:        t.DayCounter,
		AccrualConvention: t.AccrualConvention,
		PaymentConvention: t.PaymentConvention,
		RedemptionPercent: t.RedemptionPercent,
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
