package trustlot

import (
	"errors"
	"fmt"
	"testing"
)

// eventString flattens an event so sequences can be compared byte for byte.
func eventString(ev RealizedEvent) string {
	return fmt.Sprintf("%s %s->%s qty=%s proceeds=%s basis=%s gain=%s %s",
		ev.Kind, ev.AcquisitionDate, ev.DispositionDate,
		ev.Quantity, ev.Proceeds.Decimal(), ev.CostBasis.Decimal(), ev.GainLoss.Decimal(), ev.Term)
}

func TestComputeRealizedEvents_PrincipalPaymentScenario(t *testing.T) {
	// Buy 100 shares at $150 on 1/1; principal payment on 2/1 with factor
	// 0.0005 at $160; then sell 40 shares at $170 on 3/1.
	txs := []Transaction{
		{Date: day("2021-01-01"), Instruction: Buy, Quantity: Q(100), Price: USD(150)},
		{Date: day("2021-03-01"), Instruction: Sell, Quantity: Q(40), Price: USD(170)},
	}
	entries := []ReferenceEntry{
		{Date: day("2021-02-01"), Price: USD(160), Factor: F(0.0005)},
	}

	events, err := ComputeRealizedEvents(NewLedger(), entries, txs)
	if err != nil {
		t.Fatalf("ComputeRealizedEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	pp := events[0]
	if pp.Kind != PrincipalPayment {
		t.Fatalf("first event kind = %s, want PRINCIPAL_PAYMENT", pp.Kind)
	}
	if !pp.Quantity.Equal(Q(0.05)) {
		t.Errorf("quantity = %s, want 0.05", pp.Quantity)
	}
	if !pp.Proceeds.Equal(USD(8)) {
		t.Errorf("proceeds = %s, want $8.00", pp.Proceeds.Decimal())
	}
	if !pp.CostBasis.Equal(USD(7.50)) {
		t.Errorf("cost basis = %s, want $7.50", pp.CostBasis.Decimal())
	}
	if !pp.GainLoss.Equal(USD(0.50)) {
		t.Errorf("gain = %s, want $0.50", pp.GainLoss.Decimal())
	}
	if pp.Term != ShortTerm {
		t.Errorf("term = %s, want SHORT", pp.Term)
	}

	sale := events[1]
	if sale.Kind != Sale {
		t.Fatalf("second event kind = %s, want SALE", sale.Kind)
	}
	if !sale.Quantity.Equal(Q(40)) {
		t.Errorf("quantity = %s, want 40", sale.Quantity)
	}
	// 40 × ($14,992.50 / 100) = $5,997.00
	if !sale.CostBasis.Equal(USD(5997)) {
		t.Errorf("cost basis = %s, want $5,997.00", sale.CostBasis.Decimal())
	}
	if !sale.Proceeds.Equal(USD(6800)) {
		t.Errorf("proceeds = %s, want $6,800.00", sale.Proceeds.Decimal())
	}
	if !sale.GainLoss.Equal(USD(803)) {
		t.Errorf("gain = %s, want $803.00", sale.GainLoss.Decimal())
	}
	if sale.AcquisitionDate != day("2021-01-01") {
		t.Errorf("acquisition date = %s, want 2021-01-01", sale.AcquisitionDate)
	}
	if sale.Term != ShortTerm {
		t.Errorf("term = %s, want SHORT", sale.Term)
	}
}

func TestComputeRealizedEvents_SameDayPrincipalPaymentComesFirst(t *testing.T) {
	// Policy: the trust's deemed sale precedes a holder sale booked on the
	// same date, so the sale sees the already-reduced basis.
	txs := []Transaction{
		{Date: day("2021-01-01"), Instruction: Buy, Quantity: Q(100), Price: USD(150)},
		{Date: day("2021-03-01"), Instruction: Sell, Quantity: Q(100), Price: USD(160)},
	}
	entries := []ReferenceEntry{
		{Date: day("2021-03-01"), Price: USD(160), Factor: F(0.001)},
	}

	events, err := ComputeRealizedEvents(NewLedger(), entries, txs)
	if err != nil {
		t.Fatalf("ComputeRealizedEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != PrincipalPayment || events[1].Kind != Sale {
		t.Fatalf("event order = %s, %s; want principal payment first", events[0].Kind, events[1].Kind)
	}
	// Basis consumed by the payment: 100 × 0.001 × $150 = $15.00, leaving
	// $14,985.00 on the lot. The sale must see exactly that.
	if !events[1].CostBasis.Equal(USD(14985)) {
		t.Errorf("sale cost basis = %s, want $14,985.00 (reduced before the sale)", events[1].CostBasis.Decimal())
	}
	// Had the sale gone first, its basis would have been the full $15,000.
	if events[1].CostBasis.Equal(USD(15000)) {
		t.Error("sale saw the unreduced basis: same-day ordering is wrong")
	}
}

func TestComputeRealizedEvents_BuyEmitsNoEvent(t *testing.T) {
	txs := []Transaction{
		{Date: day("2021-01-01"), Instruction: Buy, Quantity: Q(100), Price: USD(150)},
	}
	events, err := ComputeRealizedEvents(NewLedger(), nil, txs)
	if err != nil {
		t.Fatalf("ComputeRealizedEvents() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0: a purchase is not a disposition", len(events))
	}
}

func TestComputeRealizedEvents_EntryWithNoOpenLotsEmitsNothing(t *testing.T) {
	entries := []ReferenceEntry{
		{Date: day("2021-01-15"), Price: USD(160), Factor: F(0.0005)},
	}
	txs := []Transaction{
		{Date: day("2021-02-01"), Instruction: Buy, Quantity: Q(100), Price: USD(150)},
	}
	events, err := ComputeRealizedEvents(NewLedger(), entries, txs)
	if err != nil {
		t.Fatalf("ComputeRealizedEvents() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0: no lot was open on the entry date", len(events))
	}
}

func TestComputeRealizedEvents_SellWithoutSharesFails(t *testing.T) {
	txs := []Transaction{
		{Date: day("2021-01-01"), Instruction: Buy, Quantity: Q(10), Price: USD(150)},
		{Date: day("2021-02-01"), Instruction: Sell, Quantity: Q(11), Price: USD(160)},
	}
	events, err := ComputeRealizedEvents(NewLedger(), nil, txs)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("ComputeRealizedEvents() error = %v, want ErrInsufficientShares", err)
	}
	if events != nil {
		t.Errorf("got %d events, want none on failure", len(events))
	}
}

func TestComputeRealizedEvents_ReplayIsIdempotent(t *testing.T) {
	txs := []Transaction{
		{Date: day("2020-06-01"), Instruction: Buy, Quantity: Q(100), Price: USD(140)},
		{Date: day("2021-02-10"), Instruction: Buy, Quantity: Q(50), Price: USD(155)},
		{Date: day("2021-03-01"), Instruction: Sell, Quantity: Q(120), Price: USD(170)},
	}
	entries := []ReferenceEntry{
		{Date: day("2021-01-29"), Price: USD(172.61), Factor: F(0.00003385)},
		{Date: day("2021-02-26"), Price: USD(162.36), Factor: F(0.00003058)},
		{Date: day("2021-03-31"), Price: USD(159.61), Factor: F(0.00003745)},
	}

	first, err := ComputeRealizedEvents(NewLedger(), entries, txs)
	if err != nil {
		t.Fatalf("first run error = %v", err)
	}
	second, err := ComputeRealizedEvents(NewLedger(), entries, txs)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("runs emitted %d and %d events", len(first), len(second))
	}
	for i := range first {
		if eventString(first[i]) != eventString(second[i]) {
			t.Errorf("event %d differs between runs:\n%s\n%s", i, eventString(first[i]), eventString(second[i]))
		}
	}
}

func TestComputeRealizedEvents_TermClassification(t *testing.T) {
	tests := []struct {
		name     string
		bought   string
		sold     string
		wantTerm Term
	}{
		{"held two years", "2019-03-01", "2021-03-01", LongTerm},
		{"held one year and a day", "2020-02-28", "2021-03-01", LongTerm},
		{"held exactly one year", "2020-03-01", "2021-03-01", ShortTerm},
		{"held one month", "2021-02-01", "2021-03-01", ShortTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []Transaction{
				{Date: day(tt.bought), Instruction: Buy, Quantity: Q(10), Price: USD(150)},
				{Date: day(tt.sold), Instruction: Sell, Quantity: Q(10), Price: USD(170)},
			}
			events, err := ComputeRealizedEvents(NewLedger(), nil, txs)
			if err != nil {
				t.Fatalf("ComputeRealizedEvents() error = %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].Term != tt.wantTerm {
				t.Errorf("term = %s, want %s", events[0].Term, tt.wantTerm)
			}
		})
	}
}

func TestConfigRun_WholeYearAgainstReferenceTable(t *testing.T) {
	cfg := Config{Fund: "GLD", TaxYear: 2021}
	txs := []Transaction{
		{Date: day("2021-01-04"), Instruction: Buy, Quantity: Q(10), Price: USD(171.50)},
	}
	report, err := cfg.Run(txs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// One principal payment event per expense event of the year.
	if len(report.Events) != 12 {
		t.Fatalf("got %d events, want 12", len(report.Events))
	}
	for _, ev := range report.Events {
		if ev.Kind != PrincipalPayment {
			t.Errorf("event kind = %s, want PRINCIPAL_PAYMENT", ev.Kind)
		}
		if ev.Term != ShortTerm {
			t.Errorf("event term = %s, want SHORT", ev.Term)
		}
	}
	if !report.Ledger.Position().Equal(Q(10)) {
		t.Errorf("position = %s, want 10", report.Ledger.Position())
	}
}

func TestConfigRun_RejectsUnsupportedFundAndYear(t *testing.T) {
	if _, err := (Config{Fund: "USO", TaxYear: 2021}).Run(nil); !errors.Is(err, ErrUnsupportedFund) {
		t.Errorf("Run(USO) error = %v, want ErrUnsupportedFund", err)
	}
	if _, err := (Config{Fund: "GLD", TaxYear: 2020}).Run(nil); !errors.Is(err, ErrUnsupportedYear) {
		t.Errorf("Run(2020) error = %v, want ErrUnsupportedYear", err)
	}
}

func TestConfigRun_IAURestatesPreSplitTransactions(t *testing.T) {
	cfg := Config{Fund: "IAU", TaxYear: 2021}
	// 10 pre-split shares become 5 post-split shares at twice the price.
	txs := []Transaction{
		{Date: day("2021-01-04"), Instruction: Buy, Quantity: Q(10), Price: USD(17.30)},
	}
	report, err := cfg.Run(txs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Ledger.Position().Equal(Q(5)) {
		t.Errorf("position = %s, want 5 post-split shares", report.Ledger.Position())
	}
	var lot *Lot
	for l := range report.Ledger.Lots() {
		lot = l
	}
	if !lot.BasisPerShare().Equal(USD(34.60)) {
		t.Errorf("basis per share = %s, want $34.60 post-split", lot.BasisPerShare().Decimal())
	}
	// First expense event of the year: 5 × 0.00002116 shares deemed sold.
	first := report.Events[0]
	if !first.Quantity.Equal(Q(0.0001058)) {
		t.Errorf("first event quantity = %s, want 0.0001058", first.Quantity)
	}
}

func TestConfigRun_ManualSplitOverridesFundSchedule(t *testing.T) {
	cfg := Config{Fund: "GLD", TaxYear: 2021, Split: Q(2)}
	txs := []Transaction{
		{Date: day("2021-01-04"), Instruction: Buy, Quantity: Q(10), Price: USD(171.50)},
	}
	report, err := cfg.Run(txs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Ledger.Position().Equal(Q(20)) {
		t.Errorf("position = %s, want 20", report.Ledger.Position())
	}
}

func TestReportTotals(t *testing.T) {
	txs := []Transaction{
		{Date: day("2019-06-01"), Instruction: Buy, Quantity: Q(50), Price: USD(120)},
		{Date: day("2021-01-04"), Instruction: Buy, Quantity: Q(50), Price: USD(171.50)},
		{Date: day("2021-06-15"), Instruction: Sell, Quantity: Q(80), Price: USD(165)},
	}
	report, err := Config{Fund: "GLD", TaxYear: 2021}.Run(txs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var total Money
	for _, ev := range report.Events {
		total = total.Add(ev.GainLoss)
	}
	if !report.TotalGainLoss().Equal(total) {
		t.Errorf("TotalGainLoss() = %s, want %s", report.TotalGainLoss().Decimal(), total.Decimal())
	}
	byTerm := report.TermGainLoss(ShortTerm).Add(report.TermGainLoss(LongTerm))
	if !byTerm.Equal(total) {
		t.Errorf("short+long = %s, want %s", byTerm.Decimal(), total.Decimal())
	}
	byKind := report.KindGainLoss(Sale).Add(report.KindGainLoss(PrincipalPayment))
	if !byKind.Equal(total) {
		t.Errorf("sale+principal = %s, want %s", byKind.Decimal(), total.Decimal())
	}
	if !report.TotalGainLoss().Equal(report.TotalProceeds().Sub(report.TotalCostBasis())) {
		t.Error("gain != proceeds - cost basis")
	}
}
