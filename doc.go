// Package trustlot computes the realized gain and loss events a holder of
// commodity trust shares (GLD, SLV, IAU) must report for a tax year.
//
// Grantor trusts periodically sell a sliver of their metal to pay fund
// expenses. Every such sale is a deemed sale by each shareholder,
// proportional to their holdings, with the basis reduction defined by the
// published cost basis factor for that date. On top of that, the holder's
// own sells realize gains against the basis as already reduced.
//
// The core is a tax-lot ledger: purchases open lots, sells deplete them
// FIFO, and each fund expense event shaves basis off every open lot. The
// two event streams are replayed in strict chronological order against the
// single ledger, because each factor applies to the basis left by all
// prior events. All arithmetic is exact decimal.
//
// This package is the foundation of the `tl` command-line tool.
package trustlot
