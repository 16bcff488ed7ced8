package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/jhoicas/chronos-ledger/internal/domain/distribution"
)

// ─── distribution ───────────────────────────────────────────────────────────

func newDistributionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Simular la distribución GYA de una venta (no escribe nada)",
		Example: `  ledgerctl distribution --sale 10000 --purchase 6300 --qty 10 --paid 40000
  ledgerctl distribution --sale 10000 --purchase 6300 --freight 0 --qty 5 --json`,
		Args: cobra.NoArgs,
		RunE: runDistribution,
	}
	cmd.Flags().String("sale", "", "Precio de venta unitario")
	cmd.Flags().String("purchase", "0", "Precio de compra unitario")
	cmd.Flags().String("freight", distribution.FreightDefault.String(), "Flete unitario")
	cmd.Flags().Int64("qty", 0, "Cantidad")
	cmd.Flags().String("paid", "0", "Monto abonado")
	_ = cmd.MarkFlagRequired("sale")
	_ = cmd.MarkFlagRequired("qty")
	return cmd
}

type distributionReport struct {
	Distribution struct {
		BucketCost    decimal.Decimal `json:"bucket_cost"`
		BucketFreight decimal.Decimal `json:"bucket_freight"`
		BucketProfit  decimal.Decimal `json:"bucket_profit"`
		Total         decimal.Decimal `json:"total"`
	} `json:"distribution"`
	Realized struct {
		CapitalCost    decimal.Decimal `json:"capital_cost"`
		CapitalFreight decimal.Decimal `json:"capital_freight"`
		CapitalProfit  decimal.Decimal `json:"capital_profit"`
		Proportion     decimal.Decimal `json:"proportion"`
	} `json:"realized"`
	NetMargin   decimal.Decimal         `json:"net_margin"`
	GrossMargin decimal.Decimal         `json:"gross_margin"`
	Validation  distribution.Validation `json:"validation"`
}

func runDistribution(cmd *cobra.Command, _ []string) error {
	sale, err := decimalFlag(cmd, "sale")
	if err != nil {
		return err
	}
	purchase, err := decimalFlag(cmd, "purchase")
	if err != nil {
		return err
	}
	freight, err := decimalFlag(cmd, "freight")
	if err != nil {
		return err
	}
	paid, err := decimalFlag(cmd, "paid")
	if err != nil {
		return err
	}
	qty, _ := cmd.Flags().GetInt64("qty")

	d := distribution.Compute(sale, purchase, freight, qty)
	p := distribution.ComputeProportional(d, paid, d.Total)
	m := distribution.ComputeMargins(d)

	var rep distributionReport
	rep.Distribution.BucketCost = d.BucketCost
	rep.Distribution.BucketFreight = d.BucketFreight
	rep.Distribution.BucketProfit = d.BucketProfit
	rep.Distribution.Total = d.Total
	rep.Realized.CapitalCost = p.CapitalCost
	rep.Realized.CapitalFreight = p.CapitalFreight
	rep.Realized.CapitalProfit = p.CapitalProfit
	rep.Realized.Proportion = p.Proportion
	rep.NetMargin, rep.GrossMargin = m.Net, m.Gross
	rep.Validation = distribution.ValidateSale(distribution.SaleInput{
		Quantity:          qty,
		SaleUnitPrice:     sale,
		PurchaseUnitPrice: purchase,
		FreightUnitPrice:  freight,
		AmountPaid:        paid,
	})

	if jsonOutput(cmd) {
		return printJSON(cmd, rep)
	}
	out := cmd.OutOrStdout()
	if err := table(out, "BUCKET\tTOTAL\tREALIZADO", [][]any{
		{"costo", d.BucketCost.StringFixed(2), p.CapitalCost.StringFixed(2)},
		{"flete", d.BucketFreight.StringFixed(2), p.CapitalFreight.StringFixed(2)},
		{"utilidad", d.BucketProfit.StringFixed(2), p.CapitalProfit.StringFixed(2)},
		{"total", d.Total.StringFixed(2), p.Sum().StringFixed(2)},
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "margen neto: %s%%  margen bruto: %s%%\n", m.Net.StringFixed(2), m.Gross.StringFixed(2))
	for _, e := range rep.Validation.Errors {
		fmt.Fprintf(out, "error: %s\n", e)
	}
	for _, w := range rep.Validation.Warnings {
		fmt.Fprintf(out, "advertencia: %s\n", w)
	}
	return nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: número inválido %q", name, raw)
	}
	return d, nil
}
