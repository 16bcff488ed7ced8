package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
)

// ─── recompute ──────────────────────────────────────────────────────────────

func newRecomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute [ACCOUNT_ID...]",
		Short: "Recalcular los contadores de cuentas desde su historial de movimientos",
		Long: `Pliega todos los movimientos de cada cuenta y compara el resultado con el saldo y los
totales almacenados. Sin argumentos revisa todas las cuentas. Con --fix corrige la diferencia.`,
		Example: `  ledgerctl recompute
  ledgerctl recompute boveda_monte --fix`,
		RunE: runRecompute,
	}
	cmd.Flags().Bool("fix", false, "Corregir los contadores cuando haya diferencia")
	return cmd
}

func runRecompute(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")

	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	ids := args
	if len(ids) == 0 {
		accounts, err := svc.Ledger.ListAccounts(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			ids = append(ids, a.ID)
		}
	}

	results := make([]*ledgerapp.RecomputeResult, 0, len(ids))
	drifted := 0
	for _, id := range ids {
		r, err := svc.Ledger.RecomputeAccount(ctx, id, fix)
		if err != nil {
			return fmt.Errorf("recompute %s: %w", id, err)
		}
		if !r.Consistent() && !r.Fixed {
			drifted++
		}
		results = append(results, r)
	}

	if jsonOutput(cmd) {
		if err := printJSON(cmd, results); err != nil {
			return err
		}
	} else {
		rows := make([][]any, 0, len(results))
		for _, r := range results {
			state := "ok"
			switch {
			case r.Fixed:
				state = "corregida"
			case !r.Consistent():
				state = "diferencia"
			}
			rows = append(rows, []any{r.AccountID, r.Stored.Balance.StringFixed(2), r.Folded.Balance.StringFixed(2), r.Drift.Balance.StringFixed(2), state})
		}
		if err := table(cmd.OutOrStdout(), "CUENTA\tALMACENADO\tHISTORIAL\tDIFERENCIA\tESTADO", rows); err != nil {
			return err
		}
	}

	if drifted > 0 {
		return fmt.Errorf("%d cuenta(s) con diferencia sin corregir (use --fix)", drifted)
	}
	return nil
}

// ─── reconcile ──────────────────────────────────────────────────────────────

func newReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reconcile ACCOUNT_ID COUNT",
		Short:   "Corte de caja: ajustar una cuenta a su conteo físico",
		Example: `  ledgerctl reconcile boveda_monte 15230.50 --note "corte semanal"`,
		Args:    cobra.ExactArgs(2),
		RunE:    runReconcile,
	}
	cmd.Flags().String("note", "", "Nota del ajuste")
	return cmd
}

func runReconcile(cmd *cobra.Command, args []string) error {
	count, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("conteo inválido %q", args[1])
	}
	note, _ := cmd.Flags().GetString("note")

	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.Reconciliation.Reconcile(cmd.Context(), reconciliation.Input{
		AccountID:     args[0],
		PhysicalCount: count,
		Note:          note,
		UserID:        "ledgerctl",
	})
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return printJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cuenta: %s\n", res.AccountID)
	fmt.Fprintf(out, "saldo anterior: %s\n", res.PreviousBalance.StringFixed(2))
	fmt.Fprintf(out, "conteo físico: %s\n", res.PhysicalCount.StringFixed(2))
	fmt.Fprintf(out, "diferencia: %s\n", res.Difference.StringFixed(2))
	if res.Adjustment != nil {
		fmt.Fprintf(out, "ajuste: %s %s (%s)\n", res.Adjustment.Kind, res.Adjustment.Amount.StringFixed(2), res.Adjustment.ID)
	} else {
		fmt.Fprintln(out, "sin ajuste")
	}
	return nil
}

// ─── debts ──────────────────────────────────────────────────────────────────

func newDebtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debts",
		Short: "Recalcular deudas de clientes y saldos pendientes de distribuidores",
		Args:  cobra.NoArgs,
		RunE:  runDebts,
	}
}

func runDebts(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	report, err := svc.Sales.RecomputeDebts(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput(cmd) {
		return printJSON(cmd, report)
	}

	rows := make([][]any, 0, len(report.Clients)+len(report.Distributors))
	for _, c := range report.Clients {
		rows = append(rows, []any{"cliente", c.ID, c.Name, c.Amount.StringFixed(2)})
	}
	for _, d := range report.Distributors {
		rows = append(rows, []any{"distribuidor", d.ID, d.Name, d.Amount.StringFixed(2)})
	}
	return table(cmd.OutOrStdout(), "TIPO\tID\tNOMBRE\tPENDIENTE", rows)
}
