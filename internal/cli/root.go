// Package cli comandos de mantenimiento de ledgerctl: recálculo de contadores, cortes de caja,
// recálculo de deudas y simulación de la distribución GYA.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/jhoicas/chronos-ledger/internal/bootstrap"
	"github.com/jhoicas/chronos-ledger/pkg/config"
	"github.com/jhoicas/chronos-ledger/pkg/logger"
)

// NewRootCmd árbol completo de comandos. Cada ejecución construye su propio árbol (sin estado global).
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ledgerctl",
		Short:        "Mantenimiento del libro de cuentas y la distribución GYA",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("json", false, "Salida en JSON")

	root.AddCommand(newDistributionCmd())
	root.AddCommand(newRecomputeCmd())
	root.AddCommand(newReconcileCmd())
	root.AddCommand(newDebtsCmd())
	return root
}

// openServices carga la configuración y abre el almacenamiento; los logs van a stderr.
func openServices(cmd *cobra.Command) (*bootstrap.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
	return bootstrap.Build(cmd.Context(), cfg, log)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
