package main

import (
	"fmt"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/iwvelando/installment-calculator/pkg/output"
	"github.com/iwvelando/installment-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type calculateFlags struct {
	price        string
	weeks        int
	start        string
	summary      bool
	outputFormat string
}

func (c *cli) newCalculateCmd() *cobra.Command {
	var flags calculateFlags

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute the deposit, weekly installment and schedule for a price",
		Example: `  installment-calculator calculate --price 1000 --weeks 4
  installment-calculator calculate --price 500 --weeks 12 --start 2030-01-07 --summary
  installment-calculator calculate --price 2500 --weeks 24 --output-format csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCalculate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.price, "price", "", "cash price in Ksh (unparsable text counts as 0)")
	cmd.Flags().IntVar(&flags.weeks, "weeks", constants.DefaultTermWeeks, "number of weekly installments (4, 8, 12, 16, 20 or 24)")
	cmd.Flags().StringVar(&flags.start, "start", "", "payment start date, YYYY-MM-DD, not before today")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "also print the payment summary")
	cmd.Flags().StringVar(&flags.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	return cmd
}

func (c *cli) runCalculate(cmd *cobra.Command, flags calculateFlags) error {
	const op = "main.runCalculate"

	rawPrice := c.conf.Defaults.CashPrice
	if cmd.Flags().Changed("price") {
		rawPrice = flags.price
	}
	weeks := c.conf.Defaults.Weeks
	if cmd.Flags().Changed("weeks") || weeks == 0 {
		weeks = flags.weeks
	}
	rawStart := c.conf.Defaults.StartDate
	if cmd.Flags().Changed("start") {
		rawStart = flags.start
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := c.conf.Output.Format
	if flags.outputFormat != "" {
		outputFormat = flags.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	warning, err := validation.ValidateTerm(weeks)
	if err != nil {
		return err
	}
	if warning != "" {
		c.logger.Warn(warning, zap.String("op", op))
	}

	startDate, err := datetime.ParseOptionalDate(rawStart)
	if err != nil {
		return err
	}
	if startDate != nil {
		if err := datetime.ValidateStartDate(*startDate, c.now()); err != nil {
			return err
		}
	}

	result, err := installment.Compute(installment.PlanInput{
		CashPrice: installment.ParseCashPrice(rawPrice),
		Term:      weeks,
		StartDate: startDate,
	})
	if err != nil {
		return fmt.Errorf("failed to compute plan: %w", err)
	}

	c.logger.Debug("plan computed",
		zap.String("op", op),
		zap.String("cashPrice", result.CashPrice.String()),
		zap.Int("weeks", result.Term),
		zap.String("outputFormat", outputFormat),
	)

	return output.Write(cmd.OutOrStdout(), outputFormat, result, flags.summary)
}

func (c *cli) newTermsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms",
		Short: "List the available terms and their multipliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return output.PrettyTerms(cmd.OutOrStdout())
		},
	}
}
